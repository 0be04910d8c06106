package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// AppConfig holds environment driven configuration values.
// Secrets have no defaults in code and must come from config.json or the environment.
type AppConfig struct {
	AppPort            string
	JWTSecret          string
	GinMode            string
	GinPath            string
	AllowedOrigins     []string
	RateLimitPerMinute int
	PageSize           int
	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis backs token revocation; an unreachable server falls back to memory.
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Token lifetimes
	AccessTokenMinutes int
	RefreshTokenHours  int
	// Sign-in lockout per IP
	SignInMaxFailuresPerHour int
	SignInBanMinutes         int
}

// ErrMissingJWTSecret is returned when no signing secret was configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in config.json or environment variables")

// DefaultPath is where Load looks for the JSON config file.
var DefaultPath = filepath.Join("config", "config.json")

var (
	cfg    AppConfig
	loaded bool
	mu     sync.Mutex
)

// fileConfig mirrors the grouped layout of config.json.
type fileConfig struct {
	App struct {
		AppPort            string   `json:"AppPort"`
		JWTSecret          string   `json:"JWTSecret"`
		RateLimitPerMinute int      `json:"RateLimitPerMinute"`
		PageSize           int      `json:"PageSize"`
		AllowedOrigins     []string `json:"AllowedOrigins"`
	} `json:"app"`
	Database struct {
		DatabaseURI string `json:"DatabaseURI"`
		DBHost      string `json:"DBHost"`
		DBPort      string `json:"DBPort"`
		DBUser      string `json:"DBUser"`
		DBPassword  string `json:"DBPassword"`
		DBName      string `json:"DBName"`
	} `json:"database"`
	Redis struct {
		RedisHost     string `json:"RedisHost"`
		RedisPort     int    `json:"RedisPort"`
		RedisDB       int    `json:"RedisDB"`
		RedisPassword string `json:"RedisPassword"`
	} `json:"redis"`
	Log struct {
		Level      string `json:"Level"`
		Path       string `json:"Path"`
		GinMode    string `json:"GinMode"`
		GinPath    string `json:"GinPath"`
		MaxSizeMB  int    `json:"MaxSizeMB"`
		MaxBackups int    `json:"MaxBackups"`
		MaxAgeDays int    `json:"MaxAgeDays"`
		Compress   bool   `json:"Compress"`
	} `json:"log"`
	Auth struct {
		AccessTokenMinutes       int `json:"AccessTokenMinutes"`
		RefreshTokenHours        int `json:"RefreshTokenHours"`
		SignInMaxFailuresPerHour int `json:"SignInMaxFailuresPerHour"`
		SignInBanMinutes         int `json:"SignInBanMinutes"`
	} `json:"auth"`
}

// Load loads the application configuration once during boot and exits when it is unusable.
func Load() AppConfig {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return cfg
	}

	c, err := LoadFrom(DefaultPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg = c
	loaded = true
	return cfg
}

// LoadFrom builds a configuration with precedence: JSON file -> defaults -> environment overrides.
// A missing file is not an error.
func LoadFrom(path string) (AppConfig, error) {
	var c AppConfig
	if err := loadJSONConfig(path, &c); err != nil {
		return c, err
	}
	applyDefaults(&c)
	if err := applyEnvOverrides(&c); err != nil {
		return c, err
	}
	if c.JWTSecret == "" {
		return c, ErrMissingJWTSecret
	}
	return c, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func loadJSONConfig(path string, out *AppConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	out.AppPort = fc.App.AppPort
	out.JWTSecret = fc.App.JWTSecret
	out.RateLimitPerMinute = fc.App.RateLimitPerMinute
	out.PageSize = fc.App.PageSize
	out.AllowedOrigins = fc.App.AllowedOrigins

	out.DatabaseURI = fc.Database.DatabaseURI
	out.DBHost = fc.Database.DBHost
	out.DBPort = fc.Database.DBPort
	out.DBUser = fc.Database.DBUser
	out.DBPassword = fc.Database.DBPassword
	out.DBName = fc.Database.DBName

	out.RedisHost = fc.Redis.RedisHost
	out.RedisPort = fc.Redis.RedisPort
	out.RedisDB = fc.Redis.RedisDB
	out.RedisPassword = fc.Redis.RedisPassword

	out.LogLevel = fc.Log.Level
	out.LogPath = fc.Log.Path
	out.GinMode = fc.Log.GinMode
	out.GinPath = fc.Log.GinPath
	out.LogMaxSizeMB = fc.Log.MaxSizeMB
	out.LogMaxBackups = fc.Log.MaxBackups
	out.LogMaxAgeDays = fc.Log.MaxAgeDays
	out.LogCompress = fc.Log.Compress

	out.AccessTokenMinutes = fc.Auth.AccessTokenMinutes
	out.RefreshTokenHours = fc.Auth.RefreshTokenHours
	out.SignInMaxFailuresPerHour = fc.Auth.SignInMaxFailuresPerHour
	out.SignInBanMinutes = fc.Auth.SignInBanMinutes
	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "petmeet"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if c.AccessTokenMinutes == 0 {
		c.AccessTokenMinutes = 60
	}
	if c.RefreshTokenHours == 0 {
		c.RefreshTokenHours = 24
	}
	if c.SignInMaxFailuresPerHour == 0 {
		c.SignInMaxFailuresPerHour = 20
	}
	if c.SignInBanMinutes == 0 {
		c.SignInBanMinutes = 60
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) error {
	strs := map[string]*string{
		"APP_PORT":       &c.AppPort,
		"JWT_SECRET":     &c.JWTSecret,
		"GIN_MODE":       &c.GinMode,
		"GIN_PATH":       &c.GinPath,
		"DATABASE_URI":   &c.DatabaseURI,
		"DB_HOST":        &c.DBHost,
		"DB_PORT":        &c.DBPort,
		"DB_USER":        &c.DBUser,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_NAME":        &c.DBName,
		"REDIS_HOST":     &c.RedisHost,
		"REDIS_PASSWORD": &c.RedisPassword,
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_PATH":       &c.LogPath,
	}
	for key, dst := range strs {
		if v := getEnv(key, ""); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"RATE_LIMIT_PER_MINUTE":        &c.RateLimitPerMinute,
		"PAGE_SIZE":                    &c.PageSize,
		"REDIS_PORT":                   &c.RedisPort,
		"REDIS_DB":                     &c.RedisDB,
		"LOG_MAX_SIZE_MB":              &c.LogMaxSizeMB,
		"LOG_MAX_BACKUPS":              &c.LogMaxBackups,
		"LOG_MAX_AGE_DAYS":             &c.LogMaxAgeDays,
		"ACCESS_TOKEN_MINUTES":         &c.AccessTokenMinutes,
		"REFRESH_TOKEN_HOURS":          &c.RefreshTokenHours,
		"SIGNIN_MAX_FAILURES_PER_HOUR": &c.SignInMaxFailuresPerHour,
		"SIGNIN_BAN_MINUTES":           &c.SignInBanMinutes,
	}
	for key, dst := range ints {
		v := getEnv(key, "")
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer value %s for %s: %w", v, key, err)
		}
		*dst = n
	}

	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
	c.AllowedOrigins = readListEnv("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
	return nil
}

func readListEnv(key string, defaults []string) []string {
	if raw := os.Getenv(key); raw != "" {
		return splitAndTrim(raw)
	}
	return defaults
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
