package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/petmeet/petmeet/config"
)

// NewRedisClient connects to the configured Redis server. It returns nil when
// the server does not answer a ping so callers fall back to in-memory state.
func NewRedisClient(ctx context.Context, cfg config.AppConfig) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		Logger.Warn("redis unavailable, using in-memory token revocation",
			zap.String("addr", rc.Options().Addr), zap.Error(err))
		_ = rc.Close()
		return nil
	}
	return rc
}
