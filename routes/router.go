package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/petmeet/petmeet/config"
	"github.com/petmeet/petmeet/controllers"
	"github.com/petmeet/petmeet/middleware"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

// SetupRouter wires routes, middlewares, and controllers. rc may be nil, in
// which case revoked tokens are tracked in memory.
func SetupRouter(db *gorm.DB, cfg config.AppConfig, rc *redis.Client) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	accessLog := utils.Logger
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err != nil {
			utils.Logger.Warn("access log file unavailable, using application logger", zap.Error(err))
		} else {
			accessLog = gl
		}
	}
	r.Use(middleware.AccessLog(accessLog))
	r.Use(middleware.Recovery(accessLog))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	st := store.New(db)
	issuer := utils.NewTokenIssuerFromConfig(cfg)
	revocations := utils.NewRevocationList(rc)
	guard := utils.NewSignInGuard(rc, cfg.SignInMaxFailuresPerHour, time.Duration(cfg.SignInBanMinutes)*time.Minute)
	pager := controllers.Paginator{Size: cfg.PageSize}

	authController := controllers.NewAuthController(st, issuer, revocations, guard)
	userController := controllers.NewUserController(st, issuer, pager)
	groupController := controllers.NewGroupController(st, pager)
	postController := controllers.NewPostController(st, pager)
	meetingController := controllers.NewMeetingController(st, pager)
	commentController := controllers.NewCommentController(st, pager)
	animalController := controllers.NewAnimalController(st, pager)

	r.GET("/health", health(st.DB()))

	public := r.Group("")
	public.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute).Middleware())
	handle(public, http.MethodPost, "/sign_up", authController.SignUp)
	handle(public, http.MethodPost, "/sign_in", authController.SignIn)
	handle(public, http.MethodPost, "/sign_in/refresh", authController.Refresh)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired(issuer, revocations, st))
	handle(protected, http.MethodPost, "/sign_out", authController.SignOut)

	handle(protected, http.MethodGet, "/users", userController.ListUsers)
	handle(protected, http.MethodGet, "/users/:id", userController.GetUser)
	handle(protected, http.MethodPut, "/users/:id", userController.UpdateUser)
	handle(protected, http.MethodGet, "/users/:id/animals", animalController.ListUserAnimals)

	handle(protected, http.MethodGet, "/groups", groupController.ListGroups)
	handle(protected, http.MethodPost, "/groups", groupController.CreateGroup)
	handle(protected, http.MethodGet, "/groups/:id", groupController.GetGroup)
	handle(protected, http.MethodPut, "/groups/:id", groupController.UpdateGroup)
	handle(protected, http.MethodDelete, "/groups/:id", groupController.DeleteGroup)
	handle(protected, http.MethodGet, "/groups/:id/posts", postController.ListPosts)
	handle(protected, http.MethodPost, "/groups/:id/posts", postController.CreatePost)
	handle(protected, http.MethodGet, "/groups/:id/meetings", meetingController.ListMeetings)
	handle(protected, http.MethodPost, "/groups/:id/meetings", meetingController.CreateMeeting)

	handle(protected, http.MethodGet, "/posts/:id", postController.GetPost)
	handle(protected, http.MethodPut, "/posts/:id", postController.UpdatePost)
	handle(protected, http.MethodPatch, "/posts/:id", postController.UpdatePost)
	handle(protected, http.MethodDelete, "/posts/:id", postController.DeletePost)
	handle(protected, http.MethodGet, "/posts/:id/comments", commentController.ListComments)
	handle(protected, http.MethodPost, "/posts/:id/comments", commentController.CreateComment)

	handle(protected, http.MethodGet, "/meetings/:id", meetingController.GetMeeting)
	handle(protected, http.MethodPut, "/meetings/:id", meetingController.UpdateMeeting)
	handle(protected, http.MethodPatch, "/meetings/:id", meetingController.UpdateMeeting)
	handle(protected, http.MethodDelete, "/meetings/:id", meetingController.DeleteMeeting)
	handle(protected, http.MethodPost, "/meetings/:id/attend", meetingController.Attend)
	handle(protected, http.MethodPost, "/meetings/:id/unattend", meetingController.Unattend)

	handle(protected, http.MethodGet, "/comments/:id", commentController.GetComment)
	handle(protected, http.MethodPut, "/comments/:id", commentController.UpdateComment)
	handle(protected, http.MethodPatch, "/comments/:id", commentController.UpdateComment)
	handle(protected, http.MethodDelete, "/comments/:id", commentController.DeleteComment)

	handle(protected, http.MethodPost, "/animals", animalController.CreateAnimal)
	handle(protected, http.MethodGet, "/animals/:id", animalController.GetAnimal)
	handle(protected, http.MethodPut, "/animals/:id", animalController.UpdateAnimal)
	handle(protected, http.MethodPatch, "/animals/:id", animalController.UpdateAnimal)
	handle(protected, http.MethodDelete, "/animals/:id", animalController.DeleteAnimal)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "not found")
	})

	return r
}

// handle registers path both with and without the trailing slash.
func handle(rg gin.IRoutes, method, path string, handlers ...gin.HandlerFunc) {
	rg.Handle(method, path, handlers...)
	rg.Handle(method, path+"/", handlers...)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			utils.Logger.Error("health check failed", zap.Error(err))
			utils.Error(ctx, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.Success(ctx, gin.H{"status": "ok"})
	}
}
