package router // package router defines how HTTP routes are registered for the server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/nsm-example/internal/auth"
	"github.com/iliyamo/nsm-example/internal/config"
	"github.com/iliyamo/nsm-example/internal/handler"
	"github.com/iliyamo/nsm-example/internal/middleware"
)

// Deps carries everything RegisterRoutes wires together.  Redis and Admin
// may be nil; the features that need them are then switched off.
type Deps struct {
	Cfg       config.Config
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
	Redis     *redis.Client
	Admin     *auth.Admin
	Log       *zap.Logger
	SlogLog   *slog.Logger

	App   *handler.AppHandler
	Echo  *handler.EchoHandler
	Tasks *handler.TaskHandler
	Auth  *handler.AuthHandler
}

// RegisterRoutes installs the global middleware, error handler, validator
// and every route on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.SlogLog == nil {
		d.SlogLog = slog.New(slog.DiscardHandler)
	}

	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(d.SlogLog))
	e.Use(middleware.Metrics())
	e.Use(echomw.CORS())

	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	e.GET("/", d.App.Home, cache)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/static", d.Cfg.StaticDir)

	api := e.Group("/api", middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))
	api.GET("/info", d.App.Info)
	api.GET("/health", d.App.Health)
	api.POST("/echo", d.Echo.Echo)
	api.POST("/message", d.Echo.Message)
	api.POST("/auth/token", d.Auth.Token)

	registerTasks(api, d)
}

// registerTasks mounts /api/tasks.  Reads are public; when auth is enabled
// mutations require an admin bearer token.
func registerTasks(api *echo.Group, d Deps) {
	tasks := api.Group("/tasks")
	var guard []echo.MiddlewareFunc
	if d.Admin != nil {
		guard = []echo.MiddlewareFunc{
			middleware.JWTAuth(d.Admin.Secret()),
			middleware.RequireRole(auth.RoleAdmin),
		}
	}

	tasks.GET("", d.Tasks.List)
	tasks.GET("/:id", d.Tasks.Get)
	tasks.POST("", d.Tasks.Create, guard...)
	tasks.PUT("/:id", d.Tasks.Update, guard...)
	tasks.DELETE("/:id", d.Tasks.Delete, guard...)
}
