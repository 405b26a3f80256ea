package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identikit/user-service/docs"
	"github.com/identikit/user-service/internal/api/handler"
	"github.com/identikit/user-service/internal/api/middleware"
	"github.com/identikit/user-service/internal/core/service"
	"github.com/identikit/user-service/internal/infrastructure/config"
	mongostore "github.com/identikit/user-service/internal/infrastructure/db/mongo"
	redisstore "github.com/identikit/user-service/internal/infrastructure/db/redis"
	"github.com/identikit/user-service/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("users"))

	// --- Dependencies ---
	repo := mongostore.NewUserRepository(db)
	users := service.NewUserService(repo, log)
	login := service.NewLoginService(repo)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, service.TokenTTL)
	throttle := redisstore.NewLoginThrottle(rdb)

	authHandler := handler.NewAuthHandler(users, login, tokens, throttle, log)
	userHandler := handler.NewUserHandler(users)

	auth := middleware.Auth(tokens)
	admin := middleware.AdminOnly()

	// --- Routes ---
	e.POST("/login", authHandler.Login)

	e.POST("/register", userHandler.Register, auth, admin)
	e.GET("/users", userHandler.List, auth, admin)
	e.GET("/users/above/:age", userHandler.AboveAge, auth, admin)
	e.PUT("/users/:login", userHandler.Update, auth)
	e.POST("/users/:login/changepassword", userHandler.ChangePassword, auth)
	e.PUT("/users/:login/changelogin", userHandler.ChangeLogin, auth)
	e.DELETE("/users/:login", userHandler.Delete, auth, admin)
	e.PUT("/users/:login/restore", userHandler.Restore, auth, admin)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
