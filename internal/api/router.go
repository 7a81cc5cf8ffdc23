package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskify/taskify-api/docs"
	"github.com/taskify/taskify-api/internal/api/handler"
	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/service"
	"github.com/taskify/taskify-api/internal/infrastructure/db/postgres"
	redisdb "github.com/taskify/taskify-api/internal/infrastructure/db/redis"
)

// Config carries the router's tunables.
type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskify"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	idem := redisdb.NewIdempotencyChecker(rdb)

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	taskService := service.NewTaskService(taskRepo, idem, log)
	userService := service.NewUserService(userRepo, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	managerHandler := handler.NewManagerHandler(taskService)
	userHandler := handler.NewUserHandler(userService)

	authGate := middleware.Auth(tokens, userRepo)
	managerOnly := middleware.RBAC(domain.RoleManager)

	// --- Auth routes (no bearer required) ---
	auth := e.Group("/auth")
	auth.POST("/", authHandler.Register)
	auth.POST("/token", authHandler.Token)

	// --- Task routes ---
	tasks := e.Group("/tasks", authGate)
	tasks.GET("/", taskHandler.List)
	tasks.POST("/", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Manager routes ---
	manager := e.Group("/manager", authGate, managerOnly)
	manager.GET("/tasks", managerHandler.ListAll)
	manager.DELETE("/task/:id", managerHandler.DeleteAny)

	// --- User routes ---
	user := e.Group("/user", authGate)
	user.GET("/", userHandler.Profile)
	user.PUT("/password", userHandler.ChangePassword)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
