package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/xyppyx/DoNext/backend/internal/config"
	"github.com/xyppyx/DoNext/backend/internal/database"
	"github.com/xyppyx/DoNext/backend/internal/handlers"
	"github.com/xyppyx/DoNext/backend/internal/middleware"
	"github.com/xyppyx/DoNext/backend/internal/monitoring"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
	"github.com/xyppyx/DoNext/backend/internal/services"
	"golang.org/x/time/rate"
)

// Application holds all application dependencies and state.
type Application struct {
	Config *config.Config
	Pool   *database.DatabasePool
	Store  repositories.Store
	Router *gin.Engine
	Server *http.Server

	// Services
	TodoService     services.TodoService
	AuthService     services.AuthService
	UserService     services.UserService
	RegisterService services.RegisterService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing DoNext Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	pool, err := database.NewDatabasePool(database.PoolConfigFromApp(cfg))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Pool = pool
	log.Println("✅ Database connected and configured")

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
	if err := repositories.RunMigrations(pool.DB, migrationConfig); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	app.Store = repositories.NewGormStore(pool.DB)

	app.TodoService = services.NewTodoService(app.Store)
	app.AuthService = services.NewAuthService(app.Store, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	app.UserService = services.NewUserService(app.Store)
	app.RegisterService = services.NewRegisterService(app.Store)
	log.Println("✅ All services initialized")

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return pool.Health()
	})

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryWithLog())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.SecureHeader())

	rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
	r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health and monitoring endpoints (no auth required)
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(app.RegisterService, app.AuthService, app.UserService)
	userHandler := handlers.NewUserHandler(app.UserService)
	todoHandler := handlers.NewTodoHandler(app.TodoService)

	// Public routes
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", authHandler.Register)
		userRoutes.POST("/login", authHandler.Login)
		userRoutes.POST("/logout", authHandler.Logout)
		userRoutes.GET("/check-username", authHandler.CheckUsername)
		userRoutes.GET("/by-username/:username", userHandler.GetUserByUsername)
		userRoutes.GET("/:id", userHandler.GetUserByID)
	}

	// Protected routes (require authentication)
	todoRoutes := api.Group("/todos")
	todoRoutes.Use(middleware.Auth(app.AuthService))
	{
		todoRoutes.POST("", todoHandler.CreateTodo)
		todoRoutes.GET("", todoHandler.GetTodos)
		todoRoutes.GET("/main", todoHandler.GetMainTodos)
		todoRoutes.GET("/:id", todoHandler.GetTodoByID)
		todoRoutes.GET("/:id/subtodos", todoHandler.GetSubTodos)
		todoRoutes.PUT("/:id", todoHandler.UpdateTodo)
		todoRoutes.DELETE("/:id", todoHandler.DeleteTodo)
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
