package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/delhibreath/backend/internal/delivery/http"
	"github.com/delhibreath/backend/internal/observability"
	"github.com/delhibreath/backend/internal/repository/postgres"
	"github.com/delhibreath/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			pool = nil
		}
	}

	// Dependency Injection: Repositories
	var dataRepo service.DataRepository
	if pool != nil {
		defer pool.Close()
		log.Println("Connected to PostgreSQL")
		dataRepo = postgres.NewPostgresRepository(pool)
	} else {
		log.Println("Running with in-memory storage only")
		dataRepo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	metrics := observability.NewMetrics()
	openaq := service.NewOpenAQClient(cfg.OpenAQBaseURL, cfg.OpenAQAPIKey, cfg.FetchTimeout)
	aqiSvc := service.NewAQIService(openaq, dataRepo, metrics)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Delhi Breath API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, aqiSvc, cfg.DefaultCity)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	aqiSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL   string
	OpenAQBaseURL string
	OpenAQAPIKey  string
	FetchTimeout  time.Duration
	DefaultCity   string
	Port          string
	Env           string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		OpenAQBaseURL: getEnv("OPENAQ_BASE_URL", service.DefaultOpenAQBaseURL),
		OpenAQAPIKey:  getEnv("OPENAQ_API_KEY", ""),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 8*time.Second),
		DefaultCity:   getEnv("DEFAULT_CITY", "Delhi"),
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
