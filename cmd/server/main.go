package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"foodgarden/internal/config"
	"foodgarden/internal/database"
	"foodgarden/internal/handlers"
	"foodgarden/internal/logging"
	"foodgarden/internal/middleware"
	"foodgarden/internal/services"
	"foodgarden/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting Food Garden Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("📋 Configuration loaded (Port: %s, Environment: %s)", cfg.Port, cfg.Environment)

	// Connect to MongoDB. The service cannot serve without its store,
	// so a connection failure at startup is fatal.
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Printf("⚠️ Failed to ensure food indexes: %v", err)
	}

	// Initialize session auth (issuer + verifier share the secret)
	sessions, err := auth.NewSessionAuth(cfg.JWTSecret, cfg.TokenTTL, cfg.IsProduction())
	if err != nil {
		log.Fatalf("❌ Failed to initialize session auth: %v", err)
	}
	log.Printf("🔑 Session auth initialized (token TTL: %v)", cfg.TokenTTL)

	// Initialize Prometheus metrics
	services.InitMetrics()
	log.Println("✅ Prometheus metrics initialized")

	// Initialize services and handlers
	foodService := services.NewFoodService(mongoDB)
	healthHandler := handlers.NewHealthHandler(mongoDB)
	authHandler := handlers.NewAuthHandler(sessions)
	foodHandler := handlers.NewFoodHandler(foodService)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Food Garden v1.0",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB is plenty for food documents
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("foodgarden")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// CORS with credentialed cookies requires an explicit origin
	// allow-list; Fiber rejects AllowCredentials with a wildcard.
	allowedOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := allowedOrigins != "*"

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: allowCredentials,
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", allowedOrigins)

	// Routes
	app.Get("/", healthHandler.Handle)
	app.Post("/jwt", authHandler.IssueToken)
	app.Post("/logout", authHandler.Logout)

	requireAuth := middleware.RequireAuth(sessions)

	foods := app.Group("/foods")
	foods.Get("/", foodHandler.List) // public: browsing needs no session
	foods.Post("/", requireAuth, foodHandler.Create)
	foods.Post("/notes/:id", requireAuth, foodHandler.AddNote)
	foods.Get("/:id", requireAuth, foodHandler.Get)
	foods.Put("/:id", requireAuth, foodHandler.Update)
	foods.Delete("/:id", requireAuth, foodHandler.Delete)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	log.Printf("👌 Server listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
