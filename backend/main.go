package main

import (
	"log"

	"coursehub/backend/config"
	"coursehub/backend/middleware"
	"coursehub/backend/routes"
	"coursehub/backend/storage"
	"coursehub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Error initializing store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	gw := storage.NewGateway(store, storage.WithLogger(logger))
	if err := gw.InitSampleData(); err != nil {
		logger.Fatal("Error seeding sample data", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, gw, cfg, logger)

	logger.Info("Starting server", zap.String("port", cfg.ServerPort), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	db, err := utils.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewGormStore(db)
}
