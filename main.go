// main.go
package main

import (
	"log"

	"filmorate/cmd"
	"filmorate/internal/data/repository"
	"filmorate/internal/wire"
	"filmorate/pkg/database"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Select storage backend
	var repos *repository.Repository
	switch config.Storage.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")
		repos = repository.NewPostgresRepository(db, logger)
	case "memory", "":
		repos = repository.NewMemoryRepository(logger)
	default:
		logger.Fatal("Unknown storage driver", zap.String("driver", config.Storage.Driver))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
