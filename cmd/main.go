/*
Package main is the entry point for the Letteram application.

It is responsible for loading configuration, initializing the global logging
system, connecting to PostgreSQL and blob storage, wiring up the messaging
core (stores, attachment pipeline, presence gateway, chat service), and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letteram/internal/app/attachment"
	"letteram/internal/app/chat"
	"letteram/internal/app/db"
	"letteram/internal/app/message"
	"letteram/internal/app/storage"
	"letteram/internal/app/user"
	"letteram/internal/configs"
	"letteram/internal/handler"
	"letteram/internal/pkg/logx"
	"letteram/internal/pkg/pow"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Int("pow_difficulty", cfg.PowDifficulty).
		Int("max_images_per_message", cfg.MaxImagesPerMessage).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	// Connect to blob storage
	store, err := storage.NewService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		PublicBaseURL:     cfg.PublicAssetBaseURL,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	// Wire the messaging core
	users := user.NewStore(pool)
	messages := message.NewStore(pool)
	uploads := attachment.NewPipeline(store, cfg.UploadTimeout)
	gateway := chat.NewGateway(chat.NewPresenceRegistry())
	chatService := chat.NewService(messages, users, uploads, gateway, cfg.MaxImagesPerMessage)

	deps := &handler.AppDeps{
		Config:  cfg,
		Gateway: gateway,
		Chat:    chatService,
		Users:   users,
		Uploads: uploads,
		Storage: store,
		Pow:     pow.NewManager(cfg.PowDifficulty),
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Letteram Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	gateway.Shutdown()

	logx.Info("Server gracefully stopped.")
}
