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

	"github.com/rantrex/rantrex/internal/api"
	"github.com/rantrex/rantrex/internal/config"
	"github.com/rantrex/rantrex/internal/logger"
	"github.com/rantrex/rantrex/internal/meme"
	"github.com/rantrex/rantrex/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	// Initialize provider adapters
	chatService := service.NewChatService(&service.ChatConfig{
		Model:   cfg.OpenAI.ChatModel,
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})

	imageService := service.NewImageService(&service.ImageConfig{
		Model:   cfg.OpenAI.ImageModel,
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})

	transcribeService := service.NewTranscribeService(&service.TranscribeConfig{
		Model:   cfg.OpenAI.TranscribeModel,
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})

	songService := service.NewSongService(&service.SongConfig{
		APIKey:       cfg.Song.APIKey,
		BaseURL:      cfg.Song.BaseURL,
		Duration:     cfg.Song.Duration,
		PollInterval: cfg.Song.PollInterval,
		MaxAttempts:  cfg.Song.MaxAttempts,
	})

	if !songService.HasCredential() {
		logger.Warn("Song provider credential absent, song requests will return the mock URL")
	}

	// Initialize meme URL builder
	urlBuilder := meme.NewURLBuilder(&meme.URLBuilderConfig{
		BaseURL:         cfg.Meme.BaseURL,
		Width:           cfg.Meme.Width,
		Height:          cfg.Meme.Height,
		Font:            cfg.Meme.Font,
		Watermark:       cfg.Meme.Watermark,
		ValidateTimeout: cfg.Meme.ValidateTimeout,
	})

	// Initialize transform dispatcher
	transformService := service.NewTransformService(chatService, songService, urlBuilder, &service.TransformConfig{
		SongMockURL: cfg.Song.MockURL,
	})

	// Setup router
	router := api.SetupRouter(transformService, chatService, imageService, transcribeService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
