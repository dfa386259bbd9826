package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rantrex/rantrex/internal/api/handler"
	"github.com/rantrex/rantrex/internal/api/middleware"
	"github.com/rantrex/rantrex/internal/config"
	"github.com/rantrex/rantrex/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	transformService *service.TransformService,
	chatService *service.ChatService,
	imageService *service.ImageService,
	transcribeService *service.TranscribeService,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	transformHandler := handler.NewTransformHandler(transformService)
	assistHandler := handler.NewAssistHandler(
		service.NewAssistService(chatService, imageService),
		transcribeService,
	)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Rant transformations
		v1.POST("/transform", transformHandler.Transform)

		// Audio transcription and single-shot operations
		v1.POST("/assist", assistHandler.Assist)
	}

	return r
}
