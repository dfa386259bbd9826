package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rantrex/rantrex/internal/logger"
	"github.com/rantrex/rantrex/internal/service"
)

// AssistHandler handles the multi-purpose audio/text endpoint: multipart
// audio uploads are transcribed, JSON bodies run a single chat or image
// operation.
type AssistHandler struct {
	assistService     *service.AssistService
	transcribeService *service.TranscribeService
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(
	assistService *service.AssistService,
	transcribeService *service.TranscribeService,
) *AssistHandler {
	return &AssistHandler{
		assistService:     assistService,
		transcribeService: transcribeService,
	}
}

type assistRequest struct {
	Text      string `json:"text"`
	Operation string `json:"operation"`
}

// Assist handles POST /api/v1/assist.
func (h *AssistHandler) Assist(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		h.transcribe(c)
		return
	}

	var req assistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No text provided",
		})
		return
	}

	ctx := c.Request.Context()
	result, err := h.assistService.Run(ctx, req.Operation, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrUnknownOperation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid operation",
			})
			return
		}

		logger.CtxError(ctx, "Assist operation failed: operation=%s, error=%v", req.Operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// transcribe handles the multipart branch: a missing file is a client error,
// a provider failure is not.
func (h *AssistHandler) transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No audio file provided",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No audio file provided",
		})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	text, err := h.transcribeService.Transcribe(ctx, file, fileHeader.Filename)
	if err != nil {
		logger.CtxError(ctx, "Transcription failed: filename=%s, error=%v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to transcribe audio",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": text})
}
