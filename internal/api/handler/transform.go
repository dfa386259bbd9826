package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rantrex/rantrex/internal/logger"
	"github.com/rantrex/rantrex/internal/service"
)

// TransformHandler handles the transform endpoint.
type TransformHandler struct {
	transformService *service.TransformService
}

// NewTransformHandler creates a new transform handler.
func NewTransformHandler(transformService *service.TransformService) *TransformHandler {
	return &TransformHandler{
		transformService: transformService,
	}
}

// Transform handles POST /api/v1/transform.
//
// Missing text and unrecognized types are client errors; no provider is
// contacted for them. Provider-fallback paths return 200 like any success.
// Everything else collapses into a generic 500 envelope so provider
// internals never leak to the caller.
func (h *TransformHandler) Transform(c *gin.Context) {
	var req service.TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No text provided",
		})
		return
	}

	ctx := c.Request.Context()
	result, err := h.transformService.Transform(ctx, &req)
	if err != nil {
		if service.IsClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid transformation type",
			})
			return
		}

		logger.CtxError(ctx, "Transform failed: type=%s, error=%v", req.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
