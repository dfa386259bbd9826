package service

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ImageService wraps the image generation provider.
type ImageService struct {
	client *openai.Client
	model  string
}

// ImageConfig holds configuration for the image generation service.
type ImageConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// NewImageService creates a new image generation service.
func NewImageService(cfg *ImageConfig) *ImageService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}

	return &ImageService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Generate creates an image from a text prompt and returns the URL of the
// first generated image.
func (s *ImageService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:   s.model,
		Prompt:  prompt,
		N:       1,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image URL in generation response")
	}

	return resp.Data[0].URL, nil
}
