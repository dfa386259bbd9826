package service

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// TranscribeService wraps the speech transcription provider.
type TranscribeService struct {
	client *openai.Client
	model  string
}

// TranscribeConfig holds configuration for the transcription service.
type TranscribeConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// NewTranscribeService creates a new transcription service.
func NewTranscribeService(cfg *TranscribeConfig) *TranscribeService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &TranscribeService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Transcribe converts uploaded audio into text. The filename is forwarded so
// the provider can infer the container format from its extension.
func (s *TranscribeService) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	return resp.Text, nil
}
