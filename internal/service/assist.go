package service

import (
	"context"
)

// Assist operations.
const (
	OpShakespeare = "shakespeare"
	OpMemePrompt  = "meme-prompt"
	OpMemeImage   = "meme-image"
)

// AssistService runs a single chat or image operation on behalf of the
// multi-purpose assist endpoint.
type AssistService struct {
	chat  *ChatService
	image *ImageService
}

// NewAssistService creates the assist operation dispatcher.
func NewAssistService(chat *ChatService, image *ImageService) *AssistService {
	return &AssistService{
		chat:  chat,
		image: image,
	}
}

// Run dispatches by operation name. Unknown operations return
// ErrUnknownOperation without any provider call.
func (s *AssistService) Run(ctx context.Context, operation, text string) (string, error) {
	switch operation {
	case OpShakespeare:
		return s.chat.ShakespeareRoast(ctx, text)
	case OpMemePrompt:
		return s.chat.MemeImagePrompt(ctx, text)
	case OpMemeImage:
		return s.image.Generate(ctx, text)
	default:
		return "", ErrUnknownOperation
	}
}
