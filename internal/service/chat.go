package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rantrex/rantrex/internal/prompts"
)

// ChatService wraps the chat-completion provider. It backs the Shakespeare
// transformation, meme caption generation, and image prompt generation.
type ChatService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// ChatConfig holds configuration for the chat completion service.
type ChatConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// MemeCaption is the structured caption pair parsed from a chat response.
type MemeCaption struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

// NewChatService creates a new chat completion service.
func NewChatService(cfg *ChatConfig) *ChatService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &ChatService{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a system/user message pair to the chat completion endpoint
// and returns the raw assistant content.
func (s *ChatService) Complete(ctx context.Context, systemPrompt, userText string, temperature float32, maxTokens int) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call chat API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		// Resty only unmarshals the result target on success codes, so the
		// error body has to be decoded by hand.
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		var errResp chatResponse
		if jsonErr := json.Unmarshal(httpResp.Body(), &errResp); jsonErr == nil && errResp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), errResp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("chat API returned error: %s", errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("chat API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response (status: %d)", httpResp.StatusCode())
	}

	return resp.Choices[0].Message.Content, nil
}

// ShakespeareRoast transforms a rant into a Shakespearean roast.
func (s *ChatService) ShakespeareRoast(ctx context.Context, text string) (string, error) {
	return s.Complete(ctx, prompts.ShakespeareSystemPrompt, text, 0.8, 200)
}

// MemeCaptions asks the model for a top/bottom caption pair for the rant.
// The model is instructed to answer with two-key JSON; anything that cannot
// be parsed as such is reported as ErrMemeTextGeneration so the meme
// pipeline can fall back instead of failing the request.
func (s *ChatService) MemeCaptions(ctx context.Context, text string) (*MemeCaption, error) {
	content, err := s.Complete(ctx, prompts.MemeCaptionSystemPrompt, text, 0.9, 150)
	if err != nil {
		return nil, err
	}

	caption, err := parseCaptionJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMemeTextGeneration, err)
	}
	return caption, nil
}

// MemeImagePrompt asks the model for an image-generation prompt for the rant.
func (s *ChatService) MemeImagePrompt(ctx context.Context, text string) (string, error) {
	return s.Complete(ctx, prompts.MemeImagePromptSystemPrompt, text, 0.8, 100)
}

// parseCaptionJSON extracts the first balanced JSON object from the model
// output. Models occasionally wrap the JSON in prose or code fences, so the
// object is located by brace matching rather than unmarshalling the whole
// content.
func parseCaptionJSON(content string) (*MemeCaption, error) {
	jsonStart := strings.Index(content, "{")
	if jsonStart == -1 {
		return nil, fmt.Errorf("no JSON found in response")
	}

	braceCount := 0
	jsonEnd := -1
findJSON:
	for i := jsonStart; i < len(content); i++ {
		switch content[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				jsonEnd = i + 1
				break findJSON
			}
		}
	}

	if jsonEnd == -1 {
		return nil, fmt.Errorf("incomplete JSON in response")
	}

	var caption MemeCaption
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd]), &caption); err != nil {
		return nil, fmt.Errorf("failed to parse caption JSON: %w", err)
	}

	return &caption, nil
}
