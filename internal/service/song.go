package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rantrex/rantrex/internal/logger"
)

// Song task states reported by the music generation provider. The task is
// owned entirely by the provider; this service only observes it.
const (
	SongStatusPending    = "pending"
	SongStatusStaged     = "staged"
	SongStatusProcessing = "processing"
	SongStatusCompleted  = "completed"
	SongStatusFailed     = "failed"
)

// SongService drives the two-phase song generation protocol: submit a task,
// then poll until it reaches a terminal state or the attempt ceiling.
type SongService struct {
	client       *resty.Client
	baseURL      string
	apiKey       string
	duration     int
	pollInterval time.Duration
	maxAttempts  int

	// sleep waits between poll attempts; injectable so tests can run the
	// polling loop without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// SongConfig holds configuration for the song generation service.
type SongConfig struct {
	APIKey       string
	BaseURL      string
	Duration     int
	PollInterval time.Duration
	MaxAttempts  int
}

// NewSongService creates a new song generation service.
func NewSongService(cfg *SongConfig) *SongService {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("x-api-key", cfg.APIKey)
	client.SetTimeout(30 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://piapi.ai/api/v1"
	}

	duration := cfg.Duration
	if duration <= 0 {
		duration = 30
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 30
	}

	return &SongService{
		client:       client,
		baseURL:      baseURL,
		apiKey:       cfg.APIKey,
		duration:     duration,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		sleep:        sleepWithContext,
	}
}

// HasCredential reports whether a provider API key is configured. When it is
// absent the dispatcher substitutes a mock result instead of failing.
func (s *SongService) HasCredential() bool {
	return s.apiKey != ""
}

// Song task API request/response structures
type songSubmitRequest struct {
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration"`
}

type songClip struct {
	AudioURL     string `json:"audio_url,omitempty"`
	Status       string `json:"status,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type songTaskResponse struct {
	Code int `json:"code"`
	Data struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
		Output struct {
			Clips map[string]songClip `json:"clips,omitempty"`
		} `json:"output"`
		Error struct {
			Message string `json:"message,omitempty"`
		} `json:"error"`
	} `json:"data"`
	Message string `json:"message"`
}

// Generate submits a song generation task for the rant and polls until an
// audio URL is available. Polling checks every pollInterval up to
// maxAttempts; exceeding the ceiling yields ErrSongTimeout.
func (s *SongService) Generate(ctx context.Context, text string) (string, error) {
	taskID, err := s.submit(ctx, text)
	if err != nil {
		return "", err
	}

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldTaskID:   taskID,
		logger.FieldProvider: "suno",
	})
	logger.CtxInfo(ctx, "Song generation task created")

	return s.poll(ctx, taskID)
}

// submit creates the asynchronous generation task and returns its id.
func (s *SongService) submit(ctx context.Context, text string) (string, error) {
	var resp songTaskResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(songSubmitRequest{Prompt: text, Duration: s.duration}).
		SetResult(&resp).
		Post(s.baseURL + "/suno/generate")

	if err != nil {
		return "", fmt.Errorf("failed to submit song task: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("song task submission returned HTTP %d", httpResp.StatusCode())
	}

	if resp.Data.TaskID == "" {
		return "", ErrSongTaskCreate
	}

	return resp.Data.TaskID, nil
}

// poll repeatedly fetches task status until a terminal state or the attempt
// ceiling is reached.
func (s *SongService) poll(ctx context.Context, taskID string) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		var resp songTaskResponse
		httpResp, err := s.client.R().
			SetContext(ctx).
			SetResult(&resp).
			Get(s.baseURL + "/task/" + taskID)

		if err != nil {
			return "", fmt.Errorf("failed to poll song task: %w", err)
		}
		if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
			return "", fmt.Errorf("song task poll returned HTTP %d", httpResp.StatusCode())
		}

		switch resp.Data.Status {
		case SongStatusCompleted:
			for _, clip := range resp.Data.Output.Clips {
				if clip.AudioURL != "" {
					logger.CtxInfo(ctx, "Song generation completed after %d polls", attempt+1)
					return clip.AudioURL, nil
				}
			}
			return "", ErrSongNoAudio

		case SongStatusFailed:
			msg := resp.Data.Error.Message
			if msg == "" {
				msg = "song generation failed"
			}
			return "", fmt.Errorf("song task failed: %s", msg)
		}

		// pending, staged, processing: keep waiting
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return "", err
		}
	}

	return "", ErrSongTimeout
}

// sleepWithContext waits for d or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
