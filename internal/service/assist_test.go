package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAssistService(t *testing.T, chatContent string) (*AssistService, *int) {
	t.Helper()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": chatContent}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	chat := NewChatService(&ChatConfig{Model: "test-model", APIKey: "k", BaseURL: srv.URL})
	image := NewImageService(&ImageConfig{APIKey: "k", BaseURL: srv.URL})
	return NewAssistService(chat, image), &requests
}

func TestAssistRunUnknownOperation(t *testing.T) {
	s, requests := newTestAssistService(t, "unused")

	_, err := s.Run(context.Background(), "summarize", "some rant")
	if !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("Run() error = %v, want ErrUnknownOperation", err)
	}
	if !IsClientError(err) {
		t.Error("IsClientError(ErrUnknownOperation) = false, want true")
	}
	if *requests != 0 {
		t.Errorf("Run() contacted provider %d times for unknown operation, want 0", *requests)
	}
}

func TestAssistRunOperations(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		content   string
	}{
		{"shakespeare roast", OpShakespeare, "Thou cream-faced loon!"},
		{"meme image prompt", OpMemePrompt, "a dramatic oil painting of a grumpy cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, requests := newTestAssistService(t, tt.content)

			got, err := s.Run(context.Background(), tt.operation, "some rant")
			if err != nil {
				t.Fatalf("Run(%q) error = %v", tt.operation, err)
			}
			if got != tt.content {
				t.Errorf("Run(%q) = %q, want %q", tt.operation, got, tt.content)
			}
			if *requests != 1 {
				t.Errorf("Run(%q) made %d provider calls, want 1", tt.operation, *requests)
			}
		})
	}
}
