package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rantrex/rantrex/internal/meme"
)

// transformEnv wires the dispatcher against chat and meme rendering stubs and
// counts the requests each stub receives.
type transformEnv struct {
	service *TransformService

	chatRequests int
	memeRequests int
}

func newTransformEnv(t *testing.T, chatContent string) *transformEnv {
	t.Helper()
	env := &transformEnv{}

	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.chatRequests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": chatContent}},
			},
		})
	}))
	t.Cleanup(chatSrv.Close)

	memeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.memeRequests++
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(memeSrv.Close)

	chat := NewChatService(&ChatConfig{Model: "test-model", APIKey: "k", BaseURL: chatSrv.URL})
	song := NewSongService(&SongConfig{BaseURL: "http://127.0.0.1:1", PollInterval: time.Millisecond})
	builder := meme.NewURLBuilder(&meme.URLBuilderConfig{BaseURL: memeSrv.URL})

	env.service = NewTransformService(chat, song, builder, &TransformConfig{
		SongMockURL: "https://example.com/mock-song.mp3",
	})
	return env
}

func TestTransformUnknownType(t *testing.T) {
	env := newTransformEnv(t, "unused")

	_, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "some rant",
		Type: "haiku",
	})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Transform() error = %v, want ErrUnknownType", err)
	}
	if env.chatRequests != 0 || env.memeRequests != 0 {
		t.Errorf("Transform() contacted providers for unknown type: chat=%d, meme=%d",
			env.chatRequests, env.memeRequests)
	}
}

func TestTransformShakespeare(t *testing.T) {
	env := newTransformEnv(t, "Fie upon thee, villain!")

	result, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "my roommate never does dishes",
		Type: TypeShakespeare,
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if result.Result != "Fie upon thee, villain!" {
		t.Errorf("Transform() result = %q", result.Result)
	}
	if result.Template != "" {
		t.Errorf("Transform() template = %q, want empty for shakespeare", result.Template)
	}
}

func TestTransformMeme(t *testing.T) {
	env := newTransformEnv(t, `{"top": "When they say 5 minutes", "bottom": "An hour later"}`)

	result, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "my ex is always late",
		Type: TypeMeme,
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if !strings.Contains(result.Result, "/When_they_say_5_minutes/An_hour_later.png") {
		t.Errorf("Transform() result = %q, sanitized captions missing", result.Result)
	}
	if result.Template == "" {
		t.Error("Transform() template empty for meme result")
	}
	if !strings.Contains(result.Result, "/"+result.Template+"/") {
		t.Errorf("Transform() result %q does not use reported template %q", result.Result, result.Template)
	}
}

func TestTransformMemeExcludesPreviousTemplate(t *testing.T) {
	env := newTransformEnv(t, `{"top": "Top", "bottom": "Bottom"}`)

	for i := 0; i < 25; i++ {
		result, err := env.service.Transform(context.Background(), &TransformRequest{
			Text:             "I am so mad and furious",
			Type:             TypeMeme,
			PreviousTemplate: "fine",
		})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if result.Template == "fine" {
			t.Fatal("Transform() reused the previous template")
		}
	}
}

func TestTransformMemeCaptionFallback(t *testing.T) {
	env := newTransformEnv(t, "I refuse to answer in JSON")

	result, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "everything is terrible",
		Type: TypeMeme,
	})
	if err != nil {
		t.Fatalf("Transform() error = %v, caption failure must not surface", err)
	}

	simple := make(map[string]bool, len(meme.SimpleTemplates))
	for _, tmpl := range meme.SimpleTemplates {
		simple[tmpl] = true
	}
	if !simple[result.Template] {
		t.Errorf("Transform() fallback template = %q, want one of %v", result.Template, meme.SimpleTemplates)
	}
	if !strings.Contains(result.Result, fallbackTopCaption) || !strings.Contains(result.Result, fallbackBottomCaption) {
		t.Errorf("Transform() fallback result = %q, literal captions missing", result.Result)
	}
	if env.memeRequests != 0 {
		t.Errorf("Transform() validated the literal fallback meme (%d requests), want 0", env.memeRequests)
	}
}

func TestTransformSongMockWithoutCredential(t *testing.T) {
	// The song stub address is unreachable and no API key is configured, so
	// the dispatcher substitutes the mock URL instead of failing.
	env := newTransformEnv(t, "unused")

	result, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "turn my rant into a ballad",
		Type: TypeSong,
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if result.Result != "https://example.com/mock-song.mp3" {
		t.Errorf("Transform() result = %q, want mock song URL", result.Result)
	}
}

func TestTransformSongErrorWithCredential(t *testing.T) {
	env := newTransformEnv(t, "unused")

	song := NewSongService(&SongConfig{
		APIKey:       "real-key",
		BaseURL:      "http://127.0.0.1:1",
		PollInterval: time.Millisecond,
	})
	env.service.song = song

	_, err := env.service.Transform(context.Background(), &TransformRequest{
		Text: "turn my rant into a ballad",
		Type: TypeSong,
	})
	if err == nil {
		t.Fatal("Transform() expected error when song provider fails with credential set")
	}
}
