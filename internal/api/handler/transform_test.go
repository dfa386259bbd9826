package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rantrex/rantrex/internal/meme"
	"github.com/rantrex/rantrex/internal/service"
)

func newTestRouter(t *testing.T, chatContent string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": chatContent}},
			},
		})
	}))
	t.Cleanup(chatSrv.Close)

	memeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(memeSrv.Close)

	chat := service.NewChatService(&service.ChatConfig{Model: "test-model", APIKey: "k", BaseURL: chatSrv.URL})
	song := service.NewSongService(&service.SongConfig{BaseURL: "http://127.0.0.1:1", PollInterval: time.Millisecond})
	builder := meme.NewURLBuilder(&meme.URLBuilderConfig{BaseURL: memeSrv.URL})
	transform := service.NewTransformService(chat, song, builder, &service.TransformConfig{
		SongMockURL: "https://example.com/mock-song.mp3",
	})

	r := gin.New()
	r.POST("/api/v1/transform", NewTransformHandler(transform).Transform)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTransformMissingText(t *testing.T) {
	r := newTestRouter(t, "unused")

	bodies := []string{
		`{}`,
		`{"type": "shakespeare"}`,
		`not json`,
	}
	for _, body := range bodies {
		w := postJSON(t, r, "/api/v1/transform", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %q status = %d, want 400", body, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid error body for %q: %v", body, err)
		}
		if resp["error"] != "No text provided" {
			t.Errorf("POST %q error = %q, want %q", body, resp["error"], "No text provided")
		}
	}
}

func TestTransformUnknownType(t *testing.T) {
	r := newTestRouter(t, "unused")

	w := postJSON(t, r, "/api/v1/transform", `{"text": "some rant", "type": "haiku"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Invalid transformation type" {
		t.Errorf("error = %q, want %q", resp["error"], "Invalid transformation type")
	}
}

func TestTransformShakespeareSuccess(t *testing.T) {
	r := newTestRouter(t, "Thou art a scoundrel!")

	w := postJSON(t, r, "/api/v1/transform", `{"text": "my neighbor mows at 7am", "type": "shakespeare"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp service.TransformResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Result != "Thou art a scoundrel!" {
		t.Errorf("result = %q", resp.Result)
	}
}

func TestTransformMemeCaptionFallbackIsStillOK(t *testing.T) {
	// Unparseable caption output degrades to a literal fallback meme; the
	// HTTP status stays 200.
	r := newTestRouter(t, "no json here, sorry")

	w := postJSON(t, r, "/api/v1/transform", `{"text": "everything is broken", "type": "meme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp service.TransformResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Result == "" || resp.Template == "" {
		t.Errorf("fallback response incomplete: %+v", resp)
	}
}
