package meme

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newImageServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestBuilder(baseURL string) *URLBuilder {
	return NewURLBuilder(&URLBuilderConfig{
		BaseURL:         baseURL,
		ValidateTimeout: 2 * time.Second,
	})
}

func TestRender(t *testing.T) {
	b := newTestBuilder("https://memes.test/images")

	got := b.Render("drake", "top_text", "bottom_text")
	want := "https://memes.test/images/drake/top_text/bottom_text.png?width=1200&height=1200&font=impact&watermark=none"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestBuildUsesRequestedTemplate(t *testing.T) {
	var requests []string
	srv := newImageServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	})

	b := newTestBuilder(srv.URL)
	url, template := b.Build(context.Background(), "wonka", "caption_one", "caption_two")

	if template != "wonka" {
		t.Errorf("Build template = %q, want %q", template, "wonka")
	}
	if !strings.Contains(url, "/wonka/caption_one/caption_two.png") {
		t.Errorf("Build url = %q, missing template and captions", url)
	}
	if len(requests) != 1 {
		t.Errorf("Build issued %d validation requests, want 1", len(requests))
	}
}

func TestBuildFallsBackToGuaranteedTemplate(t *testing.T) {
	srv := newImageServer(t, func(w http.ResponseWriter, r *http.Request) {
		// The requested template 404s; guaranteed templates render fine.
		if strings.Contains(r.URL.Path, "/wonka/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	})

	b := newTestBuilder(srv.URL)
	url, template := b.Build(context.Background(), "wonka", "caption_one", "caption_two")

	if template != GuaranteedTemplates[0] {
		t.Errorf("Build template = %q, want %q", template, GuaranteedTemplates[0])
	}
	if !strings.Contains(url, "/caption_one/caption_two.png") {
		t.Errorf("Build url = %q, captions not carried to fallback", url)
	}
}

func TestBuildLastResortWhenEverythingFails(t *testing.T) {
	var requests int
	srv := newImageServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	})

	b := newTestBuilder(srv.URL)
	url, template := b.Build(context.Background(), "wonka", "caption_one", "caption_two")

	if template != lastResortTemplate {
		t.Errorf("Build template = %q, want %q", template, lastResortTemplate)
	}
	want := "/" + lastResortTemplate + "/" + lastResortTop + "/" + lastResortBottom + ".png"
	if !strings.Contains(url, want) {
		t.Errorf("Build url = %q, want it to contain %q", url, want)
	}
	// Requested template plus each guaranteed template, none revalidated after.
	if wantReqs := 1 + len(GuaranteedTemplates); requests != wantReqs {
		t.Errorf("Build issued %d validation requests, want %d", requests, wantReqs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected bool
	}{
		{
			name: "valid image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				w.Write([]byte("jpeg-bytes"))
			},
			expected: true,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expected: false,
		},
		{
			name: "wrong content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html>not a meme</html>"))
			},
			expected: false,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newImageServer(t, tt.handler)
			b := newTestBuilder(srv.URL)

			if got := b.Validate(context.Background(), srv.URL+"/drake/a/b.png"); got != tt.expected {
				t.Errorf("Validate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b := newTestBuilder(url)
	if b.Validate(context.Background(), url+"/drake/a/b.png") {
		t.Error("Validate() = true for unreachable server, want false")
	}
}
