package meme

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rantrex/rantrex/internal/logger"
)

// Final fallback captions, used when every validation attempt fails.
const (
	lastResortTemplate = "drake"
	lastResortTop      = "When_the_meme_fails"
	lastResortBottom   = "But_we_keep_going"
)

// URLBuilderConfig holds configuration for the meme URL builder.
type URLBuilderConfig struct {
	BaseURL         string
	Width           int
	Height          int
	Font            string
	Watermark       string
	ValidateTimeout time.Duration
}

// URLBuilder constructs meme image URLs and validates them against the
// rendering service before returning them to callers.
type URLBuilder struct {
	client  *resty.Client
	baseURL string
	params  string
}

// NewURLBuilder creates a new URL builder.
func NewURLBuilder(cfg *URLBuilderConfig) *URLBuilder {
	timeout := cfg.ValidateTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.memegen.link/images"
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 1200
	}
	font := cfg.Font
	if font == "" {
		font = "impact"
	}
	watermark := cfg.Watermark
	if watermark == "" {
		watermark = "none"
	}

	return &URLBuilder{
		client:  client,
		baseURL: baseURL,
		params: fmt.Sprintf("?width=%d&height=%d&font=%s&watermark=%s",
			width, height, font, watermark),
	}
}

// Render returns the image URL for a template and two sanitized captions
// without contacting the rendering service.
func (b *URLBuilder) Render(template, top, bottom string) string {
	return fmt.Sprintf("%s/%s/%s/%s.png%s", b.baseURL, template, top, bottom, b.params)
}

// Build returns a validated meme URL together with the template actually
// used. The requested template is tried first, then each guaranteed template
// with the same captions, and finally a hard-coded meme that is returned
// without validation. Build never fails; validation errors are logged only.
func (b *URLBuilder) Build(ctx context.Context, template, top, bottom string) (string, string) {
	type attempt struct {
		template string
		top      string
		bottom   string
	}

	attempts := []attempt{{template, top, bottom}}
	for _, t := range GuaranteedTemplates {
		attempts = append(attempts, attempt{t, top, bottom})
	}

	for _, a := range attempts {
		url := b.Render(a.template, a.top, a.bottom)
		if b.Validate(ctx, url) {
			return url, a.template
		}
		logger.CtxWarn(ctx, "Meme URL failed validation: template=%s, url=%s", a.template, url)
	}

	logger.CtxWarn(ctx, "All meme templates failed validation, using last resort")
	return b.Render(lastResortTemplate, lastResortTop, lastResortBottom), lastResortTemplate
}

// Validate fetches the URL and reports whether it serves a non-empty image.
// Any transport error, timeout, non-2xx status, non-image content type, or
// empty body counts as invalid.
func (b *URLBuilder) Validate(ctx context.Context, url string) bool {
	resp, err := b.client.R().SetContext(ctx).Get(url)
	if err != nil {
		logger.CtxWarn(ctx, "Meme URL validation request failed: url=%s, error=%v", url, err)
		return false
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		logger.CtxDebug(ctx, "Meme URL validation got status %d: url=%s", resp.StatusCode(), url)
		return false
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		logger.CtxDebug(ctx, "Meme URL has non-image content type %q: url=%s", contentType, url)
		return false
	}

	if len(resp.Body()) == 0 {
		logger.CtxDebug(ctx, "Meme URL returned empty body: url=%s", url)
		return false
	}

	return true
}
