package service

import (
	"context"

	"github.com/rantrex/rantrex/internal/logger"
	"github.com/rantrex/rantrex/internal/meme"
)

// Transform types accepted by the dispatcher.
const (
	TypeShakespeare = "shakespeare"
	TypeMeme        = "meme"
	TypeSong        = "song"
)

// Captions used when caption generation fails and a literal meme is served.
const (
	fallbackTopCaption    = "Keep_Moving_Forward"
	fallbackBottomCaption = "Stay_Winning"
)

// TransformRequest is a single transformation request. Nothing about it is
// persisted; it lives for the duration of one HTTP call.
type TransformRequest struct {
	Text             string `json:"text" binding:"required"`
	Type             string `json:"type"`
	PreviousTemplate string `json:"previousTemplate,omitempty"`
	ForceNewTemplate bool   `json:"forceNewTemplate,omitempty"`
}

// TransformResult is the uniform result envelope: text, an image URL, or an
// audio URL, plus the template used for meme results.
type TransformResult struct {
	Result   string `json:"result"`
	Template string `json:"template,omitempty"`
}

// TransformService routes a request to the Shakespeare, meme, or song
// pipeline and applies each pipeline's fallback policy.
type TransformService struct {
	chat    *ChatService
	song    *SongService
	builder *meme.URLBuilder
	mockURL string
}

// TransformConfig holds dispatcher-level configuration.
type TransformConfig struct {
	// SongMockURL is returned for song requests when the song provider
	// credential is absent, as a development convenience.
	SongMockURL string
}

// NewTransformService creates the transform dispatcher.
func NewTransformService(chat *ChatService, song *SongService, builder *meme.URLBuilder, cfg *TransformConfig) *TransformService {
	mockURL := ""
	if cfg != nil {
		mockURL = cfg.SongMockURL
	}
	return &TransformService{
		chat:    chat,
		song:    song,
		builder: builder,
		mockURL: mockURL,
	}
}

// Transform dispatches by request type. Unknown types return ErrUnknownType
// without any provider call.
func (s *TransformService) Transform(ctx context.Context, req *TransformRequest) (*TransformResult, error) {
	switch req.Type {
	case TypeShakespeare:
		return s.transformShakespeare(ctx, req)
	case TypeMeme:
		return s.transformMeme(ctx, req)
	case TypeSong:
		return s.transformSong(ctx, req)
	default:
		return nil, ErrUnknownType
	}
}

func (s *TransformService) transformShakespeare(ctx context.Context, req *TransformRequest) (*TransformResult, error) {
	roast, err := s.chat.ShakespeareRoast(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	return &TransformResult{Result: roast}, nil
}

// transformMeme runs the meme pipeline: caption generation, sanitization,
// template selection excluding the previous template, and validated URL
// construction. Provider failures never surface to the caller; every failure
// mode degrades to a meme that is known to render.
func (s *TransformService) transformMeme(ctx context.Context, req *TransformRequest) (*TransformResult, error) {
	caption, err := s.chat.MemeCaptions(ctx, req.Text)
	if err != nil {
		// Caption generation failed (provider error or unparseable JSON).
		// Serve a literal-caption meme instead of surfacing the error.
		template := meme.RandomSimpleTemplate()
		logger.CtxWarn(ctx, "Meme caption generation failed, using literal fallback: template=%s, error=%v", template, err)
		return &TransformResult{
			Result:   s.builder.Render(template, fallbackTopCaption, fallbackBottomCaption),
			Template: template,
		}, nil
	}

	top := meme.Sanitize(caption.Top)
	bottom := meme.Sanitize(caption.Bottom)

	template := meme.SelectTemplate(req.Text, req.PreviousTemplate)
	ctx = logger.WithField(ctx, logger.FieldTemplate, template)
	logger.CtxDebug(ctx, "Template selected: previous=%s, force_new=%t", req.PreviousTemplate, req.ForceNewTemplate)

	url, used := s.builder.Build(ctx, template, top, bottom)

	// The fallback chain may have landed on the template we were asked to
	// avoid; re-pick once with the resolved template excluded.
	if req.PreviousTemplate != "" && used == req.PreviousTemplate {
		logger.CtxInfo(ctx, "Resolved template equals previous, re-selecting: template=%s", used)
		retry := meme.SelectTemplate(req.Text, used)
		url, used = s.builder.Build(ctx, retry, top, bottom)
	}

	logger.CtxInfo(ctx, "Meme generated: template=%s", used)
	return &TransformResult{Result: url, Template: used}, nil
}

func (s *TransformService) transformSong(ctx context.Context, req *TransformRequest) (*TransformResult, error) {
	audioURL, err := s.song.Generate(ctx, req.Text)
	if err != nil {
		if !s.song.HasCredential() {
			logger.CtxWarn(ctx, "Song provider credential absent, returning mock result: error=%v", err)
			return &TransformResult{Result: s.mockURL}, nil
		}
		return nil, err
	}
	return &TransformResult{Result: audioURL}, nil
}
