package meme

import (
	"regexp"
	"strings"
)

const maxCaptionLength = 50

var (
	quoteChars      = regexp.MustCompile(`['"]`)
	disallowedChars = regexp.MustCompile(`[^\w\s!?,.~]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)

	slangPatterns = compileSlangPatterns()
)

func compileSlangPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(slangDictionary))
	for i, s := range slangDictionary {
		patterns[i] = regexp.MustCompile(`(?i)` + s.pattern)
	}
	return patterns
}

// Sanitize normalizes free-form rant text into a caption safe for embedding
// in a meme URL path segment.
//
// Applied in order: strip quotes, expand slang shorthand, drop characters
// outside the caption alphabet, collapse whitespace, join words with
// underscores, escape '?' using the meme service's tilde notation, and clamp
// the length. Sanitize is pure and idempotent: running it over its own output
// returns the output unchanged. Empty input maps to a single underscore so
// the URL path segment is never empty.
func Sanitize(text string) string {
	text = quoteChars.ReplaceAllString(text, "")

	for i, p := range slangPatterns {
		text = p.ReplaceAllString(text, slangDictionary[i].replacement)
	}

	text = disallowedChars.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, " ", "_")

	// The meme service escapes '?' as "~q" in path segments. Percent-encoding
	// is not used here: a '%' would not survive the character filter above,
	// which would break idempotency.
	text = strings.ReplaceAll(text, "?", "~q")

	if len(text) > maxCaptionLength {
		// The cut can land inside a "~q" escape; drop trailing tildes so the
		// caption never ends with a bare escape prefix.
		text = strings.TrimRight(text[:maxCaptionLength], "~")
	}

	if text == "" {
		return "_"
	}
	return text
}
