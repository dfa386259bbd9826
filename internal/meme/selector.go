package meme

import (
	"math/rand"
	"regexp"
	"strings"
)

// themePatterns holds the compiled keyword patterns, built once at init.
var themePatterns = compileThemePatterns()

func compileThemePatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(themeGroups))
	for i, g := range themeGroups {
		patterns[i] = regexp.MustCompile(g.pattern)
	}
	return patterns
}

// SelectTemplate picks a template for the given rant text.
//
// The text is classified against the ordered theme groups; the first matching
// group supplies the candidate list. The previous template is always removed
// from the candidates. An empty candidate list falls back to the full
// catalog, then to the guaranteed set, each minus the previous template.
// Candidates are shuffled, so repeated calls with the same input may differ.
func SelectTemplate(text string, previousTemplate string) string {
	textLower := strings.ToLower(text)

	var matched []string
	for i, p := range themePatterns {
		if p.MatchString(textLower) {
			matched = append([]string(nil), themeGroups[i].candidates...)
			break
		}
	}

	matched = exclude(matched, previousTemplate)

	if len(matched) == 0 {
		matched = exclude(Templates, previousTemplate)
	}
	if len(matched) == 0 {
		matched = exclude(GuaranteedTemplates, previousTemplate)
	}
	if len(matched) == 0 {
		// Everything equals the previous template; a repeat is acceptable.
		return GuaranteedTemplates[0]
	}

	rand.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})

	return matched[0]
}

// MatchTheme returns the name of the first theme group matching the text, or
// an empty string when no group matches.
func MatchTheme(text string) string {
	textLower := strings.ToLower(text)
	for i, p := range themePatterns {
		if p.MatchString(textLower) {
			return themeGroups[i].name
		}
	}
	return ""
}

// ThemeCandidates returns the curated candidate list for a theme name.
func ThemeCandidates(name string) []string {
	for _, g := range themeGroups {
		if g.name == name {
			return append([]string(nil), g.candidates...)
		}
	}
	return nil
}

// RandomSimpleTemplate returns one of the simple templates used for
// literal-caption fallback memes.
func RandomSimpleTemplate() string {
	return SimpleTemplates[rand.Intn(len(SimpleTemplates))]
}

func exclude(templates []string, previous string) []string {
	if previous == "" {
		return append([]string(nil), templates...)
	}
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		if t != previous {
			out = append(out, t)
		}
	}
	return out
}
