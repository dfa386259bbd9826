package meme

// ============================================================================
// Template catalog (static data, loaded once, never mutated)
// ============================================================================

// Templates is the full set of meme template identifiers understood by the
// external meme rendering service.
var Templates = []string{
	// Classic reaction memes
	"drake",
	"disaster-girl",
	"doge",
	"fine",
	"success",
	"rollsafe",
	"spongebob",
	"buzz",
	"patrick",
	"salt-bae",
	"thinking",

	// Emotional / dramatic
	"sad-pablo",
	"crying-cat",
	"this-is-fine",
	"harold",
	"feels",
	"sad-keanu",
	"first-world",

	// Sassy / attitude
	"wonka",
	"skeptical",
	"aliens",
	"pigeon",
	"so-hot",
	"shut-up",

	// Plot twist
	"uno-reverse",
	"they-dont-know",
	"always-has-been",
	"wait-its-all",
	"matrix",
	"surprised",

	// Relationship
	"distracted-bf",
	"woman-yelling",
	"butterfly",
	"everywhere",
	"two-buttons",
	"girlfriend",

	// Motivational / success
	"stonks",
	"modern",
	"outstanding",
	"power",

	// Classic formats
	"change-mind",
	"one-does-not",
	"y-u-no",
	"shut-up-money",
	"i-dont-always",
}

// GuaranteedTemplates are templates known to always render; used as the
// fallback chain when a candidate URL fails validation.
var GuaranteedTemplates = []string{"drake", "doge", "success", "fine"}

// SimpleTemplates are used for the literal-caption meme produced when caption
// generation fails entirely.
var SimpleTemplates = []string{"success", "doge", "rollsafe"}

// themeGroup maps an emotional theme, detected by whole-word keyword match,
// to a curated candidate list. Groups are checked in order; first match wins.
type themeGroup struct {
	name       string
	pattern    string
	candidates []string
}

var themeGroups = []themeGroup{
	{
		name:       "standards",
		pattern:    `\b(standards?|deserve|better than|loyalty|bare minimum|prize)\b`,
		candidates: []string{"skeptical", "wonka", "rollsafe", "spongebob"},
	},
	{
		name:       "relationship",
		pattern:    `\b(ex|dating|relationship|breakup|broke up|cheated)\b`,
		candidates: []string{"distracted-bf", "woman-yelling", "drake", "harold"},
	},
	{
		name:       "success",
		pattern:    `\b(better|winning|success|glow up|improved|thriving)\b`,
		candidates: []string{"success", "doge", "uno-reverse", "rollsafe"},
	},
	{
		name:       "anger",
		pattern:    `\b(angry|mad|hate|furious|rage|upset)\b`,
		candidates: []string{"fine", "crying-cat", "woman-yelling", "spongebob"},
	},
	{
		name:       "plot-twist",
		pattern:    `\b(plot twist|turns out|actually|suddenly|realize|realized|meanwhile|playing themselves)\b`,
		candidates: []string{"always-has-been", "uno-reverse", "they-dont-know", "butterfly"},
	},
	{
		name:       "sadness",
		pattern:    `\b(sad|miss|heart|lonely|depressed|crying)\b`,
		candidates: []string{"sad-pablo", "crying-cat", "this-is-fine", "harold"},
	},
	{
		name:       "revenge",
		pattern:    `\b(karma|revenge|payback|showed them|proved)\b`,
		candidates: []string{"success", "uno-reverse", "rollsafe", "doge"},
	},
}

// slangReplacement expands one shorthand token into plain English.
type slangReplacement struct {
	pattern     string
	replacement string
}

// slangDictionary is applied in order before captions are embedded in URLs.
var slangDictionary = []slangReplacement{
	{`\b2c\b`, "to"},
	{`\b4\b`, "for"},
	{`\bu\b`, "you"},
	{`\br\b`, "are"},
	{`\bb4\b`, "before"},
	{`\bgr8\b`, "great"},
	{`\bm8\b`, "mate"},
	{`\bl8r\b`, "later"},
	{`\bw/`, "with"},
	{`\bn/`, "and"},
}
