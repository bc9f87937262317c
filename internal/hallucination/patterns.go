package hallucination

import (
	"regexp"
	"strings"
)

// Category groups patterns that can be toggled together.
type Category string

const (
	// CategoryYouTube covers video-platform calls to action ("thanks for watching").
	CategoryYouTube Category = "youtube"
	// CategoryMarkers covers non-speech cues such as [MUSIC] or ♪.
	CategoryMarkers Category = "markers"
	// CategoryCredits covers subtitle and transcription attribution lines.
	CategoryCredits Category = "credits"
)

// Categories lists every category in table order.
func Categories() []Category {
	return []Category{CategoryMarkers, CategoryCredits, CategoryYouTube}
}

// Pattern is one removal rule.
type Pattern struct {
	matcher     *regexp.Regexp
	Description string
	Category    Category
}

// Expression returns the compiled regular expression source.
func (p Pattern) Expression() string {
	return p.matcher.String()
}

// MatchString reports whether the pattern matches anywhere in text.
func (p Pattern) MatchString(text string) bool {
	return p.matcher.MatchString(text)
}

// unicodeSpace stands in for \s in every rule. RE2's \s is ASCII only and
// would not match NBSP or U+3000 between words.
const unicodeSpace = `[\s\p{Z}]`

// trailingPunct swallows sentence punctuation directly after a match so a
// removed sentence does not leave an orphaned "." behind.
const trailingPunct = `(?:\s*[.,!?…]+)?`

// creditTail consumes the attribution text up to the next terminator.
const creditTail = `[^.!?\n]*`

func phrase(words ...string) string {
	return `\b` + strings.Join(words, `\s+`)
}

func rule(category Category, description, expr string) Pattern {
	return Pattern{
		matcher:     regexp.MustCompile(`(?i)` + strings.ReplaceAll(expr+trailingPunct, `\s`, unicodeSpace)),
		Description: description,
		Category:    category,
	}
}

// patterns is applied in order; later rules see the text left by earlier ones.
var patterns = []Pattern{
	// Markers: non-speech audio cues, no legitimate literal use.
	rule(CategoryMarkers, "bracketed non-speech cue",
		`[\[(]\s*(?:music|background\s+music|applause|laughter|laughs|silence|blank_audio|blank\s+audio|inaudible|noise|background\s+noise|música|aplausos|risas|musique|applaudissements|rires|musik|applaus|gelächter)\s*[\])]`),
	rule(CategoryMarkers, "music note run", `[♪♫♬🎵🎶]+`),

	// Credits: attribution boilerplate, consumed through the end of the
	// sentence. Bare Amara.org mentions go before the tail rules because the
	// dot in the domain would otherwise end a tail early.
	rule(CategoryCredits, "Amara.org community credit", phrase(`subtitles`, `by`, `the`, `amara\.org`, `community`)),
	rule(CategoryCredits, "Amara.org mention", `\bamara\.org\b`),
	rule(CategoryCredits, "English subtitle credit",
		`\b(?:subtitles|subtitled|captions|captioned|closed\s+captioning|transcribed|transcription)\s+by\b`+creditTail),
	rule(CategoryCredits, "Spanish subtitle credit", `\bsubtítulos\s+(?:realizados\s+|hechos\s+)?por\b`+creditTail),
	rule(CategoryCredits, "French subtitle credit", `\bsous-titres?\s+(?:réalisés\s+)?par\b`+creditTail),
	rule(CategoryCredits, "German subtitle credit", `\buntertitel\s+(?:im\s+auftrag\s+des\s+zdf|von)\b`+creditTail),

	// YouTube: whole calls to action only, never the bare keyword.
	rule(CategoryYouTube, "thanks for watching", `\bthank(?:s|\s+you)(?:\s+so\s+much|\s+very\s+much)?\s+for\s+watching`),
	rule(CategoryYouTube, "don't forget to subscribe", phrase(`don[’']t`, `forget`, `to`, `(?:like\s+and\s+)?subscribe`)),
	rule(CategoryYouTube, "like and subscribe", phrase(`(?:please\s+)?like`, `and`, `subscribe`)),
	rule(CategoryYouTube, "please subscribe", phrase(`please`, `subscribe`)),
	rule(CategoryYouTube, "subscribe to the channel", phrase(`subscribe`, `to`, `(?:my|our|the|this)`, `channel`)),
	rule(CategoryYouTube, "hit the bell", phrase(`(?:hit|smash|click|ring)`, `the`, `(?:like|bell|subscribe|notification)`)+`(?:\s+(?:button|icon))?`),
	rule(CategoryYouTube, "see you in the next video", phrase(`see`, `you`, `in`, `the`, `next`, `(?:video|episode)`)),
	rule(CategoryYouTube, "Spanish thanks for watching", `(?:¡\s*)?`+phrase(`gracias`, `por`, `ver`)+`(?:\s+el\s+video)?\b`),
	rule(CategoryYouTube, "Spanish subscribe to the channel", `(?:¡\s*)?\bsuscríbete\s+(?:a\s+(?:mi|nuestro|este)|al)\s+canal`),
	rule(CategoryYouTube, "French thanks for watching", phrase(`merci`, `d[’']avoir`, `regardé`)),
	rule(CategoryYouTube, "German thanks for watching", phrase(`danke`, `fürs`, `zuschauen`)),
}

// Patterns returns a copy of the pattern table in application order.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
