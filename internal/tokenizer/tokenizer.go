package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
)

// punctuationPatterns match everything that is not a letter or number, plus
// hyphen and apostrophe unless kept. Indexed by [keepHyphens][keepApostrophes].
var punctuationPatterns = [2][2]*regexp.Regexp{
	{
		regexp.MustCompile(`[^\p{L}\p{N}]+`),
		regexp.MustCompile(`[^\p{L}\p{N}']+`),
	},
	{
		regexp.MustCompile(`[^\p{L}\p{N}\-]+`),
		regexp.MustCompile(`[^\p{L}\p{N}\-']+`),
	},
}

func punctuationPattern(opts Options) *regexp.Regexp {
	return punctuationPatterns[boolIndex(opts.KeepHyphens)][boolIndex(opts.KeepApostrophes)]
}

func boolIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Tokenizer turns text into word tokens using a preprocessor registry.
// A Tokenizer is immutable and safe for concurrent use.
type Tokenizer struct {
	preprocessors Preprocessors
}

// New creates a Tokenizer. A nil registry means DefaultPreprocessors.
func New(preprocessors Preprocessors) *Tokenizer {
	if preprocessors == nil {
		preprocessors = DefaultPreprocessors()
	}
	return &Tokenizer{preprocessors: preprocessors}
}

var defaultTokenizer = New(nil)

// Tokenize splits text using the built-in preprocessors.
func Tokenize(text string, lang language.Code, opts Options) []string {
	return defaultTokenizer.Tokenize(text, lang, opts)
}

// Tokenize splits text into tokens. The result is never nil and never holds
// empty or whitespace-only tokens. Codes without a registered preprocessor,
// including unknown ones, get generic tokenization.
func (t *Tokenizer) Tokenize(text string, lang language.Code, opts Options) []string {
	text = norm.NFC.String(text)
	text = t.preprocessors.apply(lang, text)
	// Fields splits on unicode.IsSpace, which covers NBSP and U+3000.
	raw := strings.Fields(text)
	tokens := make([]string, 0, len(raw))

	var strip *regexp.Regexp
	if opts.RemovePunctuation {
		strip = punctuationPattern(opts)
	}
	var caser cases.Caser
	if opts.Lowercase {
		// A Caser carries state, so each call builds its own.
		caser = cases.Lower(lang.Tag())
	}

	for _, token := range raw {
		if strip != nil {
			token = strip.ReplaceAllString(token, "")
			if !hasWordRune(token) {
				continue
			}
		}
		if token == "" {
			continue
		}
		if opts.Lowercase {
			token = caser.String(token)
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// hasWordRune reports whether token still carries a letter or digit once
// punctuation is gone; a lone "-" or "'" is not a word.
func hasWordRune(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
