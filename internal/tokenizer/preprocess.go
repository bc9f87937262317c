package tokenizer

import (
	"maps"
	"regexp"
	"strings"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
)

// Preprocessor rewrites raw text before it is split into tokens.
type Preprocessor func(string) string

// Preprocessors maps a language to its preprocessing step. Languages without
// an entry are tokenized generically.
type Preprocessors map[language.Code]Preprocessor

var defaultPreprocessors = Preprocessors{
	language.Spanish: expandSpanishContractions,
}

// DefaultPreprocessors returns a copy of the built-in registry.
func DefaultPreprocessors() Preprocessors {
	return maps.Clone(defaultPreprocessors)
}

// With returns a copy of p with fn registered for code.
func (p Preprocessors) With(code language.Code, fn Preprocessor) Preprocessors {
	out := maps.Clone(p)
	if out == nil {
		out = Preprocessors{}
	}
	out[code] = fn
	return out
}

func (p Preprocessors) apply(code language.Code, text string) string {
	if fn, ok := p[code]; ok && fn != nil {
		return fn(text)
	}
	return text
}

// wordRun matches a maximal run of letters, marks and digits. Matching whole
// runs gives Unicode word boundaries; regexp's \b is ASCII-only and would
// split "señal" before the "al".
var wordRun = regexp.MustCompile(`[\p{L}\p{M}\p{N}]+`)

var spanishContractions = map[string]string{
	"del": "de el",
	"al":  "a el",
}

func expandSpanishContractions(text string) string {
	return wordRun.ReplaceAllStringFunc(text, func(word string) string {
		if expanded, ok := spanishContractions[strings.ToLower(word)]; ok {
			return expanded
		}
		return word
	})
}
