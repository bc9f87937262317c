package transcript

import (
	"context"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
)

// Lemma pairs a surface word with its dictionary form.
type Lemma struct {
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
}

// Translation pairs a lemma with its translation. Translation is nil when
// the dictionary has no entry.
type Translation struct {
	Lemma       string  `json:"lemma"`
	Translation *string `json:"translation"`
}

// Lemmatizer resolves words to lemmas in one batch. Words without a known
// lemma come back as their own lemma.
//
// Implementations must be safe for concurrent use.
type Lemmatizer interface {
	LemmatizeBatch(ctx context.Context, words []string, lang language.Code) ([]Lemma, error)
}

// Translator looks up translations for a batch of lemmas.
//
// Implementations must be safe for concurrent use.
type Translator interface {
	TranslateBatch(ctx context.Context, lemmas []string, from, to language.Code) ([]Translation, error)
}
