package tokenizer

import "github.com/Thxamillion/fluentwhisper-sub001/internal/language"

// Stats is a tokenization result with unique-token bookkeeping.
type Stats struct {
	Tokens       []string `json:"tokens"`
	UniqueTokens []string `json:"uniqueTokens"`
	TotalCount   int      `json:"totalCount"`
	UniqueCount  int      `json:"uniqueCount"`
}

// TokenizeWithStats tokenizes text with the built-in preprocessors and
// reports distinct tokens in first-occurrence order.
func TokenizeWithStats(text string, lang language.Code, opts Options) Stats {
	return defaultTokenizer.TokenizeWithStats(text, lang, opts)
}

// TokenizeWithStats is Tokenize plus unique-token counts.
func (t *Tokenizer) TokenizeWithStats(text string, lang language.Code, opts Options) Stats {
	tokens := t.Tokenize(text, lang, opts)
	unique := Unique(tokens)
	return Stats{
		Tokens:       tokens,
		UniqueTokens: unique,
		TotalCount:   len(tokens),
		UniqueCount:  len(unique),
	}
}

// Unique returns the distinct values of tokens in first-occurrence order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
