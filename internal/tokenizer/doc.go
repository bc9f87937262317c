// Package tokenizer splits transcript text into normalized word tokens for
// lemmatization and word statistics.
//
// Tokenization runs in a fixed order:
//   - NFC normalization
//   - language-specific preprocessing (Spanish "del"/"al" expansion)
//   - splitting on Unicode whitespace (NBSP and U+3000 included)
//   - Unicode-aware punctuation stripping (\p{L}, \p{N}, optional - and ')
//   - removal of tokens left without letters or digits
//   - language-aware lowercasing via golang.org/x/text/cases
//
// Preprocessing is looked up by language code, so new languages are added by
// registering a Preprocessor rather than touching the pipeline body.
package tokenizer
