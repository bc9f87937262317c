// Package transcript runs a finished ASR transcript through the normalization
// stages and the vocabulary collaborators.
//
// A [Pipeline] cleans the text with the hallucination filter, tokenizes it,
// and, when configured, resolves tokens to lemmas through a [Lemmatizer] and
// lemmas to translations through a [Translator]. It also derives the session
// statistics the vocabulary tracker records: word count, unique word count
// and words per minute.
//
// The filter and tokenizer stages are pure; only the collaborators perform
// I/O, so the context passed to Process bounds those lookups alone.
package transcript
