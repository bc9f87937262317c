// Package config loads, normalizes, and validates fluentwhisper configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the FLUENTWHISPER_LANGPACK_DIR environment fallback.
// Filter and tokenizer sections convert directly into the settings consumed by
// the hallucination and tokenizer packages so commands never assemble them by
// hand.
package config
