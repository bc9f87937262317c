// Package language defines the closed set of transcript languages and
// normalizes the codes callers hand in (ISO 639-1, ISO 639-2, English names).
//
// Everything downstream (tokenizer preprocessors, language packs, casing)
// keys off Code, so unrecognized input is rejected here, once, at the edge.
package language
