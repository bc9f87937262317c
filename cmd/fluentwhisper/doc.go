// Package main hosts the fluentwhisper CLI entrypoint and command graph.
//
// The Cobra command tree cleans Whisper transcripts of hallucinated phrases,
// tokenizes them for vocabulary tracking, and runs the full analysis pipeline
// against installed language packs. It resolves configuration and logging once
// so subcommands only deal with input and output.
package main
