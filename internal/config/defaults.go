package config

import "github.com/Thxamillion/fluentwhisper-sub001/internal/hallucination"

const (
	defaultConfigPath   = "~/.config/fluentwhisper/config.toml"
	projectConfigName   = "fluentwhisper.toml"
	defaultLangpackRoot = "~/.local/share/fluentwhisper/langpacks"
	langpackEnv         = "FLUENTWHISPER_LANGPACK_DIR"
	lemmaSubdir         = "lemmas"
	translationSubdir   = "translations"
	defaultLanguage     = "es"
	defaultTarget       = "en"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultConcurrency  = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Filter: Filter{
			Enabled:             true,
			FilterYouTube:       true,
			FilterMarkers:       true,
			FilterCredits:       true,
			FilterRepetition:    true,
			RepetitionThreshold: hallucination.DefaultRepetitionThreshold,
		},
		Tokenizer: Tokenizer{
			Language:          defaultLanguage,
			Lowercase:         true,
			RemovePunctuation: true,
			KeepHyphens:       true,
			KeepApostrophes:   true,
		},
		Langpack: Langpack{
			TargetLanguage: defaultTarget,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Pipeline: Pipeline{
			Concurrency: defaultConcurrency,
		},
	}
}
