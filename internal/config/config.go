package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/hallucination"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/tokenizer"
)

//go:embed sample_config.toml
var sampleConfig string

// Filter mirrors hallucination.Settings.
type Filter struct {
	Enabled             bool `toml:"enabled"`
	FilterYouTube       bool `toml:"filter_youtube"`
	FilterMarkers       bool `toml:"filter_markers"`
	FilterCredits       bool `toml:"filter_credits"`
	FilterRepetition    bool `toml:"filter_repetition"`
	RepetitionThreshold int  `toml:"repetition_threshold"`
}

// Tokenizer holds the default transcript language and token options.
type Tokenizer struct {
	Language          string `toml:"language"`
	Lowercase         bool   `toml:"lowercase"`
	RemovePunctuation bool   `toml:"remove_punctuation"`
	KeepHyphens       bool   `toml:"keep_hyphens"`
	KeepApostrophes   bool   `toml:"keep_apostrophes"`
}

// Langpack locates the lemma and translation databases.
type Langpack struct {
	LemmaDir       string `toml:"lemma_dir"`
	TranslationDir string `toml:"translation_dir"`
	TargetLanguage string `toml:"target_language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives a copy of every log line when set.
	File string `toml:"file"`
}

// Pipeline bounds batch processing.
type Pipeline struct {
	Concurrency int `toml:"concurrency"`
}

// Config encapsulates all configuration values for fluentwhisper.
type Config struct {
	Filter    Filter    `toml:"filter"`
	Tokenizer Tokenizer `toml:"tokenizer"`
	Langpack  Langpack  `toml:"langpack"`
	Logging   Logging   `toml:"logging"`
	Pipeline  Pipeline  `toml:"pipeline"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// FilterSettings converts the [filter] section.
func (c *Config) FilterSettings() hallucination.Settings {
	return hallucination.Settings{
		Enabled:             c.Filter.Enabled,
		FilterYouTube:       c.Filter.FilterYouTube,
		FilterMarkers:       c.Filter.FilterMarkers,
		FilterCredits:       c.Filter.FilterCredits,
		FilterRepetition:    c.Filter.FilterRepetition,
		RepetitionThreshold: c.Filter.RepetitionThreshold,
	}
}

// TokenizerOptions converts the [tokenizer] section.
func (c *Config) TokenizerOptions() tokenizer.Options {
	return tokenizer.Options{
		Lowercase:         c.Tokenizer.Lowercase,
		RemovePunctuation: c.Tokenizer.RemovePunctuation,
		KeepHyphens:       c.Tokenizer.KeepHyphens,
		KeepApostrophes:   c.Tokenizer.KeepApostrophes,
	}
}

// SourceLanguage returns the configured transcript language. Load has already
// validated it, so an unparsable value yields language.Spanish.
func (c *Config) SourceLanguage() language.Code {
	code, err := language.Parse(c.Tokenizer.Language)
	if err != nil {
		return language.Spanish
	}
	return code
}

// TargetLanguage returns the configured translation language, or "" when
// translation is not configured.
func (c *Config) TargetLanguage() language.Code {
	if strings.TrimSpace(c.Langpack.TargetLanguage) == "" {
		return ""
	}
	code, err := language.Parse(c.Langpack.TargetLanguage)
	if err != nil {
		return ""
	}
	return code
}
