package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeTokenizer(); err != nil {
		return err
	}
	if err := c.normalizeLangpack(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeTokenizer() error {
	value := strings.TrimSpace(c.Tokenizer.Language)
	if value == "" {
		c.Tokenizer.Language = defaultLanguage
		return nil
	}
	code, err := language.Parse(value)
	if err != nil {
		return fmt.Errorf("tokenizer.language: %w", err)
	}
	c.Tokenizer.Language = code.String()
	return nil
}

func (c *Config) normalizeLangpack() error {
	root := defaultLangpackRoot
	if value, ok := os.LookupEnv(langpackEnv); ok && strings.TrimSpace(value) != "" {
		root = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Langpack.LemmaDir) == "" {
		c.Langpack.LemmaDir = filepath.Join(root, lemmaSubdir)
	}
	if strings.TrimSpace(c.Langpack.TranslationDir) == "" {
		c.Langpack.TranslationDir = filepath.Join(root, translationSubdir)
	}

	var err error
	if c.Langpack.LemmaDir, err = expandPath(strings.TrimSpace(c.Langpack.LemmaDir)); err != nil {
		return fmt.Errorf("langpack.lemma_dir: %w", err)
	}
	if c.Langpack.TranslationDir, err = expandPath(strings.TrimSpace(c.Langpack.TranslationDir)); err != nil {
		return fmt.Errorf("langpack.translation_dir: %w", err)
	}

	target := strings.TrimSpace(c.Langpack.TargetLanguage)
	if target == "" {
		c.Langpack.TargetLanguage = ""
		return nil
	}
	code, err := language.Parse(target)
	if err != nil {
		return fmt.Errorf("langpack.target_language: %w", err)
	}
	c.Langpack.TargetLanguage = code.String()
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
