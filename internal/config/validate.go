package config

import (
	"errors"
	"fmt"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Pipeline.Concurrency < 1 {
		return errors.New("pipeline.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateFilter() error {
	if err := c.FilterSettings().Validate(); err != nil {
		return fmt.Errorf("filter.repetition_threshold: %w", err)
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if _, err := language.Parse(c.Tokenizer.Language); err != nil {
		return fmt.Errorf("tokenizer.language: %w", err)
	}
	if c.Langpack.TargetLanguage != "" {
		if _, err := language.Parse(c.Langpack.TargetLanguage); err != nil {
			return fmt.Errorf("langpack.target_language: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn or error)", c.Logging.Level)
	}
	return nil
}
