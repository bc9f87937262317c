package langpack

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/config"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
)

// ErrPackNotFound reports a missing lemma or translation database.
var ErrPackNotFound = errors.New("language pack not found")

const dsnParams = "?_pragma=query_only(1)&_pragma=busy_timeout(5000)"

// Store resolves pack paths and keeps one connection pool per database file.
// It is safe for concurrent use.
type Store struct {
	lemmaDir       string
	translationDir string
	logger         *slog.Logger

	mu  sync.Mutex
	dbs map[string]*sql.DB
}

// New returns a Store rooted at the given directories. Nothing is opened
// until the first lookup.
func New(lemmaDir, translationDir string, logger *slog.Logger) *Store {
	return &Store{
		lemmaDir:       lemmaDir,
		translationDir: translationDir,
		logger:         logging.NewComponentLogger(logger, "langpack"),
		dbs:            make(map[string]*sql.DB),
	}
}

// NewFromConfig returns a Store for the configured [langpack] directories.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Store {
	return New(cfg.Langpack.LemmaDir, cfg.Langpack.TranslationDir, logger)
}

// LemmaPath returns where the lemma pack for lang is expected.
func (s *Store) LemmaPath(lang language.Code) string {
	return filepath.Join(s.lemmaDir, lang.String(), "lemmas.db")
}

// HasLemmas reports whether a lemma pack is installed for lang.
func (s *Store) HasLemmas(lang language.Code) bool {
	return fileExists(s.LemmaPath(lang))
}

// TranslationPath returns the translation pack serving from→to, preferring
// the forward file. It wraps ErrPackNotFound when neither direction exists.
func (s *Store) TranslationPath(from, to language.Code) (string, error) {
	forward := filepath.Join(s.translationDir, fmt.Sprintf("%s-%s.db", from, to))
	if fileExists(forward) {
		return forward, nil
	}
	reverse := filepath.Join(s.translationDir, fmt.Sprintf("%s-%s.db", to, from))
	if fileExists(reverse) {
		return reverse, nil
	}
	return "", fmt.Errorf("%w: translations %s-%s (tried both directions in %s)", ErrPackNotFound, from, to, s.translationDir)
}

// HasTranslations reports whether a translation pack serves from→to.
func (s *Store) HasTranslations(from, to language.Code) bool {
	_, err := s.TranslationPath(from, to)
	return err == nil
}

func (s *Store) open(path string) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if db, ok := s.dbs[path]; ok {
		return db, nil
	}
	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, path)
	}

	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open language pack %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open language pack %s: %w", path, err)
	}

	s.dbs[path] = db
	s.logger.Debug("language pack opened", logging.String("path", path))
	return db, nil
}

// Close releases every cached database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for path, db := range s.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
		delete(s.dbs, path)
	}
	return errors.Join(errs...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
