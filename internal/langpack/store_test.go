package langpack_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/langpack"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
)

func buildDB(t *testing.T, path string, stmts ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func buildLemmaPack(t *testing.T, lemmaDir string, lang language.Code) {
	t.Helper()
	buildDB(t, filepath.Join(lemmaDir, lang.String(), "lemmas.db"),
		`CREATE TABLE lemmas (word TEXT NOT NULL, lemma TEXT NOT NULL)`,
		`INSERT INTO lemmas (word, lemma) VALUES ('fui', 'ir'), ('casas', 'casa'), ('estás', 'estar')`,
	)
}

func buildTranslationPack(t *testing.T, path string) {
	t.Helper()
	buildDB(t, path,
		`CREATE TABLE translations (
            id INTEGER PRIMARY KEY,
            lemma_from TEXT NOT NULL,
            lang_from TEXT NOT NULL,
            lang_to TEXT NOT NULL,
            translation TEXT NOT NULL
        )`,
		`INSERT INTO translations (id, lemma_from, lang_from, lang_to, translation) VALUES
            (1, 'casa', 'es', 'en', 'house'),
            (2, 'casa', 'es', 'en', 'home'),
            (3, 'ir', 'es', 'en', 'to go'),
            (4, 'house', 'en', 'es', 'casa')`,
	)
}

func newStore(t *testing.T) (*langpack.Store, string, string) {
	t.Helper()
	root := t.TempDir()
	lemmaDir := filepath.Join(root, "lemmas")
	translationDir := filepath.Join(root, "translations")
	store := langpack.New(lemmaDir, translationDir, logging.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store, lemmaDir, translationDir
}

func TestLemmatizeBatch(t *testing.T) {
	store, lemmaDir, _ := newStore(t)
	buildLemmaPack(t, lemmaDir, language.Spanish)

	if !store.HasLemmas(language.Spanish) {
		t.Fatal("expected Spanish lemma pack to be found")
	}

	got, err := store.LemmatizeBatch(context.Background(), []string{"Fui", "casas", "hola", "estás"}, language.Spanish)
	if err != nil {
		t.Fatalf("LemmatizeBatch: %v", err)
	}
	want := []struct{ word, lemma string }{
		{"Fui", "ir"},
		{"casas", "casa"},
		{"hola", "hola"},
		{"estás", "estar"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lemmas, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Word != w.word || got[i].Lemma != w.lemma {
			t.Errorf("lemma[%d] = %+v, want %s→%s", i, got[i], w.word, w.lemma)
		}
	}
}

func TestLemmatizeBatchMissingPack(t *testing.T) {
	store, _, _ := newStore(t)

	if store.HasLemmas(language.French) {
		t.Fatal("expected no French pack")
	}
	_, err := store.LemmatizeBatch(context.Background(), []string{"bonjour"}, language.French)
	if !errors.Is(err, langpack.ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
	if _, statErr := os.Stat(store.LemmaPath(language.French)); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("lookup must not create the pack file, stat err = %v", statErr)
	}
}

func TestTranslateBatchForward(t *testing.T) {
	store, _, translationDir := newStore(t)
	buildTranslationPack(t, filepath.Join(translationDir, "es-en.db"))

	got, err := store.TranslateBatch(context.Background(), []string{"casa", "ir", "perro"}, language.Spanish, language.English)
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d translations, want 3", len(got))
	}
	if got[0].Translation == nil || *got[0].Translation != "house" {
		t.Errorf("casa → %v, want first entry house", got[0].Translation)
	}
	if got[1].Translation == nil || *got[1].Translation != "to go" {
		t.Errorf("ir → %v, want to go", got[1].Translation)
	}
	if got[2].Lemma != "perro" || got[2].Translation != nil {
		t.Errorf("perro → %+v, want nil translation", got[2])
	}
}

func TestTranslateBatchReverseFile(t *testing.T) {
	store, _, translationDir := newStore(t)
	buildTranslationPack(t, filepath.Join(translationDir, "es-en.db"))

	path, err := store.TranslationPath(language.English, language.Spanish)
	if err != nil {
		t.Fatalf("TranslationPath: %v", err)
	}
	if filepath.Base(path) != "es-en.db" {
		t.Fatalf("path = %q, want reverse file", path)
	}

	got, err := store.TranslateBatch(context.Background(), []string{"House"}, language.English, language.Spanish)
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if got[0].Lemma != "House" || got[0].Translation == nil || *got[0].Translation != "casa" {
		t.Fatalf("House → %+v", got[0])
	}
}

func TestTranslateBatchMissingPack(t *testing.T) {
	store, _, _ := newStore(t)

	if store.HasTranslations(language.Spanish, language.German) {
		t.Fatal("expected no es-de pack")
	}
	_, err := store.TranslateBatch(context.Background(), []string{"casa"}, language.Spanish, language.German)
	if !errors.Is(err, langpack.ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

func TestStoreReopensAfterClose(t *testing.T) {
	store, lemmaDir, _ := newStore(t)
	buildLemmaPack(t, lemmaDir, language.Spanish)

	if _, err := store.LemmatizeBatch(context.Background(), []string{"fui"}, language.Spanish); err != nil {
		t.Fatalf("LemmatizeBatch: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := store.LemmatizeBatch(context.Background(), []string{"casas"}, language.Spanish)
	if err != nil {
		t.Fatalf("LemmatizeBatch after Close: %v", err)
	}
	if got[0].Lemma != "casa" {
		t.Fatalf("lemma = %q, want casa", got[0].Lemma)
	}
}

func TestLemmatizeBatchHonoursCancel(t *testing.T) {
	store, lemmaDir, _ := newStore(t)
	buildLemmaPack(t, lemmaDir, language.Spanish)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.LemmatizeBatch(ctx, []string{"fui"}, language.Spanish); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
