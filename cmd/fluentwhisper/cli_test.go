package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/hallucination"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/tokenizer"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/transcript"
)

type cliTestEnv struct {
	home         string
	langpackRoot string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	env := &cliTestEnv{
		home:         filepath.Join(base, "home"),
		langpackRoot: filepath.Join(base, "langpacks"),
	}
	if err := os.MkdirAll(env.home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", env.home)
	t.Setenv("FLUENTWHISPER_LANGPACK_DIR", env.langpackRoot)
	return env
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func execAll(t *testing.T, path string, stmts ...string) {
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

func (e *cliTestEnv) installSpanishPacks(t *testing.T) {
	t.Helper()
	execAll(t, filepath.Join(e.langpackRoot, "lemmas", "es", "lemmas.db"),
		`CREATE TABLE lemmas (word TEXT, lemma TEXT)`,
		`INSERT INTO lemmas VALUES ('fui', 'ir'), ('casas', 'casa'), ('las', 'el'), ('son', 'ser')`,
	)
	execAll(t, filepath.Join(e.langpackRoot, "translations", "es-en.db"),
		`CREATE TABLE translations (id INTEGER PRIMARY KEY, lemma_from TEXT, lang_from TEXT, lang_to TEXT, translation TEXT)`,
		`INSERT INTO translations VALUES (1, 'casa', 'es', 'en', 'house'), (2, 'ir', 'es', 'en', 'to go')`,
	)
}

func TestCleanFromStdin(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "Hola a todos. Thanks for watching!", "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if out != "Hola a todos.\n" {
		t.Fatalf("clean output = %q", out)
	}
}

func TestCleanFromFileWithStats(t *testing.T) {
	setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "session.txt")
	if err := os.WriteFile(path, []byte("[MUSIC] Hola. Hola. Hola. Adiós."), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	out, _, err := runCLI(t, "", "clean", "--stats", path)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.HasPrefix(out, "Hola. Adiós.\n") {
		t.Fatalf("clean output = %q", out)
	}
	requireContains(t, out, "Metric\tValue")
	requireContains(t, out, "Removed markers\t1")
	requireContains(t, out, "Collapsed sentences\t2")
}

func TestCleanFlagsOverrideConfig(t *testing.T) {
	setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"disable", []string{"--disable"}, "[MUSIC] hola", "[MUSIC] hola\n"},
		{"no markers", []string{"--no-markers"}, "[MUSIC] hola", "[MUSIC] hola\n"},
		{"no youtube", []string{"--no-youtube"}, "Hola. Thanks for watching!", "Hola. Thanks for watching!\n"},
		{"no repetition", []string{"--no-repetition"}, "Sí. Sí. Sí.", "Sí. Sí. Sí.\n"},
		{"threshold", []string{"--threshold", "4"}, "Sí. Sí. Sí.", "Sí. Sí. Sí.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.in, append([]string{"clean"}, tt.args...)...)
			if err != nil {
				t.Fatalf("clean: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCleanRejectsLowThreshold(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, "hola", "clean", "--threshold", "1")
	if !errors.Is(err, hallucination.ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"unicode", []string{"--lang", "es"}, "¡Hola! ¿Cómo estás?", "hola\ncómo\nestás\n"},
		{"contractions", nil, "Voy al mercado del pueblo", "voy\na\nel\nmercado\nde\nel\npueblo\n"},
		{"keep case", []string{"--keep-case", "--lang", "en"}, "Hello World", "Hello\nWorld\n"},
		{"no hyphens", []string{"--no-hyphens", "--lang", "en"}, "well-known", "wellknown\n"},
		{"empty", nil, "¡¿...?!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.in, append([]string{"tokenize"}, tt.args...)...)
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTokenizeJSON(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "hola hola mundo", "tokenize", "--json")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var stats tokenizer.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if stats.TotalCount != 3 || stats.UniqueCount != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if strings.Join(stats.UniqueTokens, ",") != "hola,mundo" {
		t.Fatalf("unique = %v", stats.UniqueTokens)
	}
}

func TestTokenizeStats(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "uno dos uno", "tokenize", "--stats", "--lang", "spanish")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	requireContains(t, out, "Language\tes")
	requireContains(t, out, "Total tokens\t3")
	requireContains(t, out, "Unique tokens\t2")
}

func TestTokenizeRejectsUnknownLanguage(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, "hola", "tokenize", "--lang", "xx")
	if !errors.Is(err, language.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestAnalyzeWithLanguagePacks(t *testing.T) {
	env := setupCLITestEnv(t)
	env.installSpanishPacks(t)

	out, _, err := runCLI(t, "Fui a las casas. Las casas son grandes. Thanks for watching!",
		"analyze", "--json", "--duration", "2m")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var res transcript.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.CleanedText != "Fui a las casas. Las casas son grandes." {
		t.Fatalf("cleaned = %q", res.CleanedText)
	}
	want := transcript.SessionStats{WordCount: 8, UniqueWordCount: 6, WPM: 4}
	if res.Session != want {
		t.Fatalf("session = %+v, want %+v", res.Session, want)
	}
	if len(res.Lemmas) != 6 || res.Lemmas[0] != (transcript.LemmaCount{Lemma: "ir", Count: 1}) ||
		res.Lemmas[2] != (transcript.LemmaCount{Lemma: "el", Count: 2}) {
		t.Fatalf("lemmas = %+v", res.Lemmas)
	}

	translated := map[string]string{}
	for _, tr := range res.Translations {
		if tr.Translation != nil {
			translated[tr.Lemma] = *tr.Translation
		}
	}
	if translated["casa"] != "house" || translated["ir"] != "to go" || len(translated) != 2 {
		t.Fatalf("translations = %v", translated)
	}
}

func TestAnalyzeTableWithoutPacks(t *testing.T) {
	setupCLITestEnv(t)

	out, errOut, err := runCLI(t, "uno dos tres", "analyze", "--duration", "1m")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Input\tLang\tWords\tUnique\tWPM\tFiltered %")
	requireContains(t, out, "stdin\tes\t3\t3\t3.0\t0.0")
	if strings.Contains(out, "Lemma\tCount") {
		t.Fatalf("lemma table printed without a lemma pack: %q", out)
	}
	requireContains(t, errOut, "lemma pack not installed")
}

func TestAnalyzeLemmaTable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.installSpanishPacks(t)

	out, _, err := runCLI(t, "Fui a las casas. Las casas son grandes.", "analyze", "--top", "2")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Lemma\tCount\tTranslation")
	requireContains(t, out, "el\t2\t\n")
	requireContains(t, out, "casa\t2\thouse")
	if strings.Contains(out, "ir\t1") {
		t.Fatalf("--top 2 should hide single occurrences: %q", out)
	}
}

func TestAnalyzeMultipleFiles(t *testing.T) {
	setupCLITestEnv(t)
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if err := os.WriteFile(paths[0], []byte("hola"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths[1], []byte("adiós amigos"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", append([]string{"analyze", "--json"}, paths...)...)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var results []transcript.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(results) != 2 || results[0].Session.WordCount != 1 || results[1].Session.WordCount != 2 {
		t.Fatalf("results = %+v", results)
	}
}

func TestAnalyzeRejectsUnknownTarget(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, "hola", "analyze", "--target", "klingon")
	if !errors.Is(err, language.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, "", "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Target language\ten")
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateUsesDefaults(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
}

func TestInvalidConfigFails(t *testing.T) {
	setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("[filter]\nrepetition_threshold = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "hola", "--config", target, "clean")
	if err == nil {
		t.Fatal("expected config error")
	}
	requireContains(t, err.Error(), "load config")
}

func TestLogLevelFlagValidated(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, "hola", "--log-level", "trace", "clean")
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
	requireContains(t, err.Error(), "logging.level")
}
