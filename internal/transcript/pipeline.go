package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/hallucination"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/tokenizer"
)

// Input is one transcript to process.
type Input struct {
	Text     string
	Language language.Code
	// TargetLanguage selects translations; empty or equal to Language skips them.
	TargetLanguage language.Code
	// Duration is the spoken length used for words per minute.
	Duration time.Duration
}

// LemmaCount is a lemma and how many tokens resolved to it.
type LemmaCount struct {
	Lemma string `json:"lemma"`
	Count int    `json:"count"`
}

// SessionStats are the per-recording numbers the vocabulary tracker stores.
type SessionStats struct {
	WordCount       int     `json:"wordCount"`
	UniqueWordCount int     `json:"uniqueWordCount"`
	WPM             float64 `json:"wpm"`
}

// Result is the outcome of Process.
type Result struct {
	ID           string              `json:"id"`
	Language     language.Code       `json:"language"`
	CleanedText  string              `json:"cleanedText"`
	Filter       hallucination.Stats `json:"filter"`
	Tokens       tokenizer.Stats     `json:"tokens"`
	Lemmas       []LemmaCount        `json:"lemmas,omitempty"`
	Translations []Translation       `json:"translations,omitempty"`
	Session      SessionStats        `json:"session"`
}

// Pipeline composes the filter, tokenizer and optional collaborators.
// A Pipeline is safe for concurrent use once built.
type Pipeline struct {
	settings   hallucination.Settings
	options    tokenizer.Options
	tokenizer  *tokenizer.Tokenizer
	lemmatizer Lemmatizer
	translator Translator
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSettings sets the hallucination filter settings.
func WithSettings(s hallucination.Settings) Option {
	return func(p *Pipeline) { p.settings = s }
}

// WithTokenizerOptions sets the tokenizer options.
func WithTokenizerOptions(o tokenizer.Options) Option {
	return func(p *Pipeline) { p.options = o }
}

// WithTokenizer replaces the default tokenizer, e.g. to add preprocessors.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tokenizer = t
		}
	}
}

// WithLemmatizer enables lemma resolution.
func WithLemmatizer(l Lemmatizer) Option {
	return func(p *Pipeline) { p.lemmatizer = l }
}

// WithTranslator enables translation lookup.
func WithTranslator(t Translator) Option {
	return func(p *Pipeline) { p.translator = t }
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds a Pipeline. Filter settings are validated here so Process never
// sees an unusable configuration.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		settings:  hallucination.DefaultSettings(),
		options:   tokenizer.DefaultOptions(),
		tokenizer: tokenizer.New(nil),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.settings.Validate(); err != nil {
		return nil, fmt.Errorf("filter settings: %w", err)
	}
	p.logger = logging.NewComponentLogger(p.logger, "transcript")
	return p, nil
}

// Process cleans, tokenizes and, when collaborators are configured,
// lemmatizes and translates one transcript.
func (p *Pipeline) Process(ctx context.Context, in Input) (*Result, error) {
	if !in.Language.Known() {
		return nil, fmt.Errorf("transcript language: %w: %q", language.ErrUnknownLanguage, in.Language)
	}
	if in.TargetLanguage != "" && !in.TargetLanguage.Known() {
		return nil, fmt.Errorf("target language: %w: %q", language.ErrUnknownLanguage, in.TargetLanguage)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := hallucination.CleanWithReport(in.Text, p.settings)
	result := &Result{
		ID:          uuid.NewString(),
		Language:    in.Language,
		CleanedText: report.Text,
		Filter:      hallucination.ComputeStats(in.Text, report.Text),
	}
	p.logFilterSummary(result.ID, report)

	result.Tokens = p.tokenizer.TokenizeWithStats(report.Text, in.Language, p.options)

	lemmaOf, err := p.resolveLemmas(ctx, result.Tokens.UniqueTokens, in.Language)
	if err != nil {
		return nil, err
	}
	if lemmaOf != nil {
		result.Lemmas = countLemmas(result.Tokens.Tokens, lemmaOf)
	}

	if p.translator != nil && in.TargetLanguage != "" && in.TargetLanguage != in.Language && len(result.Tokens.Tokens) > 0 {
		lemmas := result.Tokens.UniqueTokens
		if result.Lemmas != nil {
			lemmas = make([]string, 0, len(result.Lemmas))
			for _, lc := range result.Lemmas {
				lemmas = append(lemmas, lc.Lemma)
			}
		}
		translations, err := p.translator.TranslateBatch(ctx, lemmas, in.Language, in.TargetLanguage)
		if err != nil {
			return nil, fmt.Errorf("translate %s->%s: %w", in.Language, in.TargetLanguage, err)
		}
		result.Translations = translations
	}

	result.Session = sessionStats(result, in.Duration)
	return result, nil
}

// resolveLemmas returns word→lemma for the unique tokens, or nil when no
// lemmatizer is configured. Lookup failures degrade to identity lemmas, the
// same outcome as a word missing from the dictionary.
func (p *Pipeline) resolveLemmas(ctx context.Context, words []string, lang language.Code) (map[string]string, error) {
	if p.lemmatizer == nil {
		return nil, nil
	}
	lemmaOf := make(map[string]string, len(words))
	for _, w := range words {
		lemmaOf[w] = w
	}
	if len(words) == 0 {
		return lemmaOf, nil
	}

	pairs, err := p.lemmatizer.LemmatizeBatch(ctx, words, lang)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logging.WarnWithContext(p.logger, "lemma lookup failed; using surface forms", "lemmatize_failed",
			logging.String("language", lang.String()),
			logging.Int("words", len(words)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "unique word count reflects surface forms"),
			logging.String(logging.FieldErrorHint, "check the language pack for this language"),
		)
		return lemmaOf, nil
	}
	for _, pair := range pairs {
		if pair.Lemma != "" {
			lemmaOf[pair.Word] = pair.Lemma
		}
	}
	return lemmaOf, nil
}

func countLemmas(tokens []string, lemmaOf map[string]string) []LemmaCount {
	index := make(map[string]int, len(lemmaOf))
	counts := make([]LemmaCount, 0, len(lemmaOf))
	for _, token := range tokens {
		lemma := lemmaOf[token]
		if lemma == "" {
			lemma = token
		}
		if i, ok := index[lemma]; ok {
			counts[i].Count++
			continue
		}
		index[lemma] = len(counts)
		counts = append(counts, LemmaCount{Lemma: lemma, Count: 1})
	}
	return counts
}

func sessionStats(r *Result, duration time.Duration) SessionStats {
	stats := SessionStats{
		WordCount:       r.Tokens.TotalCount,
		UniqueWordCount: r.Tokens.UniqueCount,
	}
	if r.Lemmas != nil {
		stats.UniqueWordCount = len(r.Lemmas)
	}
	if minutes := duration.Minutes(); minutes > 0 {
		stats.WPM = float64(stats.WordCount) / minutes
	}
	return stats
}

func (p *Pipeline) logFilterSummary(id string, report hallucination.Report) {
	if report.Total() == 0 {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "hallucination_filter_applied"),
		logging.String("transcript_id", id),
		logging.Int("collapsed_sentences", report.CollapsedSentences),
	}
	for _, c := range hallucination.Categories() {
		if n := report.Removed[c]; n > 0 {
			attrs = append(attrs, logging.Int("removed_"+string(c), n))
		}
	}
	p.logger.Info("hallucination filter applied", logging.Args(attrs...)...)
}
