package langpack

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/transcript"
)

const (
	lemmaQuery = `SELECT lemma FROM lemmas WHERE word = ? LIMIT 1`

	translationQuery = `SELECT translation FROM translations
        WHERE lemma_from = ? AND lang_from = ? AND lang_to = ?
        ORDER BY id ASC
        LIMIT 1`
)

var (
	_ transcript.Lemmatizer = (*Store)(nil)
	_ transcript.Translator = (*Store)(nil)
)

// LemmatizeBatch looks up each word (lowercased) in the lemma pack for lang.
// Words without an entry are returned as their own lowercase lemma. Word in
// each result is the input word unchanged, in input order.
func (s *Store) LemmatizeBatch(ctx context.Context, words []string, lang language.Code) ([]transcript.Lemma, error) {
	db, err := s.open(s.LemmaPath(lang))
	if err != nil {
		return nil, fmt.Errorf("lemmatize %s: %w", lang, err)
	}

	stmt, err := db.PrepareContext(ctx, lemmaQuery)
	if err != nil {
		return nil, fmt.Errorf("prepare lemma query: %w", err)
	}
	defer stmt.Close()

	out := make([]transcript.Lemma, 0, len(words))
	missing := 0
	for _, word := range words {
		key := normalizeWord(word)
		var lemma string
		err := stmt.QueryRowContext(ctx, key).Scan(&lemma)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			lemma = key
			missing++
		case err != nil:
			return nil, fmt.Errorf("lookup lemma %q: %w", key, err)
		}
		out = append(out, transcript.Lemma{Word: word, Lemma: lemma})
	}

	s.logger.Debug("lemmas resolved",
		logging.String("language", lang.String()),
		logging.Int("words", len(words)),
		logging.Int("unmapped", missing),
	)
	return out, nil
}

// TranslateBatch looks up the first translation of each lemma for from→to.
// Lemmas without an entry carry a nil Translation.
func (s *Store) TranslateBatch(ctx context.Context, lemmas []string, from, to language.Code) ([]transcript.Translation, error) {
	path, err := s.TranslationPath(from, to)
	if err != nil {
		return nil, err
	}
	db, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("translate %s-%s: %w", from, to, err)
	}

	stmt, err := db.PrepareContext(ctx, translationQuery)
	if err != nil {
		return nil, fmt.Errorf("prepare translation query: %w", err)
	}
	defer stmt.Close()

	out := make([]transcript.Translation, 0, len(lemmas))
	found := 0
	for _, lemma := range lemmas {
		var translation string
		err := stmt.QueryRowContext(ctx, normalizeWord(lemma), from.String(), to.String()).Scan(&translation)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			out = append(out, transcript.Translation{Lemma: lemma})
			continue
		case err != nil:
			return nil, fmt.Errorf("lookup translation %q: %w", lemma, err)
		}
		found++
		out = append(out, transcript.Translation{Lemma: lemma, Translation: &translation})
	}

	s.logger.Debug("translations resolved",
		logging.String("from", from.String()),
		logging.String("to", to.String()),
		logging.Int("lemmas", len(lemmas)),
		logging.Int("found", found),
	)
	return out, nil
}
