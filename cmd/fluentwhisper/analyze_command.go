package main

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/config"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/langpack"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/language"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/transcript"
)

type analyzeFlags struct {
	lang       string
	target     string
	duration   time.Duration
	jsonOutput bool
	top        int
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [file|-]...",
		Short: "Clean, tokenize, lemmatize and translate transcripts",
		Long: "Run the full transcript pipeline. Lemmas and translations come from the\n" +
			"installed language packs; missing packs are skipped with a log message.\n" +
			"Several files are processed in parallel up to pipeline.concurrency.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			lang, err := resolveLanguage(flags.lang, cfg.SourceLanguage())
			if err != nil {
				return fmt.Errorf("--lang: %w", err)
			}
			target, err := resolveLanguage(flags.target, cfg.TargetLanguage())
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}
			if flags.duration < 0 {
				return errors.New("--duration must not be negative")
			}

			store := langpack.NewFromConfig(cfg, logger)
			defer store.Close()

			pipeline, err := buildPipeline(cfg, store, lang, target, logger)
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{"-"}
			}
			inputs := make([]transcript.Input, 0, len(paths))
			for _, path := range paths {
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				inputs = append(inputs, transcript.Input{
					Text:           text,
					Language:       lang,
					TargetLanguage: target,
					Duration:       flags.duration,
				})
			}

			results, err := pipeline.ProcessBatch(cmd.Context(), inputs, cfg.Pipeline.Concurrency)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				if len(results) == 1 {
					return writeJSON(cmd, results[0])
				}
				return writeJSON(cmd, results)
			}
			return renderAnalysis(cmd, paths, results, flags.top)
		},
	}

	cmd.Flags().StringVarP(&flags.lang, "lang", "l", "", "Transcript language (defaults to tokenizer.language)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Translation language (defaults to langpack.target_language)")
	cmd.Flags().DurationVarP(&flags.duration, "duration", "d", 0, "Recording length for words per minute, e.g. 90s")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().IntVar(&flags.top, "top", 20, "Most frequent lemmas listed for a single transcript (0 for all)")
	return cmd
}

// buildPipeline wires the langpack store in for the packs that are installed.
func buildPipeline(cfg *config.Config, store *langpack.Store, lang, target language.Code, logger *slog.Logger) (*transcript.Pipeline, error) {
	opts := []transcript.Option{
		transcript.WithSettings(cfg.FilterSettings()),
		transcript.WithTokenizerOptions(cfg.TokenizerOptions()),
		transcript.WithLogger(logger),
	}

	if store.HasLemmas(lang) {
		opts = append(opts, transcript.WithLemmatizer(store))
	} else {
		logger.Info("lemma pack not installed; counting surface forms",
			logging.String("language", lang.String()),
			logging.String("path", store.LemmaPath(lang)),
		)
	}

	if target != "" && target != lang {
		if path, err := store.TranslationPath(lang, target); err == nil {
			logger.Debug("translation pack selected", logging.String("path", path))
			opts = append(opts, transcript.WithTranslator(store))
		} else {
			logger.Info("translation pack not installed; skipping translations",
				logging.String("from", lang.String()),
				logging.String("to", target.String()),
			)
		}
	}

	pipeline, err := transcript.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	return pipeline, nil
}

func renderAnalysis(cmd *cobra.Command, paths []string, results []*transcript.Result, top int) error {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(results))
	for i, res := range results {
		rows = append(rows, []string{
			inputLabel(paths[i]),
			res.Language.String(),
			strconv.Itoa(res.Session.WordCount),
			strconv.Itoa(res.Session.UniqueWordCount),
			strconv.FormatFloat(res.Session.WPM, 'f', 1, 64),
			strconv.FormatFloat(res.Filter.RemovalPercentage, 'f', 1, 64),
		})
	}
	headers := []string{"Input", "Lang", "Words", "Unique", "WPM", "Filtered %"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	if err := writeTable(out, headers, rows, aligns); err != nil {
		return err
	}

	if len(results) != 1 || len(results[0].Lemmas) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	return writeTable(out, []string{"Lemma", "Count", "Translation"}, lemmaRows(results[0], top),
		[]columnAlignment{alignLeft, alignRight, alignLeft})
}

func lemmaRows(res *transcript.Result, top int) [][]string {
	translated := make(map[string]string, len(res.Translations))
	for _, tr := range res.Translations {
		if tr.Translation != nil {
			translated[tr.Lemma] = *tr.Translation
		}
	}

	lemmas := slices.Clone(res.Lemmas)
	slices.SortStableFunc(lemmas, func(a, b transcript.LemmaCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if top > 0 && len(lemmas) > top {
		lemmas = lemmas[:top]
	}
	rows := make([][]string, 0, len(lemmas))
	for _, lc := range lemmas {
		rows = append(rows, []string{lc.Lemma, strconv.Itoa(lc.Count), translated[lc.Lemma]})
	}
	return rows
}

func inputLabel(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}
