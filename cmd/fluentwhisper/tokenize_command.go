package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/tokenizer"
)

type tokenizeFlags struct {
	lang            string
	stats           bool
	jsonOutput      bool
	keepCase        bool
	keepPunctuation bool
	noHyphens       bool
	noApostrophes   bool
}

func newTokenizeCommand(ctx *commandContext) *cobra.Command {
	var flags tokenizeFlags

	cmd := &cobra.Command{
		Use:   "tokenize [file|-]",
		Short: "Split a transcript into normalized word tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lang, err := resolveLanguage(flags.lang, cfg.SourceLanguage())
			if err != nil {
				return fmt.Errorf("--lang: %w", err)
			}

			opts := cfg.TokenizerOptions()
			if flags.keepCase {
				opts.Lowercase = false
			}
			if flags.keepPunctuation {
				opts.RemovePunctuation = false
			}
			if flags.noHyphens {
				opts.KeepHyphens = false
			}
			if flags.noApostrophes {
				opts.KeepApostrophes = false
			}

			text, err := readInput(cmd, singleInputArg(args))
			if err != nil {
				return err
			}

			stats := tokenizer.TokenizeWithStats(text, lang, opts)
			if flags.jsonOutput {
				return writeJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			if len(stats.Tokens) > 0 {
				fmt.Fprintln(out, strings.Join(stats.Tokens, "\n"))
			}
			if !flags.stats {
				return nil
			}
			if len(stats.Tokens) > 0 {
				fmt.Fprintln(out)
			}
			rows := [][]string{
				{"Language", lang.String()},
				{"Total tokens", strconv.Itoa(stats.TotalCount)},
				{"Unique tokens", strconv.Itoa(stats.UniqueCount)},
			}
			return writeTable(out, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
		},
	}

	cmd.Flags().StringVarP(&flags.lang, "lang", "l", "", "Transcript language (defaults to tokenizer.language)")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print token counts after the tokens")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Emit tokens and counts as JSON")
	cmd.Flags().BoolVar(&flags.keepCase, "keep-case", false, "Do not lowercase tokens")
	cmd.Flags().BoolVar(&flags.keepPunctuation, "keep-punctuation", false, "Do not strip punctuation")
	cmd.Flags().BoolVar(&flags.noHyphens, "no-hyphens", false, "Strip hyphens inside words")
	cmd.Flags().BoolVar(&flags.noApostrophes, "no-apostrophes", false, "Strip apostrophes inside words")
	return cmd
}
