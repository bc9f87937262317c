package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Thxamillion/fluentwhisper-sub001/internal/hallucination"
	"github.com/Thxamillion/fluentwhisper-sub001/internal/logging"
)

type cleanFlags struct {
	stats        bool
	disable      bool
	noYouTube    bool
	noMarkers    bool
	noCredits    bool
	noRepetition bool
	threshold    int
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var flags cleanFlags

	cmd := &cobra.Command{
		Use:   "clean [file|-]",
		Short: "Remove hallucinated phrases from a transcript",
		Long: "Remove phrases Whisper invents on silence or music (outros, sound cues, subtitle\n" +
			"credits) and collapse runs of repeated sentences. Reads stdin when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			settings := applyCleanFlags(cmd, cfg.FilterSettings(), flags)
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("--threshold: %w", err)
			}

			text, err := readInput(cmd, singleInputArg(args))
			if err != nil {
				return err
			}

			report := hallucination.CleanWithReport(text, settings)
			logger.Debug("transcript cleaned",
				logging.Int("removed_patterns", report.Total()),
				logging.Int("collapsed_sentences", report.CollapsedSentences),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Text)
			if !flags.stats {
				return nil
			}
			fmt.Fprintln(out)
			return writeTable(out, []string{"Metric", "Value"}, cleanStatsRows(text, report), []columnAlignment{alignLeft, alignRight})
		},
	}

	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print removal statistics after the cleaned text")
	cmd.Flags().BoolVar(&flags.disable, "disable", false, "Pass text through unchanged")
	cmd.Flags().BoolVar(&flags.noYouTube, "no-youtube", false, "Keep YouTube-style outros")
	cmd.Flags().BoolVar(&flags.noMarkers, "no-markers", false, "Keep bracketed sound markers and music notes")
	cmd.Flags().BoolVar(&flags.noCredits, "no-credits", false, "Keep subtitle credit lines")
	cmd.Flags().BoolVar(&flags.noRepetition, "no-repetition", false, "Keep repeated sentences")
	cmd.Flags().IntVar(&flags.threshold, "threshold", hallucination.DefaultRepetitionThreshold, "Minimum run of identical sentences to collapse")
	return cmd
}

// applyCleanFlags layers explicitly set flags over the configured settings.
func applyCleanFlags(cmd *cobra.Command, settings hallucination.Settings, flags cleanFlags) hallucination.Settings {
	if flags.disable {
		settings.Enabled = false
	}
	if flags.noYouTube {
		settings.FilterYouTube = false
	}
	if flags.noMarkers {
		settings.FilterMarkers = false
	}
	if flags.noCredits {
		settings.FilterCredits = false
	}
	if flags.noRepetition {
		settings.FilterRepetition = false
	}
	if cmd.Flags().Changed("threshold") {
		settings.RepetitionThreshold = flags.threshold
	}
	return settings
}

func cleanStatsRows(original string, report hallucination.Report) [][]string {
	stats := hallucination.ComputeStats(original, report.Text)
	rows := [][]string{
		{"Original length", strconv.Itoa(stats.OriginalLength)},
		{"Filtered length", strconv.Itoa(stats.FilteredLength)},
		{"Removed chars", strconv.Itoa(stats.RemovedChars)},
		{"Removed %", strconv.FormatFloat(stats.RemovalPercentage, 'f', 1, 64)},
	}
	for _, c := range hallucination.Categories() {
		rows = append(rows, []string{"Removed " + string(c), strconv.Itoa(report.Removed[c])})
	}
	rows = append(rows, []string{"Collapsed sentences", strconv.Itoa(report.CollapsedSentences)})
	return rows
}
