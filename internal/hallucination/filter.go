package hallucination

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// whitespaceRun also matches Unicode separators such as NBSP and U+3000,
// which RE2's \s leaves alone.
var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// Report describes what Clean removed.
type Report struct {
	Text string
	// Removed counts pattern matches per category.
	Removed map[Category]int
	// CollapsedSentences counts repeated sentences dropped by repetition collapsing.
	CollapsedSentences int
}

// Total returns the number of removals of any kind.
func (r Report) Total() int {
	total := r.CollapsedSentences
	for _, n := range r.Removed {
		total += n
	}
	return total
}

// Clean removes hallucinated phrases and repetition loops from text according
// to s. When s is disabled or text is empty the input is returned as is.
func Clean(text string, s Settings) string {
	return CleanWithReport(text, s).Text
}

// CleanWithReport is Clean plus a tally of what was removed.
func CleanWithReport(text string, s Settings) Report {
	report := Report{Text: text, Removed: map[Category]int{}}
	if !s.Enabled || text == "" {
		return report
	}

	// Whitespace is settled before repetition matching so that sentences
	// differing only in spacing compare equal on this pass, not the next.
	cleaned := normalizeWhitespace(removePatterns(text, s, report.Removed))

	if s.FilterRepetition {
		var collapsed int
		cleaned, collapsed = collapseRepetition(cleaned, s.RepetitionThreshold)
		report.CollapsedSentences = collapsed
	}

	report.Text = normalizeWhitespace(cleaned)
	return report
}

// removePatterns applies every enabled rule until a full pass over the table
// removes nothing, so the result is stable under another Clean.
func removePatterns(text string, s Settings, removed map[Category]int) string {
	for {
		changed := false
		for _, p := range patterns {
			if !s.CategoryEnabled(p.Category) {
				continue
			}
			matches := p.matcher.FindAllStringIndex(text, -1)
			if len(matches) == 0 {
				continue
			}
			text = p.matcher.ReplaceAllString(text, " ")
			removed[p.Category] += len(matches)
			changed = true
		}
		if !changed {
			return text
		}
	}
}

// CollapseRepetition collapses runs of at least threshold identical
// consecutive sentences down to their first occurrence. Sentences compare
// equal when their trimmed text is byte-identical. Kept sentences are joined
// with a single space; text with no run to collapse is returned unchanged.
// Thresholds below MinRepetitionThreshold are treated as MinRepetitionThreshold.
func CollapseRepetition(text string, threshold int) string {
	out, _ := collapseRepetition(text, threshold)
	return out
}

// minRunRunes is the shortest trimmed sentence that can start a collapsible
// run; shorter fragments are punctuation debris.
const minRunRunes = 2

func collapseRepetition(text string, threshold int) (string, int) {
	if threshold < MinRepetitionThreshold {
		threshold = MinRepetitionThreshold
	}
	sentences := splitSentences(text)
	if len(sentences) < threshold {
		return text, 0
	}

	kept := make([]string, 0, len(sentences))
	collapsed := 0
	i := 0
	for i < len(sentences) {
		current := sentences[i]
		if utf8.RuneCountInString(current) < minRunRunes {
			kept = append(kept, current)
			i++
			continue
		}

		// Find the extent of the run.
		runEnd := i + 1
		for runEnd < len(sentences) && sentences[runEnd] == current {
			runEnd++
		}

		if runLen := runEnd - i; runLen >= threshold {
			kept = append(kept, current)
			collapsed += runLen - 1
		} else {
			kept = append(kept, sentences[i:runEnd]...)
		}
		i = runEnd
	}
	if collapsed == 0 {
		return text, 0
	}
	return strings.Join(kept, " "), collapsed
}

// splitSentences cuts text after each run of '.', '!' or '?'. Terminators
// stay with the preceding sentence and an unterminated tail becomes the last
// sentence. Sentences are trimmed and blank fragments are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}
		end := i + 1
		for end < len(text) && isTerminator(text[end]) {
			end++
		}
		sentences = appendSentence(sentences, text[start:end])
		start = end
		i = end - 1
	}
	if start < len(text) {
		sentences = appendSentence(sentences, text[start:])
	}
	return sentences
}

func appendSentence(sentences []string, fragment string) []string {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return sentences
	}
	return append(sentences, trimmed)
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Stats summarizes how much text a filter pass removed.
type Stats struct {
	OriginalLength    int     `json:"originalLength"`
	FilteredLength    int     `json:"filteredLength"`
	RemovedChars      int     `json:"removedChars"`
	RemovalPercentage float64 `json:"removalPercentage"`
}

// ComputeStats compares original and filtered text by character count.
// RemovalPercentage is rounded to one decimal and is 0 for empty originals.
func ComputeStats(original, filtered string) Stats {
	originalLen := utf8.RuneCountInString(original)
	filteredLen := utf8.RuneCountInString(filtered)
	stats := Stats{
		OriginalLength: originalLen,
		FilteredLength: filteredLen,
		RemovedChars:   originalLen - filteredLen,
	}
	if originalLen > 0 {
		stats.RemovalPercentage = math.Round(float64(stats.RemovedChars)/float64(originalLen)*1000) / 10
	}
	return stats
}
