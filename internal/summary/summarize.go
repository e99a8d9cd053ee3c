// Package summary implements word-frequency extractive summarization: the
// sentences whose words recur most across the text are kept, joined in their
// source order.
package summary

import (
	"sort"
	"strings"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
)

// Result is the response for a summarization request.
type Result struct {
	Results []string `json:"results"`
	Stats   Stats    `json:"stats"`
}

// Stats compares summary length against the input, counted in whitespace
// separated words of the raw text.
type Stats struct {
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// topSentences caps how many sentences the summary keeps.
const topSentences = 3

// Summarize scores each sentence by the summed frequency of its words across
// the whole text (case-insensitive) and keeps the highest scoring sentences.
// Score ties keep the earlier sentence. It is pure: same input always
// produces the same summary.
func Summarize(text string) (Result, error) {
	originalWords := len(strings.Fields(text))
	if originalWords == 0 {
		return Result{}, errors.ValidationError("text must contain at least one word")
	}

	sentences := splitSentences(text)

	freq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range strings.Fields(strings.ToLower(sentence)) {
			freq[word]++
		}
	}

	type rankedSentence struct {
		index int
		score int
	}
	ranked := make([]rankedSentence, len(sentences))
	for i, sentence := range sentences {
		score := 0
		for _, word := range strings.Fields(sentence) {
			score += freq[strings.ToLower(word)]
		}
		ranked[i] = rankedSentence{index: i, score: score}
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if len(ranked) > topSentences {
		ranked = ranked[:topSentences]
	}

	// The summary preserves source order regardless of rank.
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].index < ranked[b].index })

	picked := make([]string, len(ranked))
	for i, r := range ranked {
		picked[i] = sentences[r.index]
	}
	summaryText := strings.Join(picked, ". ")
	summaryWords := len(strings.Fields(summaryText))

	return Result{
		Results: []string{summaryText},
		Stats: Stats{
			OriginalLength:   originalWords,
			SummaryLength:    summaryWords,
			CompressionRatio: float64(summaryWords) / float64(originalWords),
		},
	}, nil
}

// splitSentences splits on periods and drops blank fragments. A text without
// any period is a single sentence.
func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
