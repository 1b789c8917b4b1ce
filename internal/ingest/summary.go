package ingest

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// tokensPerRune approximates token counting (4 chars per token).
const tokensPerRune = 4.0

// Summary describes one ingestion batch. It replaces ad-hoc stdout
// diagnostics: callers get a value they can log or return.
type Summary struct {
	// Chunks is the number of records in the batch.
	Chunks int `json:"chunks"`
	// Pages is the number of distinct source pages covered by the batch.
	Pages int `json:"pages"`
	// TokenStats contains estimated token counts per chunk.
	TokenStats TokenStats `json:"token_stats"`
}

// TokenStats contains statistics about estimated token counts in chunks.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Summarize computes batch statistics from a finished record batch.
func Summarize(records []Record) Summary {
	summary := Summary{Chunks: len(records)}
	if len(records) == 0 {
		return summary
	}

	pagesSeen := make(map[int]struct{})
	tokenCounts := make([]int, 0, len(records))
	for _, record := range records {
		runeCount := utf8.RuneCountInString(record.ChunkText)
		tokenCount := int(math.Round(float64(runeCount) / tokensPerRune))
		if tokenCount < 1 {
			tokenCount = 1
		}
		tokenCounts = append(tokenCounts, tokenCount)

		for _, p := range parsePageList(record.Metadata.Pages) {
			pagesSeen[p] = struct{}{}
		}
	}

	summary.Pages = len(pagesSeen)
	summary.TokenStats = computeTokenStats(tokenCounts)
	return summary
}

// parsePageList is the inverse of PageList for well-formed input; malformed
// entries are skipped.
func parsePageList(pages string) []int {
	if pages == "" {
		return nil
	}
	var result []int
	for _, part := range strings.Split(pages, ",") {
		if n, err := strconv.Atoi(part); err == nil {
			result = append(result, n)
		}
	}
	return result
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
