package rag

import (
	"sort"
	"strings"
	"unicode"
)

const (
	lexicalLengthScale = float32(10.0)
	maxLexicalScore    = float32(0.4)
	sourceMatchBonus   = float32(0.1)
)

// Reranker reorders retrieved hits by relevance to the query and keeps the
// top n. Implementations must not mutate the input slice.
type Reranker interface {
	Rerank(query string, hits []Hit, topN int) []Hit
}

// LexicalReranker blends the vector similarity score with a lightweight
// lexical overlap score. It is a local stand-in for a hosted cross-encoder
// reranker and needs no external service.
type LexicalReranker struct{}

// NewLexicalReranker creates a new lexical reranker.
func NewLexicalReranker() *LexicalReranker {
	return &LexicalReranker{}
}

// Rerank returns the topN hits ordered by blended score, descending.
// Each hit's Score is replaced with the blended score.
func (r *LexicalReranker) Rerank(query string, hits []Hit, topN int) []Hit {
	if len(hits) == 0 {
		return nil
	}

	reranked := make([]Hit, len(hits))
	copy(reranked, hits)
	for i := range reranked {
		reranked[i].Score += lexicalScore(query, reranked[i].ChunkText, reranked[i].Source)
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})

	if topN > 0 && len(reranked) > topN {
		reranked = reranked[:topN]
	}
	return reranked
}

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {},
}

// lexicalScore computes a lightweight lexical relevance score for a chunk
// relative to a query. The score is normalized to a predictable range so it
// can be blended with vector scores.
func lexicalScore(query, chunkText, source string) float32 {
	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	chunkTokens := tokenize(chunkText)
	if len(chunkTokens) == 0 {
		return 0
	}

	chunkFreq := make(map[string]int, len(chunkTokens))
	for _, token := range chunkTokens {
		chunkFreq[token]++
	}

	var rawMatches int
	for _, token := range queryTokens {
		rawMatches += chunkFreq[token]
	}

	score := (float32(rawMatches) / (1 + float32(len(chunkTokens)))) * lexicalLengthScale

	if source != "" {
		sourceTokens := tokenize(source)
		if len(sourceTokens) > 0 {
			sourceSet := make(map[string]struct{}, len(sourceTokens))
			for _, token := range sourceTokens {
				sourceSet[token] = struct{}{}
			}
			var sourceMatches int
			for _, token := range queryTokens {
				if _, ok := sourceSet[token]; ok {
					sourceMatches++
				}
			}
			score += float32(sourceMatches) * sourceMatchBonus
		}
	}

	if score > maxLexicalScore {
		score = maxLexicalScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
