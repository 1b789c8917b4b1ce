package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// ChunkParams controls the sliding window. The params are passed explicitly
// at call time; the package holds no process-wide defaults.
type ChunkParams struct {
	ChunkSize int // window length in runes
	Overlap   int // runes shared between consecutive windows
}

// Validate rejects parameter combinations under which the window would never
// advance (overlap >= chunk size) or that are otherwise non-positive.
func (p ChunkParams) Validate() error {
	if p.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidChunkParams, p.ChunkSize)
	}
	if p.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidChunkParams, p.Overlap)
	}
	if p.Overlap >= p.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidChunkParams, p.Overlap, p.ChunkSize)
	}
	return nil
}

// ChunkPages normalizes each page, concatenates the pages into one logical
// stream, and slices the stream into overlapping windows. Page provenance
// survives normalization because the per-rune page map is built in lock-step
// with the normalized stream, not the raw page text.
//
// The single space inserted between pages is attributed to the FOLLOWING
// page, so text adjacent to a page break never picks up the previous page's
// number. Pages that normalize to the empty string contribute nothing to the
// stream or the map.
func ChunkPages(pages []Page, params ChunkParams) ([]Chunk, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var stream []rune
	var pageMap []int // pageMap[i] is the page that contributed stream[i]

	for _, page := range pages {
		cleaned := Clean(page.Text)
		if cleaned == "" {
			continue
		}
		if len(stream) > 0 {
			stream = append(stream, ' ')
			pageMap = append(pageMap, page.PageNumber)
		}
		for _, r := range cleaned {
			stream = append(stream, r)
			pageMap = append(pageMap, page.PageNumber)
		}
	}

	step := params.ChunkSize - params.Overlap
	var chunks []Chunk

	for start := 0; start < len(stream); start += step {
		end := start + params.ChunkSize
		if end > len(stream) {
			end = len(stream)
		}

		chunkText := strings.TrimSpace(string(stream[start:end]))
		if chunkText == "" {
			continue
		}

		chunks = append(chunks, Chunk{
			Text:  chunkText,
			Pages: distinctPages(pageMap[start:end]),
		})
	}

	return chunks, nil
}

// distinctPages returns the sorted set of page numbers in a map slice.
func distinctPages(window []int) []int {
	seen := make(map[int]struct{}, 2)
	pages := make([]int, 0, 2)
	for _, p := range window {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
