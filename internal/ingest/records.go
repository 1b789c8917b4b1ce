package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordID derives the version-safe identifier for one chunk. The same
// document and version always produce the same IDs, so re-ingestion
// overwrites existing vector-store entries instead of duplicating them,
// while a new version of the same document gets a disjoint ID space.
func RecordID(docID string, version, index int) string {
	return fmt.Sprintf("%s::v%d::chunk-%d", docID, version, index)
}

// PageList formats a chunk's page set as a comma-joined string, e.g. "3,4".
func PageList(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// BuildRecords turns chunks into upsert-ready records, one per chunk in chunk
// order. The ingestion timestamp is captured once so every record of the
// batch shares it. Inputs are not mutated.
func BuildRecords(docID string, version int, isActive bool, source string, chunks []Chunk) []Record {
	ingestedAt := time.Now().UTC().Format(time.RFC3339)

	records := make([]Record, 0, len(chunks))
	for i, chunk := range chunks {
		records = append(records, Record{
			ID:        RecordID(docID, version, i),
			ChunkText: chunk.Text,
			Metadata: Metadata{
				DocID:      docID,
				DocVersion: version,
				IsActive:   isActive,
				Source:     source,
				Pages:      PageList(chunk.Pages),
				IngestedAt: ingestedAt,
			},
		})
	}
	return records
}
