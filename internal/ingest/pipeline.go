package ingest

import (
	"context"
	"path/filepath"

	"docchat-ai/internal/contextutil"
)

// Pipeline sequences extraction, chunking, and record building for one
// document. It is pure orchestration: a single attempt that either fully
// succeeds or fully fails, with no retries and no partial batches. Pipelines
// hold no mutable state, so concurrent Ingest calls for different documents
// are independent.
type Pipeline struct {
	params ChunkParams
}

// NewPipeline creates a pipeline with the given chunk parameters.
func NewPipeline(params ChunkParams) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{params: params}, nil
}

// Ingest runs Extract -> Chunk -> BuildRecords for the document at path and
// returns the finished record batch for upsert. Errors from earlier stages
// propagate unmodified.
func (p *Pipeline) Ingest(ctx context.Context, path, docID string, version int, isActive bool) ([]Record, error) {
	logger := contextutil.LoggerFromContext(ctx)

	pages, err := ExtractPages(path)
	if err != nil {
		return nil, err
	}

	chunks, err := ChunkPages(pages, p.params)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	records := BuildRecords(docID, version, isActive, source, chunks)

	logger.InfoContext(ctx, "ingested document",
		"source", source,
		"doc_id", docID,
		"version", version,
		"is_active", isActive,
		"pages", len(pages),
		"chunks", len(records),
	)
	return records, nil
}
