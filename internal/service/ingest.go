package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingestor.go -package=mocks docchat-ai/internal/service DocumentIngestor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/ingest"
	"docchat-ai/internal/storage"
	"docchat-ai/internal/vectorstore"
)

// pointNamespace is the UUID namespace for deriving vector point IDs from
// record IDs. Qdrant requires UUID point IDs; hashing the record ID keeps
// them deterministic so re-ingesting a doc_id+version overwrites its points.
var pointNamespace = uuid.MustParse("a5e2e604-3b6f-4aef-9d5c-1a0f5bbf1d27")

// embedBatchSize is the number of chunk texts sent per embeddings request.
const embedBatchSize = 16

// embedConcurrency bounds the number of in-flight embeddings requests.
const embedConcurrency = 4

// Embedder turns texts into vectors. Defined from the service layer's
// perspective (consumer-first); *llm.EmbeddingsClient implements it.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IngestRequest represents a document ingestion request in the domain layer.
type IngestRequest struct {
	FilePath string
	DocID    string
	Version  int
	IsActive bool
}

// IngestResult summarizes a completed ingestion.
type IngestResult struct {
	File    string
	DocID   string
	Version int
	Chunks  int
}

// DocumentIngestor provides document ingestion and registry operations.
type DocumentIngestor interface {
	// Ingest runs the full pipeline: extract, chunk, embed, upsert, register.
	Ingest(ctx context.Context, req IngestRequest) (IngestResult, error)

	// ListDocuments returns every registered document version.
	ListDocuments(ctx context.Context) ([]*storage.Document, error)

	// ActivateVersion makes the given version the active one for its doc_id.
	ActivateVersion(ctx context.Context, docID string, version int) error
}

// IngestService implements DocumentIngestor.
type IngestService struct {
	pipeline    *ingest.Pipeline
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	documents   storage.DocumentStore
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	pipeline *ingest.Pipeline,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	documents storage.DocumentStore,
) *IngestService {
	return &IngestService{
		pipeline:    pipeline,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		documents:   documents,
	}
}

// Ingest runs the document through the pipeline, embeds the chunks, upserts
// them into the vector store, and records the version in the registry.
// Pipeline errors (file not found, unsupported format) pass through unwrapped
// so callers can map them with errors.Is.
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) (IngestResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.FilePath == "" {
		return IngestResult{}, &ValidationError{Field: "file_path", Message: "cannot be empty"}
	}
	if req.DocID == "" {
		return IngestResult{}, &ValidationError{Field: "doc_id", Message: "cannot be empty"}
	}
	if req.Version < 1 {
		return IngestResult{}, &ValidationError{Field: "version", Message: "must be >= 1"}
	}

	records, err := s.pipeline.Ingest(ctx, req.FilePath, req.DocID, req.Version, req.IsActive)
	if err != nil {
		return IngestResult{}, err
	}

	summary := ingest.Summarize(records)
	logger.DebugContext(ctx, "chunk statistics",
		"chunks", summary.Chunks,
		"pages", summary.Pages,
		"tokens_min", summary.TokenStats.Min,
		"tokens_max", summary.TokenStats.Max,
		"tokens_mean", summary.TokenStats.Mean,
		"tokens_p95", summary.TokenStats.P95,
	)

	ingestedAt := time.Now().UTC().Format(time.RFC3339)
	if len(records) > 0 {
		ingestedAt = records[0].Metadata.IngestedAt

		vectors, err := s.embedRecords(ctx, records)
		if err != nil {
			return IngestResult{}, WrapError(err, "failed to embed chunks")
		}

		points := make([]vectorstore.Point, len(records))
		for i, record := range records {
			points[i] = vectorstore.Point{
				ID:  uuid.NewSHA1(pointNamespace, []byte(record.ID)).String(),
				Vec: vectors[i],
				Meta: map[string]any{
					"record_id":   record.ID,
					"chunk_text":  record.ChunkText,
					"doc_id":      record.Metadata.DocID,
					"doc_version": record.Metadata.DocVersion,
					"is_active":   record.Metadata.IsActive,
					"source":      record.Metadata.Source,
					"pages":       record.Metadata.Pages,
					"ingested_at": record.Metadata.IngestedAt,
				},
			}
		}

		if err := s.vectorStore.Upsert(ctx, s.collection, points); err != nil {
			return IngestResult{}, WrapError(err, "failed to upsert vectors")
		}
	}

	doc := &storage.Document{
		DocID:      req.DocID,
		Version:    req.Version,
		IsActive:   req.IsActive,
		Source:     filepath.Base(req.FilePath),
		ChunkCount: len(records),
		IngestedAt: ingestedAt,
	}
	if err := s.documents.Upsert(ctx, doc); err != nil {
		return IngestResult{}, WrapError(err, "failed to register document")
	}
	if req.IsActive {
		if err := s.documents.SetActive(ctx, req.DocID, req.Version); err != nil {
			return IngestResult{}, WrapError(err, "failed to activate document version")
		}
	}

	logger.InfoContext(ctx, "document ingested",
		"doc_id", req.DocID,
		"version", req.Version,
		"chunks", len(records),
		"is_active", req.IsActive,
	)

	return IngestResult{
		File:    req.FilePath,
		DocID:   req.DocID,
		Version: req.Version,
		Chunks:  len(records),
	}, nil
}

// embedRecords embeds all chunk texts in bounded concurrent batches,
// preserving record order in the returned vectors.
func (s *IngestService) embedRecords(ctx context.Context, records []ingest.Record) ([][]float32, error) {
	vectors := make([][]float32, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for start := 0; start < len(records); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(records) {
			end = len(records)
		}
		start, end := start, end

		g.Go(func() error {
			texts := make([]string, end-start)
			for i := start; i < end; i++ {
				texts[i-start] = records[i].ChunkText
			}

			batch, err := s.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				return fmt.Errorf("batch [%d:%d]: %w", start, end, err)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// ListDocuments returns every registered document version.
func (s *IngestService) ListDocuments(ctx context.Context) ([]*storage.Document, error) {
	docs, err := s.documents.ListAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	return docs, nil
}

// ActivateVersion switches the active version for a doc_id. Returns
// ErrNotFound when the version has not been ingested.
func (s *IngestService) ActivateVersion(ctx context.Context, docID string, version int) error {
	if docID == "" {
		return &ValidationError{Field: "doc_id", Message: "cannot be empty"}
	}
	if version < 1 {
		return &ValidationError{Field: "version", Message: "must be >= 1"}
	}

	if err := s.documents.SetActive(ctx, docID, version); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s v%d", ErrNotFound, docID, version)
		}
		return WrapError(err, "failed to activate document version")
	}
	return nil
}
