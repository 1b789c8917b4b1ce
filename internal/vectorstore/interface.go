package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docchat-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with its payload. Meta carries the full
// ingestion record metadata plus the chunk text, so retrieval does not need a
// secondary lookup.
type Point struct {
	ID   string // UUID string; derived deterministically from the record ID
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single hit from a vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations. Upserting
// a point whose ID already exists overwrites the stored point, which is how
// re-ingestion of an unchanged document version replaces its own entries.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with optional payload filters.
	// Supported filter keys: "is_active" (bool) and "doc_id" (string).
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}
