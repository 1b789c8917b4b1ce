package ingest

// Page is one extracted source page. Pages are ordered by PageNumber but the
// numbering may skip values: blank PDF pages are omitted and the numbers
// reflect the physical document.
type Page struct {
	PageNumber int    // 1-based physical page number
	Text       string // raw extracted text, not yet normalized
}

// Chunk is one sliding-window slice of the normalized document stream,
// annotated with the source pages the window spans.
type Chunk struct {
	Text  string
	Pages []int // sorted, distinct page numbers
}

// Metadata is attached to every record handed to the vector store.
type Metadata struct {
	DocID      string `json:"doc_id"`
	DocVersion int    `json:"doc_version"`
	IsActive   bool   `json:"is_active"`
	Source     string `json:"source"`      // base filename of the ingested document
	Pages      string `json:"pages"`       // comma-joined page numbers, e.g. "3,4"
	IngestedAt string `json:"ingested_at"` // UTC RFC 3339, shared by the whole batch
}

// Record is the persisted output of one ingestion call: one embeddable chunk
// keyed by a version-safe identifier.
type Record struct {
	ID        string   `json:"id"`
	ChunkText string   `json:"chunk_text"`
	Metadata  Metadata `json:"metadata"`
}
