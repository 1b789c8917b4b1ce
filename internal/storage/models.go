package storage

// Document represents one ingested version of a logical document. A doc_id
// can have several versions in the registry; at most one is active and the
// active one is what retrieval filters on.
type Document struct {
	DocID      string
	Version    int
	IsActive   bool
	Source     string // base filename the version was ingested from
	ChunkCount int
	IngestedAt string // UTC RFC 3339, as stamped on the record batch
}
