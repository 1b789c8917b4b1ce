package rag

// ChatRequest represents a full RAG chat request.
type ChatRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
	// UseReranker toggles reranking of the retrieved chunks.
	UseReranker bool `json:"use_reranker"`
	// Debug includes the raw retrieval and reranked lists in the response.
	Debug bool `json:"debug,omitempty"`
}

// SearchRequest represents a retrieval-only request (no generation).
type SearchRequest struct {
	Query       string `json:"query"`
	TopK        int    `json:"top_k,omitempty"`
	UseReranker bool   `json:"use_reranker"`
}

// GenerateRequest represents a standalone generation request with
// explicit retrieval and rerank depths.
type GenerateRequest struct {
	Question    string `json:"question"`
	TopK        int    `json:"top_k,omitempty"`
	TopN        int    `json:"top_n,omitempty"`
	UseReranker bool   `json:"use_reranker"`
}

// Hit is a retrieved chunk with its similarity score and provenance.
type Hit struct {
	// ID is the stable record identifier ("docID::v<version>::chunk-<i>").
	ID string `json:"id"`
	// Score is the relevance score (vector similarity, or blended after rerank).
	Score float32 `json:"score"`
	// ChunkText is the full chunk text.
	ChunkText string `json:"chunk_text"`
	// Source is the originating file name.
	Source string `json:"source"`
	// Pages is the comma-joined page list (e.g. "3" or "3,4").
	Pages string `json:"pages"`
}

// SourceChunk is a citation-labeled source returned alongside an answer.
type SourceChunk struct {
	ID        string  `json:"id"`
	Score     float32 `json:"score"`
	Source    string  `json:"source"`
	Pages     string  `json:"pages"`
	ChunkText string  `json:"chunk_text"`
	// Citation is the inline label used in the answer, e.g. "[1]".
	Citation string `json:"citation"`
}

// ChatResponse represents the response from a RAG chat request.
type ChatResponse struct {
	// Answer is the generated answer with inline citations.
	Answer string `json:"answer"`
	// Sources are the chunks the answer was generated from, in citation order.
	Sources []SourceChunk `json:"sources"`
	// Retrieved is the raw retrieval list (debug only).
	Retrieved []SourceChunk `json:"retrieved,omitempty"`
	// Reranked is the post-rerank list (debug only).
	Reranked []SourceChunk `json:"reranked,omitempty"`
}

// GenerateResponse represents the response from a standalone generation request.
type GenerateResponse struct {
	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Sources  []SourceChunk `json:"sources"`
	// Pipeline names the stages that ran, e.g. "retrieve → rerank → generate".
	Pipeline string `json:"pipeline"`
}
