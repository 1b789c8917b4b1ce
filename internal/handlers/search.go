package handlers

import (
	"encoding/json"
	"net/http"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/rag"
)

// SearchHandler handles retrieval-only requests, useful for debugging
// retrieval quality without spending generation tokens.
type SearchHandler struct {
	engine rag.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine rag.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchRequest represents the HTTP request payload for search.
type SearchRequest struct {
	Query       string `json:"query"`
	TopK        int    `json:"top_k"`
	UseReranker *bool  `json:"use_reranker"`
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Query   string    `json:"query"`
	Results []rag.Hit `json:"results"`
}

// ServeHTTP handles HTTP requests for search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query cannot be empty")
		return
	}

	useReranker := true
	if req.UseReranker != nil {
		useReranker = *req.UseReranker
	}

	hits, err := h.engine.Search(ctx, rag.SearchRequest{
		Query:       req.Query,
		TopK:        req.TopK,
		UseReranker: useReranker,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search")
		return
	}
	if hits == nil {
		hits = []rag.Hit{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: hits,
	})
}
