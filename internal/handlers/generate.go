package handlers

import (
	"encoding/json"
	"net/http"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/rag"
)

// GenerateHandler handles standalone generation requests with explicit
// retrieval and rerank depths.
type GenerateHandler struct {
	engine rag.Engine
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(engine rag.Engine) *GenerateHandler {
	return &GenerateHandler{engine: engine}
}

// GenerateRequest represents the HTTP request payload for generation.
type GenerateRequest struct {
	Question    string `json:"question"`
	TopK        int    `json:"top_k"`
	TopN        int    `json:"top_n"`
	UseReranker *bool  `json:"use_reranker"`
}

// ServeHTTP handles HTTP requests for generation.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question cannot be empty")
		return
	}

	useReranker := true
	if req.UseReranker != nil {
		useReranker = *req.UseReranker
	}

	resp, err := h.engine.Generate(ctx, rag.GenerateRequest{
		Question:    req.Question,
		TopK:        req.TopK,
		TopN:        req.TopN,
		UseReranker: useReranker,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate answer")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
