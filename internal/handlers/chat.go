package handlers

import (
	"encoding/json"
	"net/http"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/rag"
)

// ChatHandler handles HTTP requests for the full RAG chat pipeline.
type ChatHandler struct {
	engine rag.Engine
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine rag.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// ChatRequest represents the HTTP request payload for chat.
// UseReranker defaults to true when omitted.
type ChatRequest struct {
	Question    string `json:"question"`
	UseReranker *bool  `json:"use_reranker"`
	Debug       bool   `json:"debug"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
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

	resp, err := h.engine.Chat(ctx, rag.ChatRequest{
		Question:    req.Question,
		UseReranker: useReranker,
		Debug:       req.Debug,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
