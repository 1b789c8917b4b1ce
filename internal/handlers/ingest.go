package handlers

import (
	"encoding/json"
	"net/http"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/service"
)

// IngestHandler handles HTTP requests for document ingestion.
type IngestHandler struct {
	ingestor service.DocumentIngestor
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestor service.DocumentIngestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// IngestRequest represents the HTTP request payload for ingestion.
type IngestRequest struct {
	FilePath string `json:"file_path"`
	DocID    string `json:"doc_id"`
	Version  int    `json:"version"`
	IsActive bool   `json:"is_active"`
}

// IngestResponse represents the HTTP response payload for ingestion.
type IngestResponse struct {
	File    string `json:"file"`
	DocID   string `json:"doc_id"`
	Version int    `json:"version"`
	Chunks  int    `json:"chunks"`
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for ingestion.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.ingestor.Ingest(ctx, service.IngestRequest{
		FilePath: req.FilePath,
		DocID:    req.DocID,
		Version:  req.Version,
		IsActive: req.IsActive,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to ingest document")
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		File:    result.File,
		DocID:   result.DocID,
		Version: result.Version,
		Chunks:  result.Chunks,
		Message: "Document ingested successfully",
	})
}
