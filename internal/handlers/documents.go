package handlers

import (
	"encoding/json"
	"net/http"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/service"
)

// DocumentsHandler lists registered document versions.
type DocumentsHandler struct {
	ingestor service.DocumentIngestor
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(ingestor service.DocumentIngestor) *DocumentsHandler {
	return &DocumentsHandler{ingestor: ingestor}
}

// DocumentEntry represents one document version in the listing.
type DocumentEntry struct {
	DocID      string `json:"doc_id"`
	Version    int    `json:"version"`
	IsActive   bool   `json:"is_active"`
	Source     string `json:"source"`
	ChunkCount int    `json:"chunk_count"`
	IngestedAt string `json:"ingested_at"`
}

// DocumentsResponse represents the document listing response.
type DocumentsResponse struct {
	Documents []DocumentEntry `json:"documents"`
}

// ServeHTTP handles HTTP requests for the document listing.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	docs, err := h.ingestor.ListDocuments(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list documents")
		return
	}

	entries := make([]DocumentEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, DocumentEntry{
			DocID:      doc.DocID,
			Version:    doc.Version,
			IsActive:   doc.IsActive,
			Source:     doc.Source,
			ChunkCount: doc.ChunkCount,
			IngestedAt: doc.IngestedAt,
		})
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: entries})
}

// ActivateHandler switches the active version of a document.
type ActivateHandler struct {
	ingestor service.DocumentIngestor
}

// NewActivateHandler creates a new ActivateHandler.
func NewActivateHandler(ingestor service.DocumentIngestor) *ActivateHandler {
	return &ActivateHandler{ingestor: ingestor}
}

// ActivateRequest represents the HTTP request payload for activation.
type ActivateRequest struct {
	DocID   string `json:"doc_id"`
	Version int    `json:"version"`
}

// ActivateResponse represents the HTTP response payload for activation.
type ActivateResponse struct {
	DocID   string `json:"doc_id"`
	Version int    `json:"version"`
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for activation.
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.ingestor.ActivateVersion(ctx, req.DocID, req.Version); err != nil {
		handleServiceError(w, ctx, err, "Failed to activate document version")
		return
	}

	writeJSON(w, http.StatusOK, ActivateResponse{
		DocID:   req.DocID,
		Version: req.Version,
		Message: "Document version activated",
	})
}
