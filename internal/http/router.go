package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docchat-ai/internal/handlers"
	"docchat-ai/internal/rag"
	"docchat-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Ingestor service.DocumentIngestor
	Engine   rag.Engine
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ingest", handlers.NewIngestHandler(deps.Ingestor))
		r.Method(http.MethodPost, "/chat", handlers.NewChatHandler(deps.Engine))
		r.Method(http.MethodPost, "/search", handlers.NewSearchHandler(deps.Engine))
		r.Method(http.MethodPost, "/generate", handlers.NewGenerateHandler(deps.Engine))
		r.Method(http.MethodGet, "/documents", handlers.NewDocumentsHandler(deps.Ingestor))
		r.Method(http.MethodPost, "/documents/activate", handlers.NewActivateHandler(deps.Ingestor))
	})

	return r
}
