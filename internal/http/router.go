package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lorekeeper/internal/handlers"
	"lorekeeper/internal/indexer"
	"lorekeeper/internal/retrieval"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine         *retrieval.Engine
	Pipeline       *indexer.Pipeline
	VectorStore    handlers.CollectionChecker
	CollectionName string
	DefaultK       int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)
	scanHandler := handlers.NewScanHandler(deps.Pipeline)
	askHandler := handlers.NewAskHandler(deps.Engine, deps.DefaultK)

	r.Method(http.MethodGet, "/health", healthHandler)
	r.Method(http.MethodPost, "/ingest/scan", scanHandler)
	r.Method(http.MethodPost, "/ask", askHandler)

	return r
}
