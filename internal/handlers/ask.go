package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lorekeeper/internal/contextutil"
	"lorekeeper/internal/retrieval"
	"lorekeeper/internal/service"
)

// maxK bounds the number of candidates a client may request.
const maxK = 50

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	engine   *retrieval.Engine
	defaultK int
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine *retrieval.Engine, defaultK int) *AskHandler {
	return &AskHandler{
		engine:   engine,
		defaultK: defaultK,
	}
}

// AskRequest represents the HTTP request payload.
// This mirrors retrieval.AskRequest but is defined here for layer separation.
type AskRequest struct {
	Query       string `json:"query"`
	K           int    `json:"k,omitempty"`
	FromSession *int   `json:"from_session,omitempty"`
	ToSession   *int   `json:"to_session,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question over the indexed corpus.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in request")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	k := req.K
	if k <= 0 {
		k = h.defaultK
	}
	if k > maxK {
		k = maxK
	}

	resp, err := h.engine.Ask(ctx, retrieval.AskRequest{
		Query:       req.Query,
		K:           k,
		FromSession: req.FromSession,
		ToSession:   req.ToSession,
	})
	if err != nil {
		h.handleAskError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleAskError maps engine errors to HTTP status codes by error kind.
func (h *AskHandler) handleAskError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "ask failed", "error", err)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Search backend unavailable")
	case errors.Is(err, service.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, "Generation timed out")
	case errors.Is(err, service.ErrUpstream):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to process query")
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
