package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/sync/singleflight"

	"lorekeeper/internal/contextutil"
	"lorekeeper/internal/indexer"
)

// ScanHandler handles HTTP requests to run a full corpus scan.
//
// A scan is not safe to run concurrently, so overlapping requests are
// coalesced through singleflight: every caller waiting on an in-flight scan
// receives that scan's result instead of starting its own.
type ScanHandler struct {
	pipeline *indexer.Pipeline
	group    singleflight.Group
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(pipeline *indexer.Pipeline) *ScanHandler {
	return &ScanHandler{pipeline: pipeline}
}

// ScanResponse represents the scan result payload.
type ScanResponse struct {
	Status           string `json:"status"`
	DocumentsIndexed int    `json:"documents_indexed"`
	ChunksIndexed    int    `json:"chunks_indexed"`
}

// ServeHTTP runs a full corpus scan synchronously and returns the counts.
func (h *ScanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	result, err, shared := h.group.Do("scan", func() (any, error) {
		// Detach from request cancellation: a coalesced follower must not see
		// the scan die because the leader's client disconnected.
		scanCtx := contextutil.WithLogger(context.WithoutCancel(ctx), logger)
		stats, err := h.pipeline.Scan(scanCtx)
		return stats, err
	})
	if err != nil {
		logger.ErrorContext(ctx, "corpus scan failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Scan failed")
		return
	}

	stats := result.(indexer.ScanStats)
	logger.InfoContext(ctx, "corpus scan complete",
		"documents", stats.DocumentsIndexed,
		"chunks", stats.ChunksIndexed,
		"coalesced", shared,
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ScanResponse{
		Status:           "ok",
		DocumentsIndexed: stats.DocumentsIndexed,
		ChunksIndexed:    stats.ChunksIndexed,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode scan response", "error", err)
	}
}
