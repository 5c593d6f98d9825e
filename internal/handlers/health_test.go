package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker struct {
	exists bool
	err    error
}

func (f *fakeChecker) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return f.exists, f.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checker    *fakeChecker
		wantStatus int
		wantHealth string
	}{
		{"healthy", &fakeChecker{exists: true}, http.StatusOK, "healthy"},
		{"collection missing", &fakeChecker{exists: false}, http.StatusServiceUnavailable, "unhealthy"},
		{"store unreachable", &fakeChecker{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.checker, "campaign")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("expected status %q, got %q", tt.wantHealth, resp.Status)
			}
			if _, ok := resp.Checks["vector_store"]; !ok {
				t.Error("expected vector_store check in response")
			}
		})
	}
}
