package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks lorekeeper/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a ranked hit from hybrid search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// SessionFilter restricts hits by session number. Either bound may be nil
// ("from only" / "to only"); both bounds are inclusive.
type SessionFilter struct {
	From *int
	To   *int
}

// VectorStore defines the interface to the search collaborator.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// HybridSearch runs the collaborator's hybrid mode: vector similarity
	// blended with a lexical score at weight alpha (1 = pure vector).
	// Results come back in blended relevance order, length <= k.
	HybridSearch(ctx context.Context, collection, queryText string, queryVector []float32, k int, alpha float64, filter *SessionFilter) ([]SearchResult, error)
}
