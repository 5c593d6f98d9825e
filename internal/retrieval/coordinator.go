package retrieval

import (
	"context"
	"errors"
	"fmt"

	"lorekeeper/internal/contextutil"
	"lorekeeper/internal/storage"
	"lorekeeper/internal/vectorstore"
)

// Embedder turns a query into a vector.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Coordinator runs hybrid search and normalizes hits into candidates backed
// by the authoritative catalog records. The search payload carries enough to
// rank; the catalog remains the source of truth for what is returned.
type Coordinator struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	chunkRepo   storage.ChunkStore
	docRepo     storage.DocumentStore
	entityRepo  storage.EntityStore
	collection  string
	alpha       float64
}

// NewCoordinator creates a retrieval coordinator.
func NewCoordinator(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	chunkRepo storage.ChunkStore,
	docRepo storage.DocumentStore,
	entityRepo storage.EntityStore,
	collection string,
	alpha float64,
) *Coordinator {
	return &Coordinator{
		embedder:    embedder,
		vectorStore: vectorStore,
		chunkRepo:   chunkRepo,
		docRepo:     docRepo,
		entityRepo:  entityRepo,
		collection:  collection,
		alpha:       alpha,
	}
}

// Search embeds the query, runs hybrid search with the optional session
// filter, and returns candidates in relevance order. Hits whose chunk has
// vanished from the catalog are dropped rather than failing the query.
func (c *Coordinator) Search(ctx context.Context, query string, k int, fromSession, toSession *int) ([]Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := c.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var filter *vectorstore.SessionFilter
	if fromSession != nil || toSession != nil {
		filter = &vectorstore.SessionFilter{From: fromSession, To: toSession}
	}

	hits, err := c.vectorStore.HybridSearch(ctx, c.collection, query, vectors[0], k, c.alpha, filter)
	if err != nil {
		return nil, fmt.Errorf("hybrid search failed: %w", err)
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		candidate, err := c.normalize(ctx, hit)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				logger.Warn("search hit missing from catalog, skipping", "point_id", hit.PointID)
				continue
			}
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// normalize re-fetches the chunk, its document, and its entity links by the
// hit's point ID, which doubles as the chunk ID.
func (c *Coordinator) normalize(ctx context.Context, hit vectorstore.SearchResult) (Candidate, error) {
	chunk, err := c.chunkRepo.GetByID(ctx, hit.PointID)
	if err != nil {
		return Candidate{}, err
	}

	doc, err := c.docRepo.GetByID(ctx, chunk.DocumentID)
	if err != nil {
		return Candidate{}, err
	}

	entities, err := c.entityRepo.ListByChunk(ctx, chunk.ID)
	if err != nil {
		return Candidate{}, err
	}
	names := make([]string, len(entities))
	for i, entity := range entities {
		names[i] = entity.Name
	}

	return Candidate{
		ChunkID:     chunk.ID,
		Text:        chunk.Text,
		Heading:     chunk.Heading,
		DocTitle:    doc.Title,
		DocPath:     doc.Path,
		DocType:     doc.Type,
		SessionNo:   chunk.SessionNo,
		SessionDate: chunk.SessionDate,
		Score:       float64(hit.Score),
		Entities:    names,
	}, nil
}
