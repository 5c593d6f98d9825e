package retrieval

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"lorekeeper/internal/storage"
	storage_mocks "lorekeeper/internal/storage/mocks"
	"lorekeeper/internal/vectorstore"
	vectorstore_mocks "lorekeeper/internal/vectorstore/mocks"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.5, 0.5}
	}
	return vectors, nil
}

func TestCoordinatorSearchNormalizesHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	chunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	docRepo := storage_mocks.NewMockDocumentStore(ctrl)
	entityRepo := storage_mocks.NewMockEntityStore(ctrl)

	no := 3
	vectorStore.EXPECT().
		HybridSearch(gomock.Any(), "campaign", "who is kaela", gomock.Any(), 10, 0.5, nil).
		Return([]vectorstore.SearchResult{{PointID: "chunk-1", Score: 0.83}}, nil)
	chunkRepo.EXPECT().GetByID(gomock.Any(), "chunk-1").
		Return(&storage.ChunkRecord{
			ID:         "chunk-1",
			DocumentID: "doc-1",
			Heading:    "The Ambush",
			Text:       "Kaela saved the party.",
			SessionNo:  &no,
		}, nil)
	docRepo.EXPECT().GetByID(gomock.Any(), "doc-1").
		Return(&storage.DocumentRecord{
			ID:    "doc-1",
			Type:  storage.DocTypeSession,
			Title: "Session 3",
			Path:  "/notes/Session 3.md",
		}, nil)
	entityRepo.EXPECT().ListByChunk(gomock.Any(), "chunk-1").
		Return([]storage.EntityRecord{{ID: "e1", Name: "Kaela"}}, nil)

	coordinator := NewCoordinator(&fakeEmbedder{}, vectorStore, chunkRepo, docRepo, entityRepo, "campaign", 0.5)
	candidates, err := coordinator.Search(context.Background(), "who is kaela", 10, nil, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.ChunkID != "chunk-1" || c.DocTitle != "Session 3" || c.Heading != "The Ambush" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if c.SessionNo == nil || *c.SessionNo != 3 {
		t.Errorf("expected session number 3, got %v", c.SessionNo)
	}
	if len(c.Entities) != 1 || c.Entities[0] != "Kaela" {
		t.Errorf("unexpected entities: %v", c.Entities)
	}
	if c.Score < 0.82 || c.Score > 0.84 {
		t.Errorf("unexpected score: %f", c.Score)
	}
}

func TestCoordinatorSearchBuildsSessionFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	chunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	docRepo := storage_mocks.NewMockDocumentStore(ctrl)
	entityRepo := storage_mocks.NewMockEntityStore(ctrl)

	from, to := 2, 5
	vectorStore.EXPECT().
		HybridSearch(gomock.Any(), "campaign", "q", gomock.Any(), 5, 0.5,
			&vectorstore.SessionFilter{From: &from, To: &to}).
		Return(nil, nil)

	coordinator := NewCoordinator(&fakeEmbedder{}, vectorStore, chunkRepo, docRepo, entityRepo, "campaign", 0.5)
	candidates, err := coordinator.Search(context.Background(), "q", 5, &from, &to)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestCoordinatorSearchSkipsStaleHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	chunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	docRepo := storage_mocks.NewMockDocumentStore(ctrl)
	entityRepo := storage_mocks.NewMockEntityStore(ctrl)

	vectorStore.EXPECT().
		HybridSearch(gomock.Any(), "campaign", "q", gomock.Any(), 10, 0.5, nil).
		Return([]vectorstore.SearchResult{
			{PointID: "gone", Score: 0.9},
			{PointID: "chunk-1", Score: 0.8},
		}, nil)
	chunkRepo.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)
	chunkRepo.EXPECT().GetByID(gomock.Any(), "chunk-1").
		Return(&storage.ChunkRecord{ID: "chunk-1", DocumentID: "doc-1", Text: "t"}, nil)
	docRepo.EXPECT().GetByID(gomock.Any(), "doc-1").
		Return(&storage.DocumentRecord{ID: "doc-1", Type: storage.DocTypeSession, Title: "Session 1"}, nil)
	entityRepo.EXPECT().ListByChunk(gomock.Any(), "chunk-1").Return(nil, nil)

	coordinator := NewCoordinator(&fakeEmbedder{}, vectorStore, chunkRepo, docRepo, entityRepo, "campaign", 0.5)
	candidates, err := coordinator.Search(context.Background(), "q", 10, nil, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ChunkID != "chunk-1" {
		t.Fatalf("expected the stale hit skipped, got %v", candidates)
	}
}

func TestCoordinatorSearchEmbedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	chunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	docRepo := storage_mocks.NewMockDocumentStore(ctrl)
	entityRepo := storage_mocks.NewMockEntityStore(ctrl)

	coordinator := NewCoordinator(
		&fakeEmbedder{err: errors.New("embedding server down")},
		vectorStore, chunkRepo, docRepo, entityRepo, "campaign", 0.5,
	)
	_, err := coordinator.Search(context.Background(), "q", 10, nil, nil)
	if err == nil {
		t.Fatal("expected error when embedding fails")
	}
}
