package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestDocumentRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	no := 14
	doc := &DocumentRecord{
		ID:          uuid.New().String(),
		Type:        DocTypeSession,
		Title:       "Session 14",
		Path:        "/notes/sessions/Session 14.md",
		SessionNo:   &no,
		SessionDate: "2024-12-30",
	}
	if err := repo.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != doc.Title || got.Type != doc.Type || got.Path != doc.Path {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.SessionNo == nil || *got.SessionNo != 14 || got.SessionDate != "2024-12-30" {
		t.Errorf("session fields lost: %+v", got)
	}
}

func TestDocumentRepoNullSessionFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{
		ID:    uuid.New().String(),
		Type:  DocTypeCharacter,
		Title: "Kaela",
		Path:  "/notes/characters/Kaela.md",
	}
	if err := repo.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.SessionNo != nil || got.SessionDate != "" {
		t.Errorf("expected null session fields, got %+v", got)
	}
}

func TestDocumentRepoNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntityRepoGetOrCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntityRepo(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, EntityKindCharacter, "Kaela", "/notes/characters/Kaela.md")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := repo.GetOrCreate(ctx, EntityKindCharacter, "Kaela", "/notes/characters/Kaela.md")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same entity across calls, got %s and %s", first.ID, second.ID)
	}

	// Same name under a different kind is a distinct entity.
	other, err := repo.GetOrCreate(ctx, EntityKindLocation, "Kaela", "/notes/locations/Kaela.md")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if other.ID == first.ID {
		t.Error("entities of different kinds must not share an ID")
	}
}

func TestChunkRepoInsertWithLinks(t *testing.T) {
	db := newTestDB(t)
	docRepo := NewDocumentRepo(db)
	entityRepo := NewEntityRepo(db)
	chunkRepo := NewChunkRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{ID: uuid.New().String(), Type: DocTypeSession, Title: "Session 1", Path: "/s1.md"}
	if err := docRepo.Insert(ctx, doc); err != nil {
		t.Fatalf("doc insert failed: %v", err)
	}
	entity, err := entityRepo.GetOrCreate(ctx, EntityKindCharacter, "Kaela", "/k.md")
	if err != nil {
		t.Fatalf("entity create failed: %v", err)
	}

	no := 1
	chunk := &ChunkRecord{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		ChunkIndex:  0,
		Heading:     "The Ambush",
		Text:        "Kaela saved the party.",
		StartOffset: 0,
		EndOffset:   22,
		SessionNo:   &no,
	}
	// Duplicate entity IDs collapse to a single link.
	if err := chunkRepo.Insert(ctx, chunk, []string{entity.ID, entity.ID}); err != nil {
		t.Fatalf("chunk insert failed: %v", err)
	}

	got, err := chunkRepo.GetByID(ctx, chunk.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Heading != "The Ambush" || got.Text != chunk.Text || got.EndOffset != 22 {
		t.Errorf("unexpected chunk: %+v", got)
	}

	linked, err := entityRepo.ListByChunk(ctx, chunk.ID)
	if err != nil {
		t.Fatalf("ListByChunk failed: %v", err)
	}
	if len(linked) != 1 || linked[0].Name != "Kaela" {
		t.Errorf("unexpected links: %+v", linked)
	}

	count, err := chunkRepo.CountByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("CountByDocument failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 chunk, got %d", count)
	}
}

func TestChunkRepoInsertUnknownDocumentFails(t *testing.T) {
	db := newTestDB(t)
	chunkRepo := NewChunkRepo(db)

	chunk := &ChunkRecord{
		ID:         uuid.New().String(),
		DocumentID: "no-such-document",
		Text:       "orphan",
	}
	if err := chunkRepo.Insert(context.Background(), chunk, nil); err == nil {
		t.Fatal("expected foreign key violation for unknown document")
	}
}
