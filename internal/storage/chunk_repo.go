package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks lorekeeper/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Insert inserts a chunk together with its entity links.
	// The chunk.ID must be set (UUID) before calling this method.
	Insert(ctx context.Context, chunk *ChunkRecord, entityIDs []string) error
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ChunkRecord, error)
	// CountByDocument returns the number of chunks stored for a document.
	CountByDocument(ctx context.Context, documentID string) (int, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Insert inserts a chunk together with its entity links in one transaction.
// Duplicate entity IDs are ignored, so a given entity is linked at most once
// per chunk.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *ChunkRecord, entityIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chunks (id, document_id, chunk_index, heading, text, start_offset, end_offset, session_no, session_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chunk.ID, chunk.DocumentID, chunk.ChunkIndex, nullableString(chunk.Heading), chunk.Text,
		chunk.StartOffset, chunk.EndOffset, chunk.SessionNo, nullableString(chunk.SessionDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}

	for _, entityID := range entityIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO chunk_entity_links (chunk_id, entity_id) VALUES (?, ?)",
			chunk.ID, entityID,
		); err != nil {
			return fmt.Errorf("failed to insert entity link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk: %w", err)
	}
	return nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	var heading, sessionDate sql.NullString
	var sessionNo sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, document_id, chunk_index, heading, text, start_offset, end_offset, session_no, session_date
		 FROM chunks WHERE id = ?`,
		id,
	).Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &heading, &chunk.Text,
		&chunk.StartOffset, &chunk.EndOffset, &sessionNo, &sessionDate)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}

	chunk.Heading = heading.String
	chunk.SessionDate = sessionDate.String
	if sessionNo.Valid {
		n := int(sessionNo.Int64)
		chunk.SessionNo = &n
	}

	return &chunk, nil
}

// CountByDocument returns the number of chunks stored for a document.
func (r *ChunkRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE document_id = ?",
		documentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
