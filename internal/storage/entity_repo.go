package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entity_store.go -package=mocks lorekeeper/internal/storage EntityStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// EntityStore defines the interface for entity storage operations.
type EntityStore interface {
	// GetOrCreate looks up an entity by kind and name, creating it if absent.
	GetOrCreate(ctx context.Context, kind, name, path string) (*EntityRecord, error)
	// GetByID gets an entity by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*EntityRecord, error)
	// ListByChunk returns the entities linked to a chunk, in name order.
	ListByChunk(ctx context.Context, chunkID string) ([]EntityRecord, error)
}

// EntityRepo provides methods for entity operations.
// It implements the EntityStore interface.
type EntityRepo struct {
	db *sql.DB
}

// NewEntityRepo creates a new EntityRepo.
func NewEntityRepo(db *sql.DB) *EntityRepo {
	return &EntityRepo{db: db}
}

// GetOrCreate looks up an entity by kind and name, creating it if absent.
// Names are the resolution key: one entity per distinct name per kind.
func (r *EntityRepo) GetOrCreate(ctx context.Context, kind, name, path string) (*EntityRecord, error) {
	var entity EntityRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, kind, name, path FROM entities WHERE kind = ? AND name = ?",
		kind, name,
	).Scan(&entity.ID, &entity.Kind, &entity.Name, &entity.Path)

	if err == nil {
		return &entity, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}

	entity = EntityRecord{
		ID:   uuid.New().String(),
		Kind: kind,
		Name: name,
		Path: path,
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO entities (id, kind, name, path) VALUES (?, ?, ?, ?)",
		entity.ID, entity.Kind, entity.Name, entity.Path,
	); err != nil {
		return nil, fmt.Errorf("failed to insert entity: %w", err)
	}

	return &entity, nil
}

// GetByID gets an entity by its ID. Returns ErrNotFound if not found.
func (r *EntityRepo) GetByID(ctx context.Context, id string) (*EntityRecord, error) {
	var entity EntityRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, kind, name, path FROM entities WHERE id = ?",
		id,
	).Scan(&entity.ID, &entity.Kind, &entity.Name, &entity.Path)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}

	return &entity, nil
}

// ListByChunk returns the entities linked to a chunk, in name order.
// Returns an empty slice if the chunk has no links (not an error).
func (r *EntityRepo) ListByChunk(ctx context.Context, chunkID string) ([]EntityRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.kind, e.name, e.path
		 FROM entities e
		 JOIN chunk_entity_links l ON l.entity_id = e.id
		 WHERE l.chunk_id = ?
		 ORDER BY e.name`,
		chunkID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entities []EntityRecord
	for rows.Next() {
		var entity EntityRecord
		if err := rows.Scan(&entity.ID, &entity.Kind, &entity.Name, &entity.Path); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entities, nil
}
