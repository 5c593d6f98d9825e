package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks lorekeeper/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a document record. The record's ID must be set.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a document record. The record's ID must be set.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (id, type, title, path, session_no, session_date) VALUES (?, ?, ?, ?, ?, ?)",
		doc.ID, doc.Type, doc.Title, doc.Path, doc.SessionNo, nullableString(doc.SessionDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by its ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var sessionNo sql.NullInt64
	var sessionDate sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, type, title, path, session_no, session_date FROM documents WHERE id = ?",
		id,
	).Scan(&doc.ID, &doc.Type, &doc.Title, &doc.Path, &sessionNo, &sessionDate)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	if sessionNo.Valid {
		n := int(sessionNo.Int64)
		doc.SessionNo = &n
	}
	doc.SessionDate = sessionDate.String

	return &doc, nil
}

// nullableString maps "" to NULL so optional columns stay NULL in the catalog.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
