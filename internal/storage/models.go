package storage

import "time"

// Document kinds stored in the documents table.
const (
	DocTypeSession      = "session"
	DocTypeCharacter    = "character"
	DocTypeLocation     = "location"
	DocTypeOrganization = "organization"
)

// Entity kinds stored in the entities table. Resolution precedence is
// character, then location, then organization.
const (
	EntityKindCharacter    = "character"
	EntityKindLocation     = "location"
	EntityKindOrganization = "organization"
)

// DocumentRecord represents a source file captured during a corpus scan.
type DocumentRecord struct {
	ID          string // UUID
	Type        string // One of the DocType constants
	Title       string // Filename without extension
	Path        string // Absolute file path
	SessionNo   *int   // Session number, nil for non-sessions or unparseable names
	SessionDate string // ISO date (YYYY-MM-DD), empty when unknown
	CreatedAt   time.Time
}

// EntityRecord represents a named campaign entity (character, location, organization).
type EntityRecord struct {
	ID   string // UUID
	Kind string // One of the EntityKind constants
	Name string // Resolution key, filename without extension
	Path string // Dossier file path
}

// ChunkRecord represents an indexed window of document text.
// The ID doubles as the Qdrant point ID.
type ChunkRecord struct {
	ID          string
	DocumentID  string
	ChunkIndex  int    // Ordinal within the document (starts at 0)
	Heading     string // Section heading, empty for headingless sections
	Text        string
	StartOffset int // Window start within the section body
	EndOffset   int // Window end within the section body
	SessionNo   *int
	SessionDate string
}
