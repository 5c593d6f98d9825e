package indexer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"lorekeeper/internal/corpus"
	"lorekeeper/internal/storage"
	"lorekeeper/internal/vectorstore"
)

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Sources names the corpus directories for one campaign. Sessions is
// required; the entity directories may be empty strings or missing paths.
type Sources struct {
	Sessions      string
	Characters    string
	Locations     string
	Organizations string
}

// ScanStats reports what a full corpus scan indexed.
type ScanStats struct {
	DocumentsIndexed int `json:"documents_indexed"`
	ChunksIndexed    int `json:"chunks_indexed"`
}

// Pipeline orchestrates a full corpus scan: registry build, per-document
// sectioning and windowing, per-window entity-link resolution, and submission
// of chunks to SQLite and the vector store.
//
// A scan is a single sequential pass; callers must not run two scans
// concurrently against the same registries and collection. Re-running a scan
// creates new document and chunk records for unchanged files; re-ingestion
// accumulates rather than updating in place.
type Pipeline struct {
	sources     Sources
	docRepo     storage.DocumentStore
	entityRepo  storage.EntityStore
	chunkRepo   storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	splitter    *SectionSplitter
	maxChars    int
	overlap     int
}

// NewPipeline creates a new ingestion pipeline. The window parameters are
// validated here so a misconfigured overlap fails at construction.
func NewPipeline(
	sources Sources,
	docRepo storage.DocumentStore,
	entityRepo storage.EntityStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	maxChars, overlap int,
) (*Pipeline, error) {
	if maxChars <= 0 || overlap < 0 || overlap >= maxChars {
		return nil, fmt.Errorf("invalid window parameters: maxChars=%d overlap=%d", maxChars, overlap)
	}
	return &Pipeline{
		sources:     sources,
		docRepo:     docRepo,
		entityRepo:  entityRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		splitter:    NewSectionSplitter(),
		maxChars:    maxChars,
		overlap:     overlap,
	}, nil
}

// Scan runs a full corpus scan and returns the number of documents and chunks
// indexed. The entity registries are built first so wikilinks in any document
// can resolve against the complete entity set. Documents are processed in
// stable sorted order per directory.
func (p *Pipeline) Scan(ctx context.Context) (ScanStats, error) {
	var stats ScanStats

	registry, err := BuildRegistry(ctx, p.entityRepo, p.sources.Characters, p.sources.Locations, p.sources.Organizations)
	if err != nil {
		return stats, fmt.Errorf("failed to build entity registry: %w", err)
	}

	corpora := []struct {
		docType string
		dir     string
	}{
		{storage.DocTypeSession, p.sources.Sessions},
		{storage.DocTypeCharacter, p.sources.Characters},
		{storage.DocTypeLocation, p.sources.Locations},
		{storage.DocTypeOrganization, p.sources.Organizations},
	}

	for _, c := range corpora {
		files, err := corpus.ListMarkdown(ctx, c.dir)
		if err != nil {
			return stats, err
		}
		for _, file := range files {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			default:
			}

			chunks, err := p.indexDocument(ctx, registry, c.docType, file)
			if err != nil {
				return stats, fmt.Errorf("failed to index %s: %w", file.RelPath, err)
			}
			stats.DocumentsIndexed++
			stats.ChunksIndexed += chunks
		}
	}

	return stats, nil
}

// indexDocument ingests one source file: document record, sections, windows,
// entity links, chunk records, embeddings, vector points. Returns the number
// of chunks submitted.
func (p *Pipeline) indexDocument(ctx context.Context, registry *Registry, docType string, file corpus.ScannedFile) (int, error) {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	var sessionNo *int
	var sessionDate string
	if docType == storage.DocTypeSession {
		sessionNo, sessionDate = corpus.ParseSessionFilename(file.RelPath)
	}

	doc := &storage.DocumentRecord{
		ID:          uuid.New().String(),
		Type:        docType,
		Title:       file.Name,
		Path:        file.AbsPath,
		SessionNo:   sessionNo,
		SessionDate: sessionDate,
	}
	if err := p.docRepo.Insert(ctx, doc); err != nil {
		return 0, err
	}

	// A dossier document is implicitly linked to its own entity in every
	// chunk it produces, even without an explicit wikilink.
	var selfLink *EntityRef
	if kind := entityKindForDocType(docType); kind != "" {
		if ref, ok := registry.ResolveKind(kind, file.Name); ok {
			selfLink = &ref
		}
	}

	var records []*storage.ChunkRecord
	var linkSets [][]string
	var texts []string

	chunkIndex := 0
	for _, section := range p.splitter.Split(string(content)) {
		for window := range Windows(section.Body, p.maxChars, p.overlap) {
			if strings.TrimSpace(window.Text) == "" {
				continue
			}

			// Link scope is the window: each window's entity-link list is
			// built fresh from its own text, never inherited from a sibling.
			linkIDs := p.resolveLinks(registry, window.Text, selfLink)

			records = append(records, &storage.ChunkRecord{
				ID:          uuid.New().String(),
				DocumentID:  doc.ID,
				ChunkIndex:  chunkIndex,
				Heading:     section.Heading,
				Text:        window.Text,
				StartOffset: window.Start,
				EndOffset:   window.End,
				SessionNo:   sessionNo,
				SessionDate: sessionDate,
			})
			linkSets = append(linkSets, linkIDs)
			texts = append(texts, window.Text)
			chunkIndex++
		}
	}

	if len(records) == 0 {
		return 0, nil
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(records) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	points := make([]vectorstore.Point, len(records))
	for i, record := range records {
		if err := p.chunkRepo.Insert(ctx, record, linkSets[i]); err != nil {
			return 0, err
		}

		meta := map[string]any{
			"document_id": doc.ID,
			"doc_type":    doc.Type,
			"doc_title":   doc.Title,
			"doc_path":    doc.Path,
			"heading":     record.Heading,
			"chunk_index": record.ChunkIndex,
			"text":        record.Text,
		}
		if sessionNo != nil {
			meta["session_no"] = *sessionNo
		}
		if sessionDate != "" {
			meta["session_date"] = sessionDate
		}

		points[i] = vectorstore.Point{
			ID:   record.ID,
			Vec:  embeddings[i],
			Meta: meta,
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return 0, err
	}

	return len(records), nil
}

// resolveLinks maps the window's wikilink candidates to entity IDs, adding the
// document's own entity when present. Unresolved candidates are omitted; a
// duplicate reference is recorded once.
func (p *Pipeline) resolveLinks(registry *Registry, windowText string, selfLink *EntityRef) []string {
	var linkIDs []string
	seen := make(map[string]struct{})

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		linkIDs = append(linkIDs, id)
	}

	for _, name := range ExtractWikilinks(windowText) {
		if ref, ok := registry.Resolve(name); ok {
			add(ref.ID)
		}
	}
	if selfLink != nil {
		add(selfLink.ID)
	}

	return linkIDs
}

func entityKindForDocType(docType string) string {
	switch docType {
	case storage.DocTypeCharacter:
		return storage.EntityKindCharacter
	case storage.DocTypeLocation:
		return storage.EntityKindLocation
	case storage.DocTypeOrganization:
		return storage.EntityKindOrganization
	default:
		return ""
	}
}
