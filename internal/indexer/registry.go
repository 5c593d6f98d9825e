package indexer

import (
	"context"
	"fmt"

	"lorekeeper/internal/corpus"
	"lorekeeper/internal/storage"
)

// EntityRef identifies a resolved entity.
type EntityRef struct {
	Kind string
	ID   string
}

// Registry is an immutable snapshot of name-to-entity bindings, built once
// per scan and passed by reference to every ingestion step. Lookups never
// mutate it, so it is safe to share.
type Registry struct {
	characters    map[string]string
	locations     map[string]string
	organizations map[string]string
}

// BuildRegistry scans the three entity corpus directories and resolves or
// creates one entity per file (name = filename without extension). Missing
// directories contribute empty registries, not errors.
func BuildRegistry(ctx context.Context, entityRepo storage.EntityStore, charactersDir, locationsDir, organizationsDir string) (*Registry, error) {
	r := &Registry{
		characters:    make(map[string]string),
		locations:     make(map[string]string),
		organizations: make(map[string]string),
	}

	dirs := []struct {
		kind string
		dir  string
		dst  map[string]string
	}{
		{storage.EntityKindCharacter, charactersDir, r.characters},
		{storage.EntityKindLocation, locationsDir, r.locations},
		{storage.EntityKindOrganization, organizationsDir, r.organizations},
	}

	for _, d := range dirs {
		files, err := corpus.ListMarkdown(ctx, d.dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s corpus: %w", d.kind, err)
		}
		for _, file := range files {
			if _, ok := d.dst[file.Name]; ok {
				continue
			}
			entity, err := entityRepo.GetOrCreate(ctx, d.kind, file.Name, file.AbsPath)
			if err != nil {
				return nil, fmt.Errorf("failed to register %s %q: %w", d.kind, file.Name, err)
			}
			d.dst[file.Name] = entity.ID
		}
	}

	return r, nil
}

// Resolve looks up a candidate name across the three registries in precedence
// order: characters, then locations, then organizations. A name shared across
// kinds resolves to the first match; ambiguity is not an error.
func (r *Registry) Resolve(name string) (EntityRef, bool) {
	if id, ok := r.characters[name]; ok {
		return EntityRef{Kind: storage.EntityKindCharacter, ID: id}, true
	}
	if id, ok := r.locations[name]; ok {
		return EntityRef{Kind: storage.EntityKindLocation, ID: id}, true
	}
	if id, ok := r.organizations[name]; ok {
		return EntityRef{Kind: storage.EntityKindOrganization, ID: id}, true
	}
	return EntityRef{}, false
}

// ResolveKind looks up a name within a single kind's registry.
func (r *Registry) ResolveKind(kind, name string) (EntityRef, bool) {
	var m map[string]string
	switch kind {
	case storage.EntityKindCharacter:
		m = r.characters
	case storage.EntityKindLocation:
		m = r.locations
	case storage.EntityKindOrganization:
		m = r.organizations
	default:
		return EntityRef{}, false
	}
	if id, ok := m[name]; ok {
		return EntityRef{Kind: kind, ID: id}, true
	}
	return EntityRef{}, false
}

// Size returns the number of registered entities across all kinds.
func (r *Registry) Size() int {
	return len(r.characters) + len(r.locations) + len(r.organizations)
}
