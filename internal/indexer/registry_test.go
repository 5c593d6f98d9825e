package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"lorekeeper/internal/storage"
	storage_mocks "lorekeeper/internal/storage/mocks"
)

func writeMarkdown(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestBuildRegistryRegistersAllKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	charsDir := t.TempDir()
	locsDir := t.TempDir()
	writeMarkdown(t, charsDir, "Kaela.md", "A ranger.")
	writeMarkdown(t, locsDir, "Duskhaven.md", "A port city.")

	entityRepo := storage_mocks.NewMockEntityStore(ctrl)
	entityRepo.EXPECT().
		GetOrCreate(gomock.Any(), storage.EntityKindCharacter, "Kaela", gomock.Any()).
		Return(&storage.EntityRecord{ID: "char-1", Kind: storage.EntityKindCharacter, Name: "Kaela"}, nil)
	entityRepo.EXPECT().
		GetOrCreate(gomock.Any(), storage.EntityKindLocation, "Duskhaven", gomock.Any()).
		Return(&storage.EntityRecord{ID: "loc-1", Kind: storage.EntityKindLocation, Name: "Duskhaven"}, nil)

	registry, err := BuildRegistry(context.Background(), entityRepo, charsDir, locsDir, "")
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	if registry.Size() != 2 {
		t.Fatalf("expected 2 entities, got %d", registry.Size())
	}

	ref, ok := registry.Resolve("Kaela")
	if !ok || ref.ID != "char-1" || ref.Kind != storage.EntityKindCharacter {
		t.Errorf("unexpected resolution for Kaela: %+v ok=%v", ref, ok)
	}
	ref, ok = registry.Resolve("Duskhaven")
	if !ok || ref.ID != "loc-1" {
		t.Errorf("unexpected resolution for Duskhaven: %+v ok=%v", ref, ok)
	}
}

func TestBuildRegistryMissingDirsAreEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entityRepo := storage_mocks.NewMockEntityStore(ctrl)

	registry, err := BuildRegistry(context.Background(), entityRepo, "", "/nonexistent/path", "")
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}
	if registry.Size() != 0 {
		t.Fatalf("expected empty registry, got %d entities", registry.Size())
	}
	if _, ok := registry.Resolve("Anyone"); ok {
		t.Error("empty registry should resolve nothing")
	}
}

func TestResolvePrecedenceCharacterWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	charsDir := t.TempDir()
	orgsDir := t.TempDir()
	// Same name registered as both a character and an organization.
	writeMarkdown(t, charsDir, "Raven.md", "A spy.")
	writeMarkdown(t, orgsDir, "Raven.md", "A guild.")

	entityRepo := storage_mocks.NewMockEntityStore(ctrl)
	entityRepo.EXPECT().
		GetOrCreate(gomock.Any(), storage.EntityKindCharacter, "Raven", gomock.Any()).
		Return(&storage.EntityRecord{ID: "char-raven", Kind: storage.EntityKindCharacter, Name: "Raven"}, nil)
	entityRepo.EXPECT().
		GetOrCreate(gomock.Any(), storage.EntityKindOrganization, "Raven", gomock.Any()).
		Return(&storage.EntityRecord{ID: "org-raven", Kind: storage.EntityKindOrganization, Name: "Raven"}, nil)

	registry, err := BuildRegistry(context.Background(), entityRepo, charsDir, "", orgsDir)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	ref, ok := registry.Resolve("Raven")
	if !ok {
		t.Fatal("expected Raven to resolve")
	}
	if ref.ID != "char-raven" {
		t.Errorf("expected character to win precedence, got %+v", ref)
	}

	// The organization is still reachable by kind.
	ref, ok = registry.ResolveKind(storage.EntityKindOrganization, "Raven")
	if !ok || ref.ID != "org-raven" {
		t.Errorf("expected kind-scoped lookup to find the organization, got %+v ok=%v", ref, ok)
	}
}
