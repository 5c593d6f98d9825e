package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile is a markdown file found in a corpus directory.
type ScannedFile struct {
	Name    string // Filename without extension (document title / entity name)
	RelPath string // Filename relative to the corpus directory
	AbsPath string // Absolute file path
}

// ListMarkdown returns the markdown files directly under dir, sorted by filename.
// A missing directory yields an empty slice, not an error: the entity corpora
// are optional.
func ListMarkdown(ctx context.Context, dir string) ([]ScannedFile, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	var files []ScannedFile
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}

		files = append(files, ScannedFile{
			Name:    strings.TrimSuffix(name, filepath.Ext(name)),
			RelPath: name,
			AbsPath: filepath.Join(dir, name),
		})
	}

	// Stable processing order across scans.
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	return files, nil
}
