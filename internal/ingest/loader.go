// ABOUTME: Document loading from filesystem directories
// ABOUTME: Walks for supported text files and attaches source metadata
package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/docrag/internal/models"
)

// supportedExtensions maps file extensions to the file_type metadata value
var supportedExtensions = map[string]string{
	".txt": "txt",
	".md":  "md",
}

// LoadFile loads a single text file as one document
func LoadFile(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	fileType, ok := supportedExtensions[ext]
	if !ok {
		return models.Document{}, fmt.Errorf("unsupported file type %q for %s", ext, path)
	}

	return models.Document{
		Text: string(data),
		Metadata: models.Metadata{
			"source":    path,
			"filename":  filepath.Base(path),
			"file_type": fileType,
		},
	}, nil
}

// LoadDirectory loads all supported files under dir, recursively, in
// lexical path order. Unsupported files are skipped silently.
func LoadDirectory(dir string) ([]models.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var docs []models.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		doc, err := LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return docs, nil
}
