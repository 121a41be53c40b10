package docloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smartfaq/internal/model"
	"smartfaq/internal/pkg/pdfextract"
)

// LoadDir reads every file in dir with a recognized extension and returns
// (source, full text) pairs. The source identifier is the bare file name.
// Files with no extractable text are skipped; unrecognized extensions are
// ignored. The directory is not walked recursively.
func LoadDir(dir string) ([]model.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir failed: %w", err)
	}

	var docs []model.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)

		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			text, err = pdfextract.ExtractFile(path)
			if err != nil {
				return nil, fmt.Errorf("extract %s failed: %w", name, err)
			}
		case ".txt", ".md":
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s failed: %w", name, err)
			}
			text = string(raw)
		default:
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, model.Document{Source: name, Text: text})
	}
	return docs, nil
}
