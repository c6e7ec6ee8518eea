// Package artifact persists completed page payloads. The pipeline core only
// sees the Writer interface; serialization format lives here.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kasparro/pagegen/internal/ctxlog"
)

// Writer receives one payload per completed top-level page branch.
type Writer interface {
	Write(ctx context.Context, pageType string, payload any) (string, error)
}

// fileNames maps a page type to its artifact file.
var fileNames = map[string]string{
	"faq":        "faq.json",
	"product":    "product_page.json",
	"comparison": "comparison_page.json",
}

// JSONWriter writes each page as pretty-printed JSON under Dir.
type JSONWriter struct {
	Dir string
}

// NewJSONWriter ensures the output directory exists.
func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &JSONWriter{Dir: dir}, nil
}

// Write serializes the payload and returns the path written.
func (w *JSONWriter) Write(ctx context.Context, pageType string, payload any) (string, error) {
	logger := ctxlog.FromContext(ctx)

	name, ok := fileNames[pageType]
	if !ok {
		return "", fmt.Errorf("unknown page type %q", pageType)
	}
	path := filepath.Join(w.Dir, name)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encoding %s page: %w", pageType, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s page: %w", pageType, err)
	}

	logger.Info("Wrote page artifact.", "page_type", pageType, "path", path)
	return path, nil
}
