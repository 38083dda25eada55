// Package document describes files handed to a processor and the result a
// processor reports back.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ainaplanass/exam/capability"
)

// ErrEmptyFilename is returned by New for a blank filename. It is reported
// together with capability.ErrConstruction.
var ErrEmptyFilename = errors.New("document: filename cannot be empty")

// Document is a named file with its size, declared type and free-form
// metadata.
type Document struct {
	Filename  string
	Extension string
	Size      int64
	Type      string
	Metadata  map[string]any
}

// New creates a Document. The extension is derived from filename.
func New(filename string, size int64, docType string, metadata map[string]any) (*Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: %w", ErrEmptyFilename, capability.ErrConstruction)
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &Document{
		Filename:  filename,
		Extension: Extension(filename),
		Size:      size,
		Type:      docType,
		Metadata:  metadata,
	}, nil
}

// Extension returns the lowercased text after the last dot of the base name,
// or "" when the name has no dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Result starts a Result for d, seeding its data with the document's type,
// name and extension.
func (d *Document) Result(success bool) *Result {
	r := NewResult(success)
	r.Data["documentType"] = d.Type
	r.Data["filename"] = d.Filename
	r.Data["extension"] = d.Extension
	return r
}
