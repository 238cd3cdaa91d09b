// Package artifact reads transcripts, candidate documents and run bundles
// from disk.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
)

// maxArtifactBytes caps how much of a single file is read.
const maxArtifactBytes = 32 << 20

// DocumentLoader turns a file format into a CandidateDocument.
type DocumentLoader interface {
	// Name returns the loader name
	Name() string

	// CanHandle reports whether the loader understands path
	CanHandle(path string) bool

	// Load parses raw file content
	Load(data []byte) (*model.CandidateDocument, error)
}

// Registry picks a document loader by file extension.
type Registry struct {
	loaders []DocumentLoader
	generic DocumentLoader
}

// NewRegistry creates a registry with the Markdown and HTML loaders and
// the structured JSON/YAML loader as fallback.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewMarkdownLoader())
	r.Register(NewHTMLLoader())
	r.generic = NewStructuredLoader()
	return r
}

// Register adds a loader ahead of the fallback.
func (r *Registry) Register(l DocumentLoader) {
	r.loaders = append(r.loaders, l)
}

// FindLoader returns the first loader that handles path.
func (r *Registry) FindLoader(path string) DocumentLoader {
	for _, l := range r.loaders {
		if l.CanHandle(path) {
			return l
		}
	}
	return r.generic
}

// LoadDocument reads and parses a candidate document.
func (r *Registry) LoadDocument(path string) (*model.CandidateDocument, []byte, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	loader := r.FindLoader(path)
	doc, err := loader.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s document %s: %w", loader.Name(), path, err)
	}
	return doc, data, nil
}

// ReadFile reads at most maxArtifactBytes of path.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxArtifactBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > maxArtifactBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxArtifactBytes)
	}
	return data, nil
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
