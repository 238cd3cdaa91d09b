package artifact

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultConfidence is used when a bundle does not declare one.
const DefaultConfidence = 1.0

// Bundle names the artifacts of one run. Paths are relative to the bundle
// file until Resolve is called.
type Bundle struct {
	Transcript string   `yaml:"transcript" json:"transcript"`
	Document   string   `yaml:"document" json:"document"`
	Markdown   string   `yaml:"markdown,omitempty" json:"markdown,omitempty"` // Rendered body for format checks
	Subject    string   `yaml:"subject,omitempty" json:"subject,omitempty"`
	Confidence *float64 `yaml:"confidence,omitempty" json:"confidence,omitempty"`
	Profile    string   `yaml:"profile,omitempty" json:"profile,omitempty"`
}

// LoadBundle reads a bundle file and resolves its paths.
func LoadBundle(path string) (*Bundle, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	if b.Transcript == "" {
		return nil, model.NewContractViolation(loadCheckpoint, "bundle %s names no transcript", path)
	}
	if b.Document == "" {
		return nil, model.NewContractViolation(loadCheckpoint, "bundle %s names no document", path)
	}
	b.Resolve(filepath.Dir(path))
	return &b, nil
}

// Resolve makes relative paths absolute against dir.
func (b *Bundle) Resolve(dir string) {
	b.Transcript = resolve(dir, b.Transcript)
	b.Document = resolve(dir, b.Document)
	b.Markdown = resolve(dir, b.Markdown)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Load reads every artifact the bundle names. The subject and profile fall
// back to the values declared in the document.
func (b *Bundle) Load(docs *Registry) (*model.Submission, error) {
	transcript, tBytes, err := LoadTranscript(b.Transcript)
	if err != nil {
		return nil, err
	}
	doc, dBytes, err := docs.LoadDocument(b.Document)
	if err != nil {
		return nil, err
	}
	if b.Markdown != "" {
		md, err := ReadFile(b.Markdown)
		if err != nil {
			return nil, err
		}
		doc.Markdown = string(md)
		dBytes = append(dBytes, md...)
	}

	sub := &model.Submission{
		Profile:         firstNonBlank(b.Profile, doc.Profile),
		Subject:         firstNonBlank(b.Subject, doc.Subject),
		Confidence:      DefaultConfidence,
		Transcript:      transcript,
		Document:        doc,
		TranscriptBytes: tBytes,
		DocumentBytes:   dBytes,
	}
	if b.Confidence != nil {
		sub.Confidence = *b.Confidence
	}
	return sub, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
