package artifact

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// MarkdownLoader splits a Markdown document into sections at level-2
// headings. Optional YAML front matter supplies subject, profile and
// metric evidence.
type MarkdownLoader struct {
	md goldmark.Markdown
}

// NewMarkdownLoader creates the loader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{md: goldmark.New()}
}

// Name returns the loader name
func (l *MarkdownLoader) Name() string { return "markdown" }

// CanHandle accepts .md and .markdown.
func (l *MarkdownLoader) CanHandle(path string) bool {
	return hasExt(path, ".md", ".markdown")
}

type frontMatter struct {
	Subject string                 `yaml:"subject"`
	Profile string                 `yaml:"profile"`
	Metrics []model.MetricEvidence `yaml:"metrics"`
}

// Load parses data. The Markdown body without front matter is kept on the
// document for the format checks.
func (l *MarkdownLoader) Load(data []byte) (*model.CandidateDocument, error) {
	front, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if len(front) > 0 {
		if err := yaml.Unmarshal(front, &fm); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	return &model.CandidateDocument{
		Subject:  fm.Subject,
		Profile:  fm.Profile,
		Sections: l.sections(body),
		Metrics:  fm.Metrics,
		Markdown: string(body),
	}, nil
}

type heading struct {
	name       string
	lineStart  int // offset of the heading line
	contentEnd int // offset just past the heading line
}

func (l *MarkdownLoader) sections(src []byte) []model.Section {
	doc := l.md.Parser().Parse(text.NewReader(src))

	var headings []heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		contentEnd := len(src)
		if i := bytes.IndexByte(src[seg.Stop:], '\n'); i >= 0 {
			contentEnd = seg.Stop + i + 1
		}
		headings = append(headings, heading{
			name:       inlineText(h, src),
			lineStart:  lineStart,
			contentEnd: contentEnd,
		})
	}

	sections := make([]model.Section, 0, len(headings))
	for i, h := range headings {
		end := len(src)
		if i+1 < len(headings) {
			end = headings[i+1].lineStart
		}
		body := ""
		if h.contentEnd < end {
			body = strings.TrimSpace(string(src[h.contentEnd:end]))
		}
		sections = append(sections, model.Section{Name: h.name, Body: body})
	}
	return sections
}

// inlineText concatenates the text segments under n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// splitFrontMatter separates a leading "---" delimited YAML block.
func splitFrontMatter(data []byte) (front, body []byte, err error) {
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, normalized, nil
	}
	rest := normalized[4:]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return nil, rest[4:], nil
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-4], nil, nil
		}
		return nil, nil, fmt.Errorf("front matter is not terminated")
	}
	return rest[:end], rest[end+5:], nil
}
