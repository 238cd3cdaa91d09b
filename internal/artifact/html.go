package artifact

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"golang.org/x/net/html"
)

// HTMLLoader splits an HTML document into sections at <h2> elements.
// Text before the first <h2> is dropped.
type HTMLLoader struct{}

// NewHTMLLoader creates the loader.
func NewHTMLLoader() *HTMLLoader {
	return &HTMLLoader{}
}

// Name returns the loader name
func (l *HTMLLoader) Name() string { return "html" }

// CanHandle accepts .html and .htm.
func (l *HTMLLoader) CanHandle(path string) bool {
	return hasExt(path, ".html", ".htm")
}

// Load parses data. The subject comes from <meta name="subject"> when set.
func (l *HTMLLoader) Load(data []byte) (*model.CandidateDocument, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &model.CandidateDocument{}
	var current *strings.Builder
	var names []string
	var bodies []*strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			case "meta":
				if attr(n, "name") == "subject" {
					doc.Subject = strings.TrimSpace(attr(n, "content"))
				}
			case "h2":
				names = append(names, visibleText(n))
				current = &strings.Builder{}
				bodies = append(bodies, current)
				return
			}
		}

		if n.Type == html.TextNode && current != nil {
			if text := strings.TrimSpace(n.Data); text != "" {
				current.WriteString(text)
				current.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && current != nil && isBlock(n.Data) {
			current.WriteString("\n")
		}
	}
	walk(root)

	for i, name := range names {
		doc.Sections = append(doc.Sections, model.Section{Name: name, Body: tidy(bodies[i].String())})
	}
	return doc, nil
}

// visibleText collects the text under n, skipping scripts and styles.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "li", "div", "section", "pre", "blockquote", "tr", "h3", "h4", "h5", "h6", "ul", "ol":
		return true
	}
	return false
}

// tidy trims every line and collapses blank-line runs into paragraph breaks.
func tidy(s string) string {
	var paras []string
	var cur []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(cur) > 0 {
				paras = append(paras, strings.Join(cur, " "))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		paras = append(paras, strings.Join(cur, " "))
	}
	return strings.Join(paras, "\n\n")
}
