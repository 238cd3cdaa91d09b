package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	timestampParamRe = regexp.MustCompile(`[?&#]t=([^&#]*)`)
	timestampRe      = regexp.MustCompile(`[?&#]t=(-?\d+)(?:s|&|#|$)`)
)

// FormatCompliance checks the rendered Markdown for image and screenshot
// conventions: relative image paths, screenshots linked to a video
// timestamp, and non-negative timestamps.
type FormatCompliance struct {
	markdown goldmark.Markdown
}

// NewFormatCompliance creates the checkpoint.
func NewFormatCompliance() *FormatCompliance {
	return &FormatCompliance{markdown: goldmark.New()}
}

// Name returns the checkpoint name.
func (c *FormatCompliance) Name() string { return NameFormat }

// Check walks the Markdown AST. Documents without rendered Markdown pass.
func (c *FormatCompliance) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireDocument(c.Name(), in); err != nil {
		return v, err
	}
	if strings.TrimSpace(in.Document.Markdown) == "" {
		v.Note("no rendered markdown supplied; format checks skipped")
		return v, nil
	}

	params := in.Profile.Format
	source := []byte(in.Document.Markdown)
	doc := c.markdown.Parser().Parse(text.NewReader(source))

	images := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			images++
			c.checkImage(&v, node, params)
		case *ast.Link:
			checkTimestamp(&v, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return v, model.NewContractViolation(c.Name(), "walk markdown: %v", err)
	}

	if v.Severity == model.SeverityPass {
		v.Note("%d images checked", images)
	}
	return v, nil
}

func (c *FormatCompliance) checkImage(v *model.Verdict, img *ast.Image, params model.FormatParams) {
	dest := string(img.Destination)
	if isRemote(dest) {
		return
	}
	for _, prefix := range params.ForbiddenImagePrefixes {
		if strings.HasPrefix(dest, prefix) {
			v.Add(model.SeverityCritical, "image %q uses a repository-rooted path; use a path relative to the document", dest)
			return
		}
	}
	if params.ScreenshotDir == "" || !strings.Contains(dest, params.ScreenshotDir) {
		return
	}
	link, ok := img.Parent().(*ast.Link)
	if !ok {
		v.Add(model.SeverityCritical, "screenshot %q is not linked to a video timestamp", dest)
		return
	}
	if !timestampRe.MatchString(string(link.Destination)) {
		v.Add(model.SeverityCritical, "screenshot %q links to %q, which has no video timestamp", dest, string(link.Destination))
	}
}

func checkTimestamp(v *model.Verdict, dest string) {
	raw := timestampParamRe.FindStringSubmatch(dest)
	if raw == nil {
		return
	}
	m := timestampRe.FindStringSubmatch(dest)
	if m == nil {
		v.Add(model.SeverityCritical, "link %q has an invalid timestamp %q", dest, raw[1])
		return
	}
	if seconds, err := strconv.Atoi(m[1]); err != nil || seconds < 0 {
		v.Add(model.SeverityCritical, "link %q has an invalid timestamp %q", dest, m[1])
	}
}

func isRemote(dest string) bool {
	return strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://")
}
