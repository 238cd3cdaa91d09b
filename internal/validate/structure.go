package validate

import (
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
)

// StructuralCompleteness checks required sections and word budgets. It never
// looks at the transcript.
type StructuralCompleteness struct{}

// NewStructuralCompleteness creates the checkpoint.
func NewStructuralCompleteness() *StructuralCompleteness {
	return &StructuralCompleteness{}
}

// Name returns the checkpoint name.
func (c *StructuralCompleteness) Name() string { return NameStructure }

// Check reports missing sections and sections below their floor as Critical
// and sections outside their target range as Warning.
func (c *StructuralCompleteness) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireDocument(c.Name(), in); err != nil {
		return v, err
	}

	doc, p := in.Document, in.Profile
	for _, rule := range p.Sections {
		s, ok := doc.Section(rule.Name)
		if !ok {
			v.Add(model.SeverityCritical, "required section %q is missing", rule.Name)
			continue
		}
		if strings.TrimSpace(s.Body) == "" {
			v.Add(model.SeverityCritical, "required section %q is empty", rule.Name)
			continue
		}
		words := s.Words()
		switch {
		case words < rule.Floor:
			v.Add(model.SeverityCritical, "section %q has %d words, below the absolute minimum of %d", rule.Name, words, rule.Floor)
		case !rule.Target.Contains(words):
			v.Add(model.SeverityWarning, "section %q has %d words, outside the target range %s", rule.Name, words, rule.Target)
		}
	}

	total := doc.TotalWords()
	switch {
	case !p.TotalWordsAbsolute.IsZero() && !p.TotalWordsAbsolute.Contains(total):
		v.Add(model.SeverityCritical, "document has %d words, outside the acceptable range %s", total, p.TotalWordsAbsolute)
	case !p.TotalWords.IsZero() && !p.TotalWords.Contains(total):
		v.Add(model.SeverityWarning, "document has %d words, outside the target range %s", total, p.TotalWords)
	}

	if v.Severity == model.SeverityPass {
		v.Note("all %d required sections present; %d words total", len(p.Sections), total)
	}
	return v, nil
}
