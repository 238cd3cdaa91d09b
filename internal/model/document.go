package model

import "strings"

// Section is one named block of a candidate document.
type Section struct {
	Name string `json:"name" yaml:"name" validate:"nonblank"`
	Body string `json:"body" yaml:"body"`
}

// Words returns the section word count.
func (s Section) Words() int {
	return WordCount(s.Body)
}

// MetricEvidence is a metric the author attached together with the
// transcript quote that supports it.
type MetricEvidence struct {
	Value   string `json:"value" yaml:"value" validate:"nonblank"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
	Quote   string `json:"transcript_quote,omitempty" yaml:"transcript_quote,omitempty"`
}

// CandidateDocument is a generated draft awaiting validation.
// Sections keep document order.
type CandidateDocument struct {
	Subject  string           `json:"subject" yaml:"subject"`
	Profile  string           `json:"profile" yaml:"profile"`
	Sections []Section        `json:"sections" yaml:"sections" validate:"required,dive"`
	Metrics  []MetricEvidence `json:"metrics,omitempty" yaml:"metrics,omitempty" validate:"dive"`
	Markdown string           `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// Section looks a section up by name, ignoring case and separators.
func (d *CandidateDocument) Section(name string) (Section, bool) {
	want := NormalizeSectionName(name)
	for _, s := range d.Sections {
		if NormalizeSectionName(s.Name) == want {
			return s, true
		}
	}
	return Section{}, false
}

// TotalWords is the word count across all sections.
func (d *CandidateDocument) TotalWords() int {
	total := 0
	for _, s := range d.Sections {
		total += s.Words()
	}
	return total
}

// NormalizeSectionName folds "Executive Summary", "executive_summary" and
// "executive-summary" to the same key.
func NormalizeSectionName(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
