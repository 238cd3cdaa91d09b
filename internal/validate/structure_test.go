package validate

import (
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkStructure(t *testing.T, profileID string, doc *model.CandidateDocument) model.Verdict {
	t.Helper()
	v, err := NewStructuralCompleteness().Check(&Input{Profile: mustProfile(t, profileID), Document: doc})
	require.NoError(t, err)
	return v
}

func TestStructuralCompleteness_Pass(t *testing.T) {
	v := checkStructure(t, profile.ShortForm, shortFormDocument("Intuit"))
	assert.Equal(t, model.SeverityPass, v.Severity)
	assert.Contains(t, v.Messages[0], "all 5 required sections present")
}

func TestStructuralCompleteness_SectionNamesMatchLoosely(t *testing.T) {
	doc := shortFormDocument("Intuit")
	doc.Sections[0].Name = "overview"
	doc.Sections[3].Name = " IMPACT "
	assert.Equal(t, model.SeverityPass, checkStructure(t, profile.ShortForm, doc).Severity)
}

func TestStructuralCompleteness_Sections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.CandidateDocument)
		want     model.Severity
		contains string
	}{
		{
			name:     "missing section",
			mutate:   func(d *model.CandidateDocument) { d.Sections = append(d.Sections[:3], d.Sections[4]) },
			want:     model.SeverityCritical,
			contains: `required section "Impact" is missing`,
		},
		{
			name:     "empty section",
			mutate:   func(d *model.CandidateDocument) { d.Sections[4].Body = "   " },
			want:     model.SeverityCritical,
			contains: `"Conclusion" is empty`,
		},
		{
			name:     "below floor",
			mutate:   func(d *model.CandidateDocument) { d.Sections[2].Body = filler(30) },
			want:     model.SeverityCritical,
			contains: "below the absolute minimum of 60",
		},
		{
			name:     "outside target",
			mutate:   func(d *model.CandidateDocument) { d.Sections[2].Body = filler(100) },
			want:     model.SeverityWarning,
			contains: "outside the target range 150-600",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := shortFormDocument("Intuit")
			tt.mutate(doc)
			v := checkStructure(t, profile.ShortForm, doc)
			assert.Equal(t, tt.want, v.Severity)
			require.NotEmpty(t, v.Messages)
			assert.Contains(t, v.Messages[0], tt.contains)
		})
	}
}

func deepDiveDocument(words func(rule model.SectionRule) int, p *model.ContentProfile) *model.CandidateDocument {
	doc := &model.CandidateDocument{Subject: "Intuit", Profile: profile.DeepDive}
	for _, rule := range p.Sections {
		doc.Sections = append(doc.Sections, model.Section{Name: rule.Name, Body: filler(words(rule))})
	}
	return doc
}

func TestStructuralCompleteness_TotalWords(t *testing.T) {
	p := mustProfile(t, profile.DeepDive)

	// All sections at their target maximum: 6300 words.
	long := deepDiveDocument(func(r model.SectionRule) int { return r.Target.Max }, p)
	v := checkStructure(t, profile.DeepDive, long)
	assert.Equal(t, model.SeverityCritical, v.Severity)
	assert.Contains(t, v.Messages[0], "outside the acceptable range 2000-5000")

	// All sections at their target minimum plus 300 words: 2200 words.
	short := deepDiveDocument(func(r model.SectionRule) int {
		if r.Name == "background" {
			return r.Target.Min + 300
		}
		return r.Target.Min
	}, p)
	v = checkStructure(t, profile.DeepDive, short)
	assert.Equal(t, model.SeverityWarning, v.Severity)
	assert.Contains(t, v.Messages[0], "outside the target range 2500-4500")
}

func TestStructuralCompleteness_NoSections(t *testing.T) {
	_, err := NewStructuralCompleteness().Check(&Input{
		Profile:  mustProfile(t, profile.ShortForm),
		Document: &model.CandidateDocument{Subject: "Intuit"},
	})
	assert.True(t, model.IsContractViolation(err))
}

func TestStructuralCompleteness_Idempotent(t *testing.T) {
	doc := shortFormDocument("Intuit")
	doc.Sections = doc.Sections[:3]
	doc.Sections[1].Body = filler(30)

	first := checkStructure(t, profile.ShortForm, doc)
	second := checkStructure(t, profile.ShortForm, doc)
	assert.Equal(t, first, second)
	assert.Equal(t, model.SeverityCritical, first.Severity)
}
