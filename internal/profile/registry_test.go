package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsAreValid(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{DeepDive, ShortForm}, r.IDs())
	for _, p := range r.All() {
		assert.NoError(t, Validate(p), p.ID)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get(" Deep-Dive ")
	require.NoError(t, err)
	assert.True(t, p.Fabrication.RequireQuotes)

	_, err = r.Get("press-release")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownProfile))
}

const extraProfiles = `
profiles:
  - id: Blog-Post
    transcript_minimum: {chars: 500, segments: 10, words: 80}
    transcript_recommended: {chars: 2000, segments: 40, words: 300}
    sections:
      - {name: Intro, target: {min: 50, max: 200}, floor: 10}
      - {name: Body, target: {min: 200, max: 900}, floor: 100}
    total_words: {min: 300, max: 1200}
    fabrication: {similarity_threshold: 0.8, require_quotes: false, adjacency_window: 6, context_words: 3}
    entity: {low_confidence: 0.4, high_confidence: 0.6, same_entity_threshold: 0.7, sourced_mention_threshold: 0.85}
    depth:
      weights:
        domain_reference_depth: 0.2
        specificity: 0.2
        implementation_detail: 0.2
        claim_quality: 0.2
        structural_completeness: 0.2
      pass: 0.6
      warn: 0.4
      min_domain_references: 1
      architectural_sections: [Body]
      procedural_sections: [Body]
      procedural_words: 200
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(extraProfiles), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	p, err := r.Get("blog-post")
	require.NoError(t, err)
	assert.Len(t, p.Sections, 2)
	assert.Equal(t, 0.8, p.Fabrication.SimilarityThreshold)
	assert.Len(t, r.IDs(), 3)
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	bad := `
profiles:
  - id: broken
    sections: [{name: A, target: {min: 10}, floor: 5}]
    fabrication: {similarity_threshold: 0.8}
    entity: {low_confidence: 0.5, high_confidence: 0.7, same_entity_threshold: 0.7, sourced_mention_threshold: 0.85}
    depth:
      weights: {domain_reference_depth: 0.5, specificity: 0.5, implementation_detail: 0.5, claim_quality: 0.5, structural_completeness: 0.5}
      pass: 0.7
      warn: 0.6
      min_domain_references: 1
      procedural_words: 10
`
	r := NewRegistry()
	err := r.Load([]byte(bad))
	require.Error(t, err)
	assert.True(t, model.IsConfigurationError(err))
	_, err = r.Get("broken")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.ContentProfile)
	}{
		{"missing id", func(p *model.ContentProfile) { p.ID = "" }},
		{"recommended below minimum", func(p *model.ContentProfile) { p.TranscriptRecommended.Chars = 10 }},
		{"no sections", func(p *model.ContentProfile) { p.Sections = nil }},
		{"inverted target", func(p *model.ContentProfile) { p.Sections[0].Target = model.Range{Min: 100, Max: 50} }},
		{"floor above target", func(p *model.ContentProfile) { p.Sections[0].Floor = 1000 }},
		{"threshold zero", func(p *model.ContentProfile) { p.Fabrication.SimilarityThreshold = 0 }},
		{"confidence inverted", func(p *model.ContentProfile) { p.Entity.LowConfidence = 0.9 }},
		{"negative quote length", func(p *model.ContentProfile) { p.Fabrication.MinQuoteLength = -1 }},
		{"reference floor above minimum", func(p *model.ContentProfile) { p.Depth.DomainReferenceFloor = p.Depth.MinDomainReferences + 1 }},
		{"unknown dimension", func(p *model.ContentProfile) {
			p.Depth.Weights = map[string]float64{"a": 0.5, "b": 0.5}
		}},
		{"warn above pass", func(p *model.ContentProfile) { p.Depth.Warn = 0.9 }},
		{"zero domain minimum", func(p *model.ContentProfile) { p.Depth.MinDomainReferences = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := shortForm()
			tt.mutate(p)
			err := Validate(p)
			require.Error(t, err)
			assert.True(t, model.IsConfigurationError(err), "got %v", err)
		})
	}
}
