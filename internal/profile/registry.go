// Package profile holds the content profiles that parameterize every
// checkpoint. The registry is built once and only read afterwards.
package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/score"
	"gopkg.in/yaml.v3"
)

// Registry maps profile ids to profiles.
type Registry struct {
	profiles map[string]*model.ContentProfile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*model.ContentProfile)}
	for _, p := range []*model.ContentProfile{shortForm(), deepDive()} {
		r.profiles[p.ID] = p
	}
	return r
}

// Get looks up a profile by id.
func (r *Registry) Get(id string) (*model.ContentProfile, error) {
	p, ok := r.profiles[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", model.ErrUnknownProfile, id, strings.Join(r.IDs(), ", "))
	}
	return p, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns the registered profiles sorted by id.
func (r *Registry) All() []*model.ContentProfile {
	out := make([]*model.ContentProfile, 0, len(r.profiles))
	for _, id := range r.IDs() {
		out = append(out, r.profiles[id])
	}
	return out
}

type profileFile struct {
	Profiles []*model.ContentProfile `yaml:"profiles"`
}

// LoadFile reads extra profiles from a YAML file. Profiles with a built-in
// id replace it. Every profile is validated before any is registered.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	return r.Load(data)
}

// Load registers profiles from YAML bytes.
func (r *Registry) Load(data []byte) error {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return model.NewConfigurationError("profiles", "parse: %v", err)
	}
	for _, p := range file.Profiles {
		if p == nil {
			return model.NewConfigurationError("profiles", "empty profile entry")
		}
		p.ID = strings.ToLower(strings.TrimSpace(p.ID))
		if err := Validate(p); err != nil {
			return err
		}
	}
	for _, p := range file.Profiles {
		r.profiles[p.ID] = p
	}
	return nil
}

// Validate checks a profile for internal consistency.
func Validate(p *model.ContentProfile) error {
	field := func(name string) string { return p.ID + "." + name }

	if p.ID == "" {
		return model.NewConfigurationError("id", "profile id is required")
	}
	if p.TranscriptRecommended.Chars < p.TranscriptMinimum.Chars ||
		p.TranscriptRecommended.Words < p.TranscriptMinimum.Words ||
		p.TranscriptRecommended.Segments < p.TranscriptMinimum.Segments {
		return model.NewConfigurationError(field("transcript_recommended"), "must be at least the hard minimum")
	}
	if len(p.Sections) == 0 {
		return model.NewConfigurationError(field("sections"), "at least one required section")
	}
	for _, s := range p.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return model.NewConfigurationError(field("sections"), "section without a name")
		}
		if s.Target.Max != 0 && s.Target.Max < s.Target.Min {
			return model.NewConfigurationError(field("sections."+s.Name), "target max %d below min %d", s.Target.Max, s.Target.Min)
		}
		if s.Floor < 0 || s.Floor > s.Target.Min {
			return model.NewConfigurationError(field("sections."+s.Name), "floor %d must lie in [0, %d]", s.Floor, s.Target.Min)
		}
	}
	if p.TotalWords.Max != 0 && p.TotalWords.Max < p.TotalWords.Min {
		return model.NewConfigurationError(field("total_words"), "max below min")
	}
	f := p.Fabrication
	if f.SimilarityThreshold <= 0 || f.SimilarityThreshold > 1 {
		return model.NewConfigurationError(field("fabrication.similarity_threshold"), "%v outside (0,1]", f.SimilarityThreshold)
	}
	if f.AdjacencyWindow < 0 || f.ContextWords < 0 || f.MinQuoteLength < 0 {
		return model.NewConfigurationError(field("fabrication"), "windows and min_quote_length must not be negative")
	}
	e := p.Entity
	if e.LowConfidence < 0 || e.HighConfidence > 1 || e.LowConfidence > e.HighConfidence {
		return model.NewConfigurationError(field("entity"), "want 0 <= low_confidence <= high_confidence <= 1")
	}
	if e.SameEntityThreshold <= 0 || e.SameEntityThreshold > 1 || e.SourcedMentionThreshold <= 0 || e.SourcedMentionThreshold > 1 {
		return model.NewConfigurationError(field("entity"), "thresholds must lie in (0,1]")
	}
	if err := score.CheckWeights(p.Depth.Weights, p.Depth.Pass, p.Depth.Warn); err != nil {
		return fmt.Errorf("%s.depth: %w", p.ID, err)
	}
	if len(p.Depth.ArchitecturalSections) == 0 || len(p.Depth.ProceduralSections) == 0 {
		return model.NewConfigurationError(field("depth"), "architectural_sections and procedural_sections are required")
	}
	if p.Depth.MinDomainReferences < 1 || p.Depth.ProceduralWords < 1 {
		return model.NewConfigurationError(field("depth"), "min_domain_references and procedural_words must be positive")
	}
	if p.Depth.DomainReferenceFloor < 0 || p.Depth.DomainReferenceFloor > p.Depth.MinDomainReferences {
		return model.NewConfigurationError(field("depth.domain_reference_floor"), "%d must lie in [0, %d]", p.Depth.DomainReferenceFloor, p.Depth.MinDomainReferences)
	}
	for _, name := range SubScores {
		if _, ok := p.Depth.Weights[name]; !ok {
			return model.NewConfigurationError(field("depth.weights"), "missing %s", name)
		}
	}
	if len(p.Depth.Weights) != len(SubScores) {
		return model.NewConfigurationError(field("depth.weights"), "unknown dimension; want %s", strings.Join(SubScores, ", "))
	}
	return nil
}
