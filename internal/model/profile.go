package model

import "fmt"

// Range is an inclusive word-count range. A zero Max means unbounded.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

// Contains reports whether n lies inside the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && (r.Max == 0 || n <= r.Max)
}

func (r Range) String() string {
	if r.Max == 0 {
		return fmt.Sprintf("at least %d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// TranscriptLimits bounds the size of a usable transcript.
type TranscriptLimits struct {
	Chars    int `json:"chars" yaml:"chars"`
	Segments int `json:"segments" yaml:"segments"`
	Words    int `json:"words" yaml:"words"`
}

// SectionRule describes one required section.
type SectionRule struct {
	Name   string `json:"name" yaml:"name"`
	Target Range  `json:"target" yaml:"target"`
	Floor  int    `json:"floor" yaml:"floor"` // Absolute minimum; below it the draft is unusable
}

// FabricationParams tune claim tracing.
type FabricationParams struct {
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	RequireQuotes       bool    `json:"require_quotes" yaml:"require_quotes"`
	AdjacencyWindow     int     `json:"adjacency_window" yaml:"adjacency_window"` // Tokens either side of the aligned quote
	ContextWords        int     `json:"context_words" yaml:"context_words"`       // Words either side of the value in evidence phrases
	MinQuoteLength      int     `json:"min_quote_length" yaml:"min_quote_length"` // Characters; shorter quotes count as unsourced. 0 disables
}

// EntityParams tune the subject consistency scan.
type EntityParams struct {
	LowConfidence           float64  `json:"low_confidence" yaml:"low_confidence"`
	HighConfidence          float64  `json:"high_confidence" yaml:"high_confidence"`
	SameEntityThreshold     float64  `json:"same_entity_threshold" yaml:"same_entity_threshold"`
	SourcedMentionThreshold float64  `json:"sourced_mention_threshold" yaml:"sourced_mention_threshold"`
	IgnoreMentions          []string `json:"ignore_mentions,omitempty" yaml:"ignore_mentions,omitempty"`
}

// DepthParams configure the technical depth score.
type DepthParams struct {
	Weights               map[string]float64 `json:"weights" yaml:"weights"`
	Pass                  float64            `json:"pass" yaml:"pass"`
	Warn                  float64            `json:"warn" yaml:"warn"`
	MinDomainReferences   int                `json:"min_domain_references" yaml:"min_domain_references"`
	DomainReferenceFloor  int                `json:"domain_reference_floor" yaml:"domain_reference_floor"` // Fewer references is Critical; fewer than min_domain_references is a Warning
	ArchitecturalSections []string           `json:"architectural_sections" yaml:"architectural_sections"`
	ProceduralSections    []string           `json:"procedural_sections" yaml:"procedural_sections"`
	ProceduralWords       int                `json:"procedural_words" yaml:"procedural_words"`
}

// FormatParams configure rendered Markdown checks.
type FormatParams struct {
	ForbiddenImagePrefixes []string `json:"forbidden_image_prefixes,omitempty" yaml:"forbidden_image_prefixes,omitempty"`
	ScreenshotDir          string   `json:"screenshot_dir,omitempty" yaml:"screenshot_dir,omitempty"`
}

// ContentProfile is a named bundle of thresholds for one document kind.
// Profiles are loaded once and never mutated.
type ContentProfile struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	TranscriptMinimum     TranscriptLimits `json:"transcript_minimum" yaml:"transcript_minimum"`
	TranscriptRecommended TranscriptLimits `json:"transcript_recommended" yaml:"transcript_recommended"`

	Sections           []SectionRule `json:"sections" yaml:"sections"`
	TotalWords         Range         `json:"total_words" yaml:"total_words"`
	TotalWordsAbsolute Range         `json:"total_words_absolute,omitempty" yaml:"total_words_absolute,omitempty"`

	Fabrication FabricationParams `json:"fabrication" yaml:"fabrication"`
	Entity      EntityParams      `json:"entity" yaml:"entity"`
	Depth       DepthParams       `json:"depth" yaml:"depth"`
	Format      FormatParams      `json:"format" yaml:"format"`
}

// Rule returns the section rule with the given name.
func (p *ContentProfile) Rule(name string) (SectionRule, bool) {
	want := NormalizeSectionName(name)
	for _, r := range p.Sections {
		if NormalizeSectionName(r.Name) == want {
			return r, true
		}
	}
	return SectionRule{}, false
}
