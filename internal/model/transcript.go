package model

import (
	"strings"
	"unicode/utf8"
)

// Segment is one timed caption of a transcript.
type Segment struct {
	Text     string  `json:"text" yaml:"text"`
	Start    float64 `json:"start" yaml:"start" validate:"gte=0"`
	Duration float64 `json:"duration" yaml:"duration" validate:"gte=0"`
}

// SourceTranscript is the ground truth a candidate document is checked against.
type SourceTranscript struct {
	Text            string    `json:"text" yaml:"text"`
	Segments        []Segment `json:"segments,omitempty" yaml:"segments,omitempty" validate:"dive"`
	DurationSeconds float64   `json:"duration,omitempty" yaml:"duration,omitempty" validate:"gte=0"`
}

// NewTranscript builds a transcript. When text is blank the segment texts
// are joined to form it.
func NewTranscript(text string, segments []Segment) *SourceTranscript {
	if strings.TrimSpace(text) == "" && len(segments) > 0 {
		parts := make([]string, 0, len(segments))
		for _, s := range segments {
			if t := strings.TrimSpace(s.Text); t != "" {
				parts = append(parts, t)
			}
		}
		text = strings.Join(parts, " ")
	}
	return &SourceTranscript{Text: text, Segments: segments}
}

// CharCount is the number of characters in the full text.
func (t *SourceTranscript) CharCount() int {
	return utf8.RuneCountInString(t.Text)
}

// WordCount is the number of whitespace-separated words in the full text.
func (t *SourceTranscript) WordCount() int {
	return WordCount(t.Text)
}

// SegmentCount is the number of timed segments.
func (t *SourceTranscript) SegmentCount() int {
	return len(t.Segments)
}

// Duration returns the declared duration, or the end of the last segment.
func (t *SourceTranscript) Duration() float64 {
	if t.DurationSeconds > 0 {
		return t.DurationSeconds
	}
	end := 0.0
	for _, s := range t.Segments {
		if e := s.Start + s.Duration; e > end {
			end = e
		}
	}
	return end
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
