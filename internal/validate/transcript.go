package validate

import (
	"github.com/ppiankov/draftcheck/internal/model"
)

// TranscriptQuality rejects transcripts too small to ground a document.
type TranscriptQuality struct{}

// NewTranscriptQuality creates the checkpoint.
func NewTranscriptQuality() *TranscriptQuality {
	return &TranscriptQuality{}
}

// Name returns the checkpoint name.
func (c *TranscriptQuality) Name() string { return NameTranscript }

type transcriptMetric struct {
	label       string
	value       int
	minimum     int
	recommended int
}

// Check compares character, segment and word counts to the profile's hard
// and recommended minimums.
func (c *TranscriptQuality) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireTranscript(c.Name(), in); err != nil {
		return v, err
	}

	t, p := in.Transcript, in.Profile
	metrics := []transcriptMetric{
		{"characters", t.CharCount(), p.TranscriptMinimum.Chars, p.TranscriptRecommended.Chars},
		{"segments", t.SegmentCount(), p.TranscriptMinimum.Segments, p.TranscriptRecommended.Segments},
		{"words", t.WordCount(), p.TranscriptMinimum.Words, p.TranscriptRecommended.Words},
	}

	below := 0
	for _, m := range metrics {
		if m.value < m.minimum {
			below++
		}
	}
	if t.CharCount() == 0 || below == len(metrics) {
		v.Add(model.SeverityCritical, "transcript is empty or unusable: %d characters, %d segments, %d words",
			metrics[0].value, metrics[1].value, metrics[2].value)
		return v, nil
	}

	for _, m := range metrics {
		if m.value < m.minimum {
			v.Add(model.SeverityCritical, "transcript has %d %s, below the minimum of %d", m.value, m.label, m.minimum)
		}
	}
	if v.Severity == model.SeverityCritical {
		return v, nil
	}

	for _, m := range metrics {
		if m.value < m.recommended {
			v.Add(model.SeverityWarning, "transcript has %d %s, below the recommended %d", m.value, m.label, m.recommended)
		}
	}
	if v.Severity == model.SeverityPass {
		v.Note("transcript has %d characters, %d segments, %d words", metrics[0].value, metrics[1].value, metrics[2].value)
	}
	return v, nil
}
