package validate

import (
	"strings"
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/stretchr/testify/require"
)

func mustProfile(t *testing.T, id string) *model.ContentProfile {
	t.Helper()
	p, err := profile.NewRegistry().Get(id)
	require.NoError(t, err)
	return p
}

// filler returns n words.
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

// transcriptOf splits text into the requested number of timed segments.
func transcriptOf(text string, segments int) *model.SourceTranscript {
	words := strings.Fields(text)
	if segments <= 0 || len(words) == 0 {
		return &model.SourceTranscript{Text: text}
	}
	per := (len(words) + segments - 1) / segments
	var segs []model.Segment
	for i := 0; i < len(words); i += per {
		end := min(i+per, len(words))
		segs = append(segs, model.Segment{
			Text:     strings.Join(words[i:end], " "),
			Start:    float64(len(segs)) * 3,
			Duration: 3,
		})
	}
	for len(segs) < segments {
		segs = append(segs, model.Segment{Text: "", Start: float64(len(segs)) * 3, Duration: 1})
	}
	return &model.SourceTranscript{Text: text, Segments: segs}
}

func shortFormDocument(subject string) *model.CandidateDocument {
	return &model.CandidateDocument{
		Subject: subject,
		Profile: profile.ShortForm,
		Sections: []model.Section{
			{Name: "Overview", Body: subject + " runs its platform on Kubernetes. " + filler(95)},
			{Name: "Challenge", Body: filler(200)},
			{Name: "Solution", Body: filler(300)},
			{Name: "Impact", Body: filler(200)},
			{Name: "Conclusion", Body: filler(100)},
		},
	}
}
