// Package corpus indexes a source transcript for approximate phrase lookup.
package corpus

import (
	"strings"

	"github.com/ppiankov/draftcheck/internal/match"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/prose"
)

const (
	chunkWords   = 40
	chunkStride  = 20
	segmentGroup = 3
)

// Index is an immutable, normalized view of a transcript. It is safe for
// concurrent reads.
type Index struct {
	text     string
	segments []match.Phrase
}

// Build indexes free text. An empty string yields an empty index.
func Build(text string) *Index {
	ix := &Index{text: strings.Join(strings.Fields(strings.ToLower(text)), " ")}
	ix.addSentences(text)
	return ix
}

// BuildTranscript indexes the transcript text plus sliding groups of
// consecutive timed segments, so quotes that straddle caption boundaries
// are still found.
func BuildTranscript(t *model.SourceTranscript) *Index {
	if t == nil {
		return Build("")
	}
	ix := Build(t.Text)
	for i := range t.Segments {
		end := min(i+segmentGroup, len(t.Segments))
		parts := make([]string, 0, end-i)
		for _, s := range t.Segments[i:end] {
			parts = append(parts, strings.TrimSpace(s.Text))
		}
		ix.add(strings.Join(parts, " "))
		if end == len(t.Segments) {
			break
		}
	}
	return ix
}

func (ix *Index) addSentences(text string) {
	for _, sentence := range prose.Sentences(text) {
		// Auto-generated captions rarely carry punctuation; long runs are
		// cut into overlapping chunks so containment stays meaningful.
		for _, chunk := range prose.Chunks(strings.Fields(sentence), chunkWords, chunkStride) {
			ix.add(strings.Join(chunk, " "))
		}
	}
}

func (ix *Index) add(s string) {
	p := match.Prepare(strings.ToLower(s))
	if !p.Empty() {
		ix.segments = append(ix.segments, p)
	}
}

// Text returns the lower-cased, whitespace-normalized full text.
func (ix *Index) Text() string {
	return ix.text
}

// Len is the number of searchable segments.
func (ix *Index) Len() int {
	return len(ix.segments)
}

// Empty reports whether nothing can be matched against the index.
func (ix *Index) Empty() bool {
	return len(ix.segments) == 0
}

// Segment returns the prepared segment at i.
func (ix *Index) Segment(i int) match.Phrase {
	return ix.segments[i]
}

// ContainsPhrase reports whether phrase appears in the corpus with at least
// minSimilarity, returning the best match either way.
func (ix *Index) ContainsPhrase(phrase string, minSimilarity float64) (match.Match, bool) {
	return match.BestPrepared(match.Prepare(phrase), ix.segments, minSimilarity)
}

// ContainsExact reports whether the normalized phrase occurs verbatim.
func (ix *Index) ContainsExact(phrase string) bool {
	needle := match.Normalize(phrase)
	if needle == "" {
		return false
	}
	for _, seg := range ix.segments {
		if strings.Contains(" "+seg.Norm+" ", " "+needle+" ") {
			return true
		}
	}
	return false
}
