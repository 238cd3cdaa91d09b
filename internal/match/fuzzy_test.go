package match

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity_Identity(t *testing.T) {
	inputs := []string{
		"we cut deployment time by fifty percent",
		"Kubernetes",
		"!!!",
		"a",
		"50%",
	}
	for _, in := range inputs {
		assert.Equal(t, 1.0, Similarity(in, in), "input %q", in)
	}
}

func TestSimilarity_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("kubernetes", "xyz"))
	assert.Equal(t, 0.0, Similarity("", "anything"))
	assert.Equal(t, 0.0, Similarity("", ""))
}

func TestSimilarity_NumericParaphrase(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("50%", "fifty percent"))
	assert.Equal(t, 1.0, Similarity("$2,000", "two thousand dollars"))
}

func TestSimilarity_ContainedQuote(t *testing.T) {
	quote := "we cut deployment time by fifty percent"
	segment := "so after the migration we cut deployment time by fifty percent which was huge for the team"
	s := Similarity(quote, segment)
	assert.GreaterOrEqual(t, s, 0.85)
	assert.LessOrEqual(t, s, 1.0)
}

func TestSimilarity_UnrelatedQuoteScoresLow(t *testing.T) {
	quote := "we achieved 10x throughput"
	segment := "our developers now ship features every week with much more confidence"
	assert.Less(t, Similarity(quote, segment), 0.3)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "latency dropped from 300ms to 40ms"
	b := "the p99 latency dropped from three hundred to forty milliseconds"
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
}

func TestSimilarity_Bounds(t *testing.T) {
	words := []string{"cluster", "node", "fifty", "percent", "50%", "the", "we", "x", "latency", "cost", "$10", "ten"}
	r := rand.New(rand.NewSource(7))
	phrase := func() string {
		n := 1 + r.Intn(6)
		out := ""
		for i := 0; i < n; i++ {
			out += words[r.Intn(len(words))] + " "
		}
		return out
	}
	for i := 0; i < 500; i++ {
		s := Similarity(phrase(), phrase())
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
}

func TestBestMatch(t *testing.T) {
	segments := []string{
		"welcome everyone to the talk",
		"we moved all services to kubernetes last year",
		"and we cut deployment time by fifty percent",
	}

	m, ok := BestMatch("deployment time dropped 50%", segments, 0.5)
	require.True(t, ok)
	assert.Equal(t, 2, m.Index)
	assert.Equal(t, segments[2], m.Segment)

	_, ok = BestMatch("we achieved 10x throughput", segments, 0.75)
	assert.False(t, ok)
}

func TestBestMatch_NoSegments(t *testing.T) {
	m, ok := BestMatch("anything", nil, 0.1)
	assert.False(t, ok)
	assert.Equal(t, -1, m.Index)
}

func TestBestMatch_TieKeepsFirst(t *testing.T) {
	segments := []string{"fifty percent", "50%"}
	m, ok := BestMatch("50 percent", segments, 0.9)
	require.True(t, ok)
	assert.Equal(t, 0, m.Index)
}

func TestAlign(t *testing.T) {
	seg := Prepare("so after the migration we cut deployment time by fifty percent which was huge")
	span := Align(Prepare("cut deployment time"), seg)
	assert.Equal(t, []string{"cut", "deployment", "time"}, seg.Tokens[span.Start:span.End])
}

func TestEditRatio(t *testing.T) {
	assert.Equal(t, 1.0, editRatio("node", "node"))
	assert.Equal(t, 0.0, editRatio("", ""))
	assert.Equal(t, 0.0, editRatio("", "abc"))
	assert.InDelta(t, 1-3.0/7.0, editRatio("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.75, editRatio("nöde", "node"), 1e-9)
}

func TestCover_ShortSegmentDoesNotCoverLongNeedle(t *testing.T) {
	needle := Prepare("we achieved 10x throughput on kubernetes after migrating every service")
	seg := Prepare("kubernetes.")

	assert.Equal(t, 1.0, containment(needle, seg))
	assert.Less(t, Cover(needle, seg), 0.3)
}

func TestCover_ContainedNeedle(t *testing.T) {
	needle := Prepare("we cut deployment time by fifty percent")
	seg := Prepare("so after the migration we cut deployment time by fifty percent which was huge")
	assert.InDelta(t, 1.0, Cover(needle, seg), 1e-9)
	assert.Equal(t, 1.0, Cover(needle, needle))
	assert.Equal(t, 0.0, Cover(Prepare(""), seg))
}

func TestBestMatch_IgnoresOneWordSegments(t *testing.T) {
	segments := []string{"so what do we use?", "kubernetes.", "that is the whole talk, thanks everyone."}
	m, ok := BestMatch("we achieved 10x throughput on kubernetes after migrating every service", segments, 0.75)
	assert.False(t, ok)
	assert.Less(t, m.Score, 0.75)
}
