package corpus

import (
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Empty(t *testing.T) {
	ix := Build("")
	assert.True(t, ix.Empty())
	assert.Equal(t, "", ix.Text())

	_, ok := ix.ContainsPhrase("anything", 0.1)
	assert.False(t, ok)
}

func TestBuild_NormalizesText(t *testing.T) {
	ix := Build("We  Moved\nto Kubernetes.  It went well.")
	assert.Equal(t, "we moved to kubernetes. it went well.", ix.Text())
	assert.Equal(t, 2, ix.Len())
}

func TestContainsPhrase(t *testing.T) {
	ix := Build("Welcome to the talk. After the migration we cut deployment time by fifty percent. Thanks for coming.")

	m, ok := ix.ContainsPhrase("we cut deployment time by 50%", 0.8)
	require.True(t, ok)
	assert.Contains(t, m.Segment, "deployment time")

	_, ok = ix.ContainsPhrase("we achieved 10x throughput", 0.75)
	assert.False(t, ok)
}

func TestBuild_ChunksUnpunctuatedCaptions(t *testing.T) {
	words := make([]string, 0, 200)
	for i := 0; i < 50; i++ {
		words = append(words, "so", "we", "run", "clusters")
	}
	ix := Build(strings.Join(words, " "))
	assert.Greater(t, ix.Len(), 1)
	for i := 0; i < ix.Len(); i++ {
		assert.LessOrEqual(t, len(ix.Segment(i).Tokens), chunkWords)
	}
}

func TestBuildTranscript_SegmentGroups(t *testing.T) {
	tr := &model.SourceTranscript{
		Segments: []model.Segment{
			{Text: "we cut deployment", Start: 0, Duration: 2},
			{Text: "time by fifty", Start: 2, Duration: 2},
			{Text: "percent overall", Start: 4, Duration: 2},
		},
	}
	ix := BuildTranscript(tr)

	_, ok := ix.ContainsPhrase("cut deployment time by fifty percent", 0.9)
	assert.True(t, ok)
}

func TestBuildTranscript_Nil(t *testing.T) {
	assert.True(t, BuildTranscript(nil).Empty())
}

func TestContainsExact(t *testing.T) {
	ix := Build("Our platform team runs Goldman Sachs workloads on five hundred nodes.")
	assert.True(t, ix.ContainsExact("500 nodes"))
	assert.True(t, ix.ContainsExact("goldman sachs"))
	assert.False(t, ix.ContainsExact("sachs workloads on 400"))
	assert.False(t, ix.ContainsExact(""))
}

func TestIndex_ConcurrentReads(t *testing.T) {
	ix := Build("Latency dropped from three hundred to forty milliseconds. Costs went down.")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := ix.ContainsPhrase("latency dropped", 0.8)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
