package validate

import (
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedMentions []string

func (f fixedMentions) Extract(string) []string { return f }

func entityInput(t *testing.T, subject string, confidence float64) *Input {
	t.Helper()
	return &Input{
		Profile:    mustProfile(t, profile.ShortForm),
		Transcript: transcriptOf("Intuit moved its tax platform to Kubernetes last year. "+filler(200), 60),
		Document:   shortFormDocument(subject),
		Subject:    subject,
		Confidence: confidence,
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, name := range []string{"Company", "company", " TBD ", "", "X", "n/a"} {
		assert.True(t, IsPlaceholder(name), name)
	}
	for _, name := range []string{"Intuit", "Goldman Sachs", "HP"} {
		assert.False(t, IsPlaceholder(name), name)
	}
}

func TestEntityConsistency_Placeholder(t *testing.T) {
	v, err := NewEntityConsistency(nil).Check(entityInput(t, "Company", 0.95))
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)
	require.Len(t, v.Messages, 1)
	assert.Contains(t, v.Messages[0], "generic placeholder")
}

func TestEntityConsistency_Confidence(t *testing.T) {
	c := NewEntityConsistency(nil)

	v, err := c.Check(entityInput(t, "Intuit", 0.3))
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)

	v, err = c.Check(entityInput(t, "Intuit", 0.6))
	require.NoError(t, err)
	assert.Equal(t, model.SeverityWarning, v.Severity)
	assert.Contains(t, v.Messages[0], "manual review")

	v, err = c.Check(entityInput(t, "Intuit", 0.95))
	require.NoError(t, err)
	assert.Equal(t, model.SeverityPass, v.Severity)

	_, err = c.Check(entityInput(t, "Intuit", 1.5))
	assert.True(t, model.IsContractViolation(err))
}

func TestEntityConsistency_DifferentSubject(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Transcript = transcriptOf("Goldman Sachs moved its trading platform to Kubernetes last year. "+filler(200), 60)
	in.Document.Sections[1].Body = "Goldman Sachs struggled with slow releases. Goldman Sachs rebuilt its pipeline. " + filler(100)

	v, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)
	require.NotEmpty(t, v.Messages)
	assert.Contains(t, v.Messages[0], "different subject than declared")
	assert.Contains(t, v.Messages[0], "Goldman Sachs")
}

func TestEntityConsistency_UnsourcedMentionIgnored(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Document.Sections[1].Body = "Unlike Goldman Sachs, the team shipped weekly. " + filler(100)

	v, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityPass, v.Severity)
}

func TestEntityConsistency_SubjectNeverMentioned(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Document.Sections[0].Body = filler(100)

	v, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityWarning, v.Severity)
	assert.Contains(t, v.Messages[0], "never mentioned")
}

func TestEntityConsistency_CustomExtractor(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Transcript = transcriptOf("Acme Rockets runs everything on Kubernetes. "+filler(200), 60)

	in.Document.Sections[1].Body = "Acme Rockets built it. Acme Rockets runs it. " + filler(100)

	v, err := NewEntityConsistency(fixedMentions{"Acme Rockets"}).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)
	require.Len(t, v.Messages, 1)
}

func TestEntityConsistency_TitleCasePhraseIsNotAnOrganization(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Transcript = transcriptOf("Intuit's developer experience team led the move to Kubernetes. "+filler(200), 60)
	in.Document.Sections[1].Body = "The Developer Experience team led the work. " + filler(100)

	v, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityPass, v.Severity, v.Messages)
}

func TestEntityConsistency_LesserMentionIsWarning(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Transcript = transcriptOf("Intuit worked with Goldman Sachs on payments running on Kubernetes. "+filler(200), 60)
	in.Document.Sections[1].Body = "Intuit partnered with Goldman Sachs on payments. " + filler(100)

	v, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityWarning, v.Severity)
	require.Len(t, v.Messages, 1)
	assert.Contains(t, v.Messages[0], "Goldman Sachs")
	assert.Contains(t, v.Messages[0], "partner or competitor")
}

func TestEntityConsistency_Idempotent(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Transcript = transcriptOf("Intuit worked with Goldman Sachs on payments running on Kubernetes. "+filler(200), 60)
	in.Document.Sections[1].Body = "Intuit partnered with Goldman Sachs on payments. " + filler(100)

	first, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	second, err := NewEntityConsistency(nil).Check(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEntityConsistency_RequiresArtifacts(t *testing.T) {
	in := entityInput(t, "Intuit", 0.95)
	in.Document = nil
	_, err := NewEntityConsistency(nil).Check(in)
	assert.True(t, model.IsContractViolation(err))
}
