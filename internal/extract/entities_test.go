package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganizationExtractor_Extract(t *testing.T) {
	e := NewOrganizationExtractor(nil)

	text := "Intuit moved its platform to Kubernetes. The team at Goldman Sachs shared notes with Acme Inc. " +
		"We presented at KubeCon with the Cloud Native Computing Foundation. Spotify's approach inspired us."

	got := e.Extract(text)
	assert.Equal(t, []string{"Intuit", "Goldman Sachs", "Acme Inc.", "Spotify"}, got)
}

func TestOrganizationExtractor_SkipsFillersAndReferences(t *testing.T) {
	e := NewOrganizationExtractor([]string{"Platform Team"})
	got := e.Extract("The Platform Team adopted Argo Workflows. Open Policy Agent enforces rules. We love it.")
	assert.Empty(t, got)
}

func TestOrganizationExtractor_Deduplicates(t *testing.T) {
	e := NewOrganizationExtractor(nil)
	got := e.Extract("Red Hat helped. Later red hat engineers and Red Hat support joined.")
	assert.Equal(t, []string{"Red Hat"}, got)
}

func TestOrganizationExtractor_MarkdownEmphasis(t *testing.T) {
	e := NewOrganizationExtractor(nil)
	got := e.Extract("**Goldman Sachs** runs it.")
	assert.Equal(t, []string{"Goldman Sachs"}, got)
}

func TestOrganizationExtractor_Qualifies(t *testing.T) {
	e := NewOrganizationExtractor(nil)
	source := "our developer experience team worked with Goldman Sachs engineers"

	assert.False(t, e.Qualifies("Developer Experience", source))
	assert.True(t, e.Qualifies("Developer Experience", "the Developer Experience group"))
	assert.True(t, e.Qualifies("Goldman Sachs", source))
	assert.True(t, e.Qualifies("Acme Inc.", ""))
	assert.True(t, e.Qualifies("Spotify Labs", ""))
	assert.True(t, e.Qualifies("Red Hat", ""))
	assert.False(t, e.Qualifies("Platform Engineering", "platform engineering"))
	assert.False(t, e.Qualifies(" ", source))
}

func TestCountMentions(t *testing.T) {
	text := "Intuit runs Kubernetes. intuit engineers like it. Intuitive tools help. Acme Inc. and ACME INC. agree."
	assert.Equal(t, 2, CountMentions(text, "intuit"))
	assert.Equal(t, 2, CountMentions(text, "Acme Inc."))
	assert.Zero(t, CountMentions(text, "Goldman Sachs"))
	assert.Zero(t, CountMentions(text, ""))
}

func TestNormalizeCompanyName(t *testing.T) {
	assert.Equal(t, "intuit", NormalizeCompanyName("Intuit Inc."))
	assert.Equal(t, "acme", NormalizeCompanyName("ACME Corp"))
	assert.Equal(t, "red hat", NormalizeCompanyName("Red Hat, Inc."))
}

var _ MentionExtractor = (*OrganizationExtractor)(nil)
