package validate

import (
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCompliance(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     model.Severity
		contains string
	}{
		{
			name:     "no markdown",
			markdown: "",
			want:     model.SeverityPass,
			contains: "skipped",
		},
		{
			name:     "linked screenshot",
			markdown: "## Solution\n\n[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?v=abc123&t=120s)\n",
			want:     model.SeverityPass,
			contains: "1 images checked",
		},
		{
			name:     "remote image",
			markdown: "![logo](https://example.com/logo.png)\n",
			want:     model.SeverityPass,
		},
		{
			name:     "repository rooted path",
			markdown: "![diagram](case-studies/intuit/images/diagram.png)\n",
			want:     model.SeverityCritical,
			contains: "repository-rooted path",
		},
		{
			name:     "absolute path",
			markdown: "![diagram](/images/diagram.png)\n",
			want:     model.SeverityCritical,
			contains: "repository-rooted path",
		},
		{
			name:     "screenshot not clickable",
			markdown: "![Rollout](images/intuit/rollout.png)\n",
			want:     model.SeverityCritical,
			contains: "not linked to a video timestamp",
		},
		{
			name:     "screenshot link without timestamp",
			markdown: "[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?v=abc123)\n",
			want:     model.SeverityCritical,
			contains: "has no video timestamp",
		},
		{
			name:     "negative timestamp",
			markdown: "[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?v=abc123&t=-5s)\n",
			want:     model.SeverityCritical,
			contains: "invalid timestamp",
		},
		{
			name:     "fractional timestamp",
			markdown: "[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?v=abc123&t=1.5s)\n",
			want:     model.SeverityCritical,
			contains: "invalid timestamp \"1.5s\"",
		},
		{
			name:     "bare seconds timestamp",
			markdown: "[![Rollout](images/intuit/rollout.png)](https://youtu.be/abc123?t=90)\n",
			want:     model.SeverityPass,
		},
		{
			name:     "timestamp followed by parameter",
			markdown: "[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?t=45&v=abc123)\n",
			want:     model.SeverityPass,
		},
	}

	c := NewFormatCompliance()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := shortFormDocument("Intuit")
			doc.Markdown = tt.markdown
			v, err := c.Check(&Input{Profile: mustProfile(t, profile.ShortForm), Document: doc})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Severity)
			if tt.contains != "" {
				require.NotEmpty(t, v.Messages)
				assert.Contains(t, v.Messages[0], tt.contains)
			}
		})
	}
}

func TestFormatCompliance_Idempotent(t *testing.T) {
	doc := shortFormDocument("Intuit")
	doc.Markdown = "![diagram](/images/diagram.png)\n\n[![Rollout](images/intuit/rollout.png)](https://www.youtube.com/watch?v=abc123&t=120s)\n"
	in := &Input{Profile: mustProfile(t, profile.ShortForm), Document: doc}

	c := NewFormatCompliance()
	first, err := c.Check(in)
	require.NoError(t, err)
	second, err := c.Check(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, model.SeverityCritical, first.Severity)
}
