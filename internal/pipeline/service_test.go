package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/ppiankov/draftcheck/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestService(t *testing.T, mutate func(*model.Config)) *Service {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewService(cfg, nil, nil)
	require.NoError(t, err)
	return s
}

func writeBundle(t *testing.T, transcript string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"transcript.json": transcript,
		"draft.yaml":      "subject: Acme\nprofile: short-form\nsections:\n  Overview: Acme runs Kubernetes.\n",
		"bundle.yaml":     "transcript: transcript.json\ndocument: draft.yaml\nconfidence: 0.9\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return filepath.Join(dir, "bundle.yaml")
}

func TestServiceProfileFallsBackToDefault(t *testing.T) {
	s := newTestService(t, func(c *model.Config) { c.Profiles.Default = profile.DeepDive })

	p, err := s.Profile("")
	require.NoError(t, err)
	assert.Equal(t, profile.DeepDive, p.ID)

	_, err = s.Profile("white-paper")
	assert.True(t, errors.Is(err, model.ErrUnknownProfile))
}

func TestServiceLoadsProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := NewService(&model.Config{Profiles: model.ProfilesConfig{File: path}}, nil, nil)
	assert.Error(t, err)
}

func TestServiceValidateTranscriptQuality(t *testing.T) {
	s := newTestService(t, nil)

	v, err := s.ValidateTranscriptQuality(&model.SourceTranscript{Text: ""}, profile.ShortForm)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)
	assert.False(t, v.InternalError)

	v, err = s.ValidateTranscriptQuality(nil, profile.ShortForm)
	require.NoError(t, err)
	assert.True(t, v.InternalError)
	assert.Equal(t, validate.NameTranscript, v.Checkpoint)
}

func TestServiceValidateEntityConsistencyPlaceholder(t *testing.T) {
	s := newTestService(t, nil)

	v, err := s.ValidateEntityConsistency("Company", 1, longTranscript(), &model.CandidateDocument{
		Sections: []model.Section{{Name: "Overview", Body: "text"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)
}

func TestServiceValidateStructureMissingSection(t *testing.T) {
	s := newTestService(t, nil)

	v, err := s.ValidateStructure(&model.CandidateDocument{
		Sections: []model.Section{{Name: "Overview", Body: "Acme runs Kubernetes."}},
	}, profile.ShortForm)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityCritical, v.Severity)

	_, err = s.ValidateStructure(&model.CandidateDocument{}, "unknown")
	assert.True(t, errors.Is(err, model.ErrUnknownProfile))
}

func TestServiceValidateClaims(t *testing.T) {
	s := newTestService(t, nil)
	tr := model.NewTranscript("So after the migration we cut deployment time by fifty percent which honestly surprised everyone.", nil)

	v, err := s.ValidateClaims([]model.QuantitativeClaim{{
		Value:    "50%",
		Unit:     model.UnitPercentage,
		Context:  "deployment time by 50%",
		Sentence: "Deployment time dropped by 50% after the migration.",
		Section:  "Impact",
		Quote:    "we cut deployment time by fifty percent",
	}}, tr, profile.DeepDive)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityPass, v.Severity)

	v, err = s.ValidateClaims([]model.QuantitativeClaim{{Value: " "}}, tr, profile.DeepDive)
	require.NoError(t, err)
	assert.True(t, v.InternalError)
}

func TestServiceValidateTechnicalDepthExtractsReferences(t *testing.T) {
	s := newTestService(t, nil)
	doc := &model.CandidateDocument{Sections: []model.Section{
		{Name: "Solution", Body: "The team uses Kubernetes for scheduling every service across their regional clusters."},
	}}

	v, err := s.ValidateTechnicalDepth(doc, DepthInputs{}, profile.ShortForm)
	require.NoError(t, err)
	require.NotNil(t, v.Score)
	assert.Len(t, v.Signals, 5)
}

func TestServiceRunPipelineUsesDeclaredProfile(t *testing.T) {
	s := newTestService(t, nil)

	report, err := s.RunPipeline(&model.Submission{
		Profile:    profile.DeepDive,
		Transcript: &model.SourceTranscript{},
	})
	require.NoError(t, err)
	assert.Equal(t, profile.DeepDive, report.Profile)
	assert.Equal(t, validate.NameTranscript, report.HaltedAt)

	_, err = s.RunPipeline(&model.Submission{Profile: "nope"})
	assert.Error(t, err)
}

func TestServiceValidateBundle(t *testing.T) {
	s := newTestService(t, nil)
	path := writeBundle(t, `{"text": ""}`)

	report, err := s.ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", report.Subject)
	assert.Equal(t, profile.ShortForm, report.Profile)
	assert.Equal(t, model.SeverityCritical, report.Overall)
	assert.Nil(t, report.Review)
}

func TestServiceValidateBundleContractViolation(t *testing.T) {
	s := newTestService(t, nil)
	path := writeBundle(t, `{"segments": []}`)

	_, err := s.ValidateBundle(context.Background(), path)
	require.Error(t, err)
	assert.True(t, model.IsContractViolation(err))
}

func TestServiceValidateBundleUsesCache(t *testing.T) {
	s := newTestService(t, func(c *model.Config) { c.Cache.Enabled = true })
	path := writeBundle(t, `{"text": ""}`)

	first, err := s.ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	second, err := s.ValidateBundle(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, first.Overall, second.Overall)

	uncached := newTestService(t, nil)
	third, err := uncached.ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID)
}

func TestServiceCacheKeyFollowsProfileContents(t *testing.T) {
	dir := t.TempDir()
	path := writeBundle(t, `{"text": ""}`)
	withCache := func(profilesFile string) *Service {
		return newTestService(t, func(c *model.Config) {
			c.Cache.Enabled = true
			c.Cache.Dir = dir
			c.Profiles.File = profilesFile
		})
	}

	first, err := withCache("").ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	again, err := withCache("").ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first.RunID, again.RunID)

	tuned := *mustShortForm(t)
	tuned.Fabrication.SimilarityThreshold = 0.9
	data, err := yaml.Marshal(map[string][]*model.ContentProfile{"profiles": {&tuned}})
	require.NoError(t, err)
	profilesFile := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(profilesFile, data, 0o644))

	overridden, err := withCache(profilesFile).ValidateBundle(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, overridden.RunID)
}

func mustShortForm(t *testing.T) *model.ContentProfile {
	t.Helper()
	p, err := profile.NewRegistry().Get(profile.ShortForm)
	require.NoError(t, err)
	return p
}

func TestServiceReviewerMisconfiguredIsSkipped(t *testing.T) {
	s := newTestService(t, func(c *model.Config) {
		c.Review.Enabled = true
		c.Review.Provider = "openai"
		c.Review.APIKey = ""
	})
	assert.Nil(t, s.reviewer)
}
