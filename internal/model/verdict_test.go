package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictAdd(t *testing.T) {
	v := NewVerdict("x")
	assert.Equal(t, SeverityPass, v.Severity)
	assert.NotNil(t, v.Messages)

	v.Add(SeverityCritical, "first %d", 1)
	v.Add(SeverityWarning, "second")
	v.Note("info")

	assert.Equal(t, SeverityCritical, v.Severity)
	assert.Equal(t, []string{"first 1", "second", "info"}, v.Messages)
}

func TestInternalFailure(t *testing.T) {
	v := InternalFailure("fabrication", errors.New("boom"))
	assert.Equal(t, SeverityCritical, v.Severity)
	assert.True(t, v.InternalError)
	require.Len(t, v.Messages, 1)
	assert.Contains(t, v.Messages[0], InternalErrorTag)
	assert.Contains(t, v.Messages[0], "boom")
}

func TestPipelineReportRecord(t *testing.T) {
	var r PipelineReport
	warn := NewVerdict("a")
	warn.Add(SeverityWarning, "w")
	r.Record(NewVerdict("p"))
	r.Record(warn)
	r.Record(NewVerdict("q"))

	assert.Equal(t, SeverityWarning, r.Overall)
	got, ok := r.Verdict("a")
	require.True(t, ok)
	assert.Equal(t, warn, got)
	_, ok = r.Verdict("missing")
	assert.False(t, ok)
}

func TestCheckContract(t *testing.T) {
	doc := &CandidateDocument{Sections: []Section{{Name: "Overview", Body: "text"}}}
	assert.NoError(t, CheckContract("structure", doc))

	err := CheckContract("structure", &CandidateDocument{})
	require.Error(t, err)
	assert.True(t, IsContractViolation(err))

	err = CheckContract("structure", &CandidateDocument{Sections: []Section{{Name: "  "}}})
	var cv *ContractViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "structure", cv.Checkpoint)
	assert.Contains(t, cv.Reason, "nonblank")

	err = CheckContract("claims", &QuantitativeClaim{Value: ""})
	assert.True(t, IsContractViolation(err))
}

func TestCheckConfidence(t *testing.T) {
	assert.NoError(t, CheckConfidence("entity", 0))
	assert.NoError(t, CheckConfidence("entity", 1))
	assert.Error(t, CheckConfidence("entity", -0.1))
	assert.Error(t, CheckConfidence("entity", 1.01))
	nan := 0.0
	assert.Error(t, CheckConfidence("entity", nan/nan))
}

func TestErrorKinds(t *testing.T) {
	cfg := NewConfigurationError("depth.weights", "sum %.2f", 0.9)
	assert.Equal(t, "configuration error: depth.weights: sum 0.90", cfg.Error())
	assert.True(t, IsConfigurationError(cfg))
	assert.False(t, IsContractViolation(cfg))

	wrapped := errors.Join(errors.New("context"), NewContractViolation("format", "bad"))
	assert.True(t, IsContractViolation(wrapped))
}

func TestDocumentSectionLookup(t *testing.T) {
	doc := &CandidateDocument{Sections: []Section{
		{Name: "Executive Summary", Body: "one two three"},
		{Name: "cncf_projects", Body: "four"},
	}}
	s, ok := doc.Section("executive_summary")
	require.True(t, ok)
	assert.Equal(t, 3, s.Words())
	_, ok = doc.Section("CNCF Projects")
	assert.True(t, ok)
	assert.Equal(t, 4, doc.TotalWords())
}

func TestNewTranscriptJoinsSegments(t *testing.T) {
	tr := NewTranscript("", []Segment{{Text: "hello ", Start: 0, Duration: 2}, {Text: "world", Start: 2, Duration: 3}})
	assert.Equal(t, "hello world", tr.Text)
	assert.Equal(t, 2, tr.WordCount())
	assert.Equal(t, 11, tr.CharCount())
	assert.InDelta(t, 5.0, tr.Duration(), 1e-9)
}
