package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, SeverityPass, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityCritical)

	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityWarning, SeverityCritical))
	assert.Equal(t, SeverityWarning, MaxSeverity(SeverityWarning, SeverityPass))
	assert.Equal(t, SeverityPass, MaxSeverity(SeverityPass, SeverityPass))
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"pass": SeverityPass, "Warning": SeverityWarning, "warn": SeverityWarning, " CRITICAL ": SeverityCritical,
	} {
		got, err := ParseSeverity(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		S Severity `json:"s"`
	}{SeverityWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"warning"}`, string(data))

	var out struct {
		S Severity `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"critical"}`), &out))
	assert.Equal(t, SeverityCritical, out.S)

	_, err = Severity(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "severity(7)", Severity(7).String())
}
