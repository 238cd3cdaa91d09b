package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	score := 0.8
	r.ObserveVerdict("technical_depth", "pass", 3*time.Millisecond, &score)
	r.ObserveVerdict("technical_depth", "pass", time.Millisecond, nil)
	r.ObserveVerdict("fabrication", "critical", time.Millisecond, nil)
	r.ObserveRun("short-form", "halted", "critical")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.verdicts.WithLabelValues("technical_depth", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.verdicts.WithLabelValues("fabrication", "critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("short-form", "halted", "critical")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveRun("deep-dive", "completed", "warning")

	path := filepath.Join(t.TempDir(), "draftcheck.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `draftcheck_pipeline_runs_total{profile="deep-dive",severity="warning",state="completed"} 1`))

	assert.NoError(t, r.WriteTextfile(""))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveVerdict("x", "pass", 0, nil)
	r.ObserveRun("p", "completed", "pass")
	assert.NoError(t, r.WriteTextfile("/nonexistent/file"))
}
