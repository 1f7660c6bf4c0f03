package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("ingest", 150*time.Millisecond)
	pr.IncStageResult("ingest", ResultSuccess)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetArticles(3)
	pr.SetPagesWritten(7)
	pr.ObserveScriptFetch("send", 20*time.Millisecond, false)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"portfolio_stage_duration_seconds",
		"portfolio_stage_results_total",
		"portfolio_build_duration_seconds",
		"portfolio_build_outcomes_total",
		"portfolio_articles",
		"portfolio_pages_written",
		"portfolio_script_fetch_duration_seconds",
		"portfolio_last_build_timestamp_seconds",
	} {
		assert.True(t, names[want], want)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.ObserveScriptFetch("x", time.Second, true)
	})
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetArticles(2)

	path := filepath.Join(t.TempDir(), "textfile", "portfolio.prom")
	require.NoError(t, WriteTextfile(path, pr.Registry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "portfolio_articles 2")
}
