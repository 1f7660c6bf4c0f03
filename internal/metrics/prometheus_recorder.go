package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	articles      prom.Gauge
	pagesWritten  prom.Gauge
	scriptFetch   *prom.HistogramVec
	lastBuild     prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		articles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "articles",
			Help:      "Articles ingested by the last build",
		}),
		pagesWritten: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_written",
			Help:      "Pages written by the last build",
		}),
		scriptFetch: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "script_fetch_duration_seconds",
			Help:      "Duration of remote function script fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"script", "result"}),
		lastBuild: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time the last build finished",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.buildDuration, pr.buildOutcome,
		pr.articles, pr.pagesWritten, pr.scriptFetch, pr.lastBuild)
	return pr
}

// Registry is the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) SetArticles(n int) {
	if p == nil {
		return
	}
	p.articles.Set(float64(n))
}

func (p *PrometheusRecorder) SetPagesWritten(n int) {
	if p == nil {
		return
	}
	p.pagesWritten.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveScriptFetch(script string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.scriptFetch.WithLabelValues(script, res).Observe(d.Seconds())
}
