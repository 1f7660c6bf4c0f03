package build

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/portfolio/internal/config"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/notify"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.BuildEvent
}

func (p *recordingPublisher) PublishBuild(_ context.Context, ev notify.BuildEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) last(t *testing.T) notify.BuildEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.events)
	return p.events[len(p.events)-1]
}

func scriptServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/middleware.js", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/send.js", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, files map[string]string, scriptsURL string) *config.Config {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "Articles")
	require.NoError(t, os.MkdirAll(contentDir, 0o750))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(contentDir, name), []byte(body), 0o600))
	}

	cfg := config.Default()
	cfg.Content.Directory = contentDir
	cfg.Output.Directory = filepath.Join(root, "out")
	cfg.Output.Public = filepath.Join(root, "Public")
	cfg.Functions.Scripts = []config.ScriptConfig{
		{Name: "_middleware", URL: scriptsURL + "/middleware.js"},
		{Name: "send", URL: scriptsURL + "/send.js"},
	}
	return cfg
}

func fixedService(pub notify.Publisher) *DefaultBuildService {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return NewBuildService().
		WithPublisher(pub).
		WithClock(func() time.Time { return at }).
		WithIDGenerator(func() string { return "build-1" })
}

func TestRun_WritesSiteAndIsolatesScriptFailures(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{
		"a.md": "---\ntitle: First\npublished: 2024-01-01\n---\nBody\n",
		"b.md": "---\ntitle: Second\npublished: 2024-06-01\n---\n",
	}, srv.URL)
	pub := &recordingPublisher{}

	result, err := fixedService(pub).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, result.Status)
	assert.Equal(t, "build-1", result.BuildID)

	out := cfg.Output.Directory
	for _, rel := range []string{
		"index.html", "404.html", "notes.html", "projects.html",
		"articles/a.html", "articles/b.html", "sitemap.xml", "robots.txt",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}

	middleware, err := os.ReadFile(filepath.Join(out, "functions", "_middleware.js"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(middleware))
	assert.NoFileExists(t, filepath.Join(out, "functions", "send.js"))

	require.Len(t, result.Scripts.Failures(), 1)
	assert.Equal(t, "send", result.Scripts.Failures()[0].Name)
	assert.Len(t, result.Articles, 2)
	assert.Contains(t, result.Articles, "a")
	assert.Len(t, result.Pages, 6)

	ev := pub.last(t)
	assert.Equal(t, notify.OutcomeSuccess, ev.Outcome)
	assert.Equal(t, "build-1", ev.BuildID)
	require.Len(t, ev.Scripts, 2)
	assert.Equal(t, 500, ev.Scripts[1].Status)
}

func TestRun_ContentFailureAbortsBeforeOutput(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{
		"good.md": "---\ntitle: Good\n---\n",
		"bad.md":  "---\ntitle: [unterminated\n---\nBody\n",
	}, srv.URL)
	pub := &recordingPublisher{}

	result, err := fixedService(pub).Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.Equal(t, err, result.Err)

	assert.NoDirExists(t, cfg.Output.Directory)

	ev := pub.last(t)
	assert.Equal(t, notify.OutcomeFailed, ev.Outcome)
	assert.NotEmpty(t, ev.Error)
}

func TestRun_NilConfig(t *testing.T) {
	result, err := NewBuildService().Run(context.Background(), BuildRequest{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Equal(t, BuildStatusFailed, result.Status)
}

func TestRun_CancelledBeforeRender(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{"a.md": "# A\n"}, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewBuildService().Run(ctx, BuildRequest{Config: cfg})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, BuildStatusCancelled, result.Status)
	assert.False(t, result.Status.IsSuccess())
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRun_SkipScripts(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{"a.md": "# A\n"}, srv.URL)

	result, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{SkipScripts: true},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Scripts.Results)
	assert.NoDirExists(t, filepath.Join(cfg.Output.Directory, "functions"))
}

func TestRun_CopiesPublicAssets(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{"a.md": "# A\n"}, srv.URL)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Output.Public, "articles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output.Public, "articles", "a.jpg"), []byte("jpg"), 0o600))

	result, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{SkipScripts: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Assets)
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "public", "articles", "a.jpg"))
}

func TestRun_PersistsReportAndMetrics(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, map[string]string{"a.md": "---\ntitle: A\n---\nBody\n"}, srv.URL)
	reportDir := filepath.Join(t.TempDir(), "reports")
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "textfile", "portfolio.prom")

	rec := metrics.NewPrometheusRecorder(nil)
	svc := fixedService(&recordingPublisher{}).WithRecorder(rec).WithGatherer(rec.Registry())

	_, err := svc.Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{ReportDir: reportDir},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(reportDir, ReportJSONFile))
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "build-1", report["build_id"])
	assert.Equal(t, "success", report["outcome"])

	summary, err := os.ReadFile(filepath.Join(reportDir, ReportTextFile))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "status=success")
	assert.Contains(t, string(summary), "skipped script send")

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "portfolio_articles 1")
	assert.Contains(t, string(prom), `portfolio_build_outcomes_total{outcome="warning"} 1`)
}

func TestSyncScripts_RefreshesFunctionsOnly(t *testing.T) {
	srv := scriptServer(t)
	cfg := testConfig(t, nil, srv.URL)

	summary := NewBuildService().SyncScripts(context.Background(), cfg)
	assert.Equal(t, 1, summary.Written())
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "functions", "_middleware.js"))
	assert.NoFileExists(t, filepath.Join(cfg.Output.Directory, "index.html"))
}
