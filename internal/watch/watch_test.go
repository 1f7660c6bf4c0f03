package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/portfolio/internal/build"
	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/functions"
)

type countingService struct {
	*build.DefaultBuildService
	runs  atomic.Int32
	syncs atomic.Int32
}

func (c *countingService) Run(ctx context.Context, req build.BuildRequest) (*build.BuildResult, error) {
	c.runs.Add(1)
	return c.DefaultBuildService.Run(ctx, req)
}

func (c *countingService) SyncScripts(ctx context.Context, cfg *config.Config) functions.Summary {
	c.syncs.Add(1)
	return c.DefaultBuildService.SyncScripts(ctx, cfg)
}

func watchConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Content.Directory = filepath.Join(root, "Articles")
	cfg.Output.Directory = filepath.Join(root, "out")
	cfg.Output.Public = ""
	cfg.Functions.Scripts = nil
	require.NoError(t, os.MkdirAll(cfg.Content.Directory, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.Directory, "a.md"), []byte("# A\n"), 0o600))
	return cfg
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestWatcher_RebuildsOnContentChange(t *testing.T) {
	cfg := watchConfig(t)
	svc := &countingService{DefaultBuildService: build.NewBuildService()}

	var mu sync.Mutex
	var statuses []build.BuildStatus
	w := New(svc, build.BuildRequest{Config: cfg},
		WithDebounce(20*time.Millisecond),
		WithReporter(func(r *build.BuildResult, _ error) {
			mu.Lock()
			defer mu.Unlock()
			statuses = append(statuses, r.Status)
		}))
	startWatcher(t, w)

	require.Eventually(t, func() bool { return svc.runs.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "articles", "a.html"))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.Directory, "b.md"), []byte("# B\n"), 0o600))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(cfg.Output.Directory, "articles", "b.html"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(2), svc.runs.Load())

	mu.Lock()
	assert.Equal(t, []build.BuildStatus{build.BuildStatusSuccess, build.BuildStatusSuccess}, statuses)
	mu.Unlock()
}

func TestWatcher_SkipsUnchangedContent(t *testing.T) {
	cfg := watchConfig(t)
	svc := &countingService{DefaultBuildService: build.NewBuildService()}
	w := New(svc, build.BuildRequest{Config: cfg}, WithDebounce(time.Millisecond))

	w.rebuild(context.Background(), true)
	require.Equal(t, int32(1), svc.runs.Load())

	// Same bytes, same fingerprint.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.Directory, "a.md"), []byte("# A\n"), 0o600))
	w.rebuild(context.Background(), false)
	assert.Equal(t, int32(1), svc.runs.Load())

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.Directory, "a.md"), []byte("# A, revised\n"), 0o600))
	w.rebuild(context.Background(), false)
	assert.Equal(t, int32(2), svc.runs.Load())
}

func TestWatcher_PeriodicScriptResync(t *testing.T) {
	cfg := watchConfig(t)
	svc := &countingService{DefaultBuildService: build.NewBuildService()}
	w := New(svc, build.BuildRequest{Config: cfg}, WithScriptInterval(20*time.Millisecond))
	startWatcher(t, w)

	require.Eventually(t, func() bool { return svc.syncs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_Relevant(t *testing.T) {
	w := New(&countingService{DefaultBuildService: build.NewBuildService()},
		build.BuildRequest{Config: config.Default()})

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write markdown", fsnotify.Event{Name: "Articles/a.md", Op: fsnotify.Write}, true},
		{"remove markdown", fsnotify.Event{Name: "Articles/a.md", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "Articles/a.md", Op: fsnotify.Chmod}, false},
		{"editor swap file", fsnotify.Event{Name: "Articles/.a.md.swp", Op: fsnotify.Create}, false},
		{"other extension", fsnotify.Event{Name: "Articles/a.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.ev))
		})
	}
}

func TestWatcher_RequiresConfig(t *testing.T) {
	w := New(&countingService{DefaultBuildService: build.NewBuildService()}, build.BuildRequest{})
	require.Error(t, w.Run(context.Background()))
}
