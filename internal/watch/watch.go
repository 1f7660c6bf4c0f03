// Package watch rebuilds the site when content changes and periodically
// refreshes the remote scripts.
package watch

import (
	"context"
	"maps"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/portfolio/internal/build"
	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/content"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/functions"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/observability"
)

// DefaultDebounce is the quiet window after the last content event before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Service is what the watcher drives.
type Service interface {
	build.BuildService
	SyncScripts(ctx context.Context, cfg *config.Config) functions.Summary
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithScriptInterval enables periodic remote script resynchronization.
func WithScriptInterval(d time.Duration) Option {
	return func(w *Watcher) { w.scriptInterval = d }
}

// WithReporter is called after every build the watcher runs.
func WithReporter(fn func(*build.BuildResult, error)) Option {
	return func(w *Watcher) { w.report = fn }
}

// Watcher runs a build, then rebuilds whenever a content file changes.
type Watcher struct {
	svc            Service
	req            build.BuildRequest
	debounce       time.Duration
	scriptInterval time.Duration
	report         func(*build.BuildResult, error)

	// mu serializes builds and script refreshes; both write into the output directory.
	mu       sync.Mutex
	articles map[string]string
}

// New creates a Watcher for req.
func New(svc Service, req build.BuildRequest, opts ...Option) *Watcher {
	w := &Watcher{
		svc:      svc,
		req:      req,
		debounce: DefaultDebounce,
		report:   func(*build.BuildResult, error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run builds once, then watches the content directory until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if w.req.Config == nil {
		return ferrors.ConfigError("config required").Build()
	}
	cfg := w.req.Config

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	defer func() {
		_ = fw.Close()
	}()
	if err := fw.Add(cfg.Content.Directory); err != nil {
		return ferrors.FileSystemError("failed to watch content directory").
			WithCause(err).WithContext("dir", cfg.Content.Directory).Build()
	}

	w.rebuild(ctx, true)

	if w.scriptInterval > 0 {
		scheduler, err := w.schedule(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				observability.WarnContext(ctx, "Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	observability.InfoContext(ctx, "Watching content", logfields.Path(cfg.Content.Directory))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			observability.DebugContext(ctx, "Content changed", logfields.File(ev.Name))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "File watcher error", logfields.Error(err))
		case <-timer.C:
			w.rebuild(ctx, false)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.InternalError("failed to create scheduler").WithCause(err).Build()
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(w.scriptInterval),
		gocron.NewTask(w.refreshScripts, ctx),
		gocron.WithName("script-resync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, ferrors.ConfigError("failed to schedule script resync").
			WithCause(err).WithContext("interval", w.scriptInterval.String()).Build()
	}
	scheduler.Start()
	return scheduler, nil
}

func (w *Watcher) refreshScripts(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	summary := w.svc.SyncScripts(ctx, w.req.Config)
	observability.InfoContext(ctx, "Remote scripts refreshed",
		logfields.Count(summary.Written()))
}

// relevant reports whether ev touches a content file the ingestor would read.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	pattern := w.req.Config.Content.Pattern
	if pattern == "" {
		pattern = content.DefaultPattern
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// rebuild runs a build unless the content fingerprints equal those of the
// last successful build.
func (w *Watcher) rebuild(ctx context.Context, force bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !force && w.unchanged(ctx) {
		observability.InfoContext(ctx, "Content unchanged, skipping rebuild")
		return
	}

	result, err := w.svc.Run(ctx, w.req)
	if err == nil && result != nil {
		w.articles = maps.Clone(result.Articles)
	}
	w.report(result, err)
}

func (w *Watcher) unchanged(ctx context.Context) bool {
	if w.articles == nil {
		return false
	}
	cfg := w.req.Config
	in := content.NewIngestor(content.WithPattern(cfg.Content.Pattern), content.WithRoot(cfg.Content.Root))
	articles, err := in.Ingest(ctx, cfg.Content.Directory)
	if err != nil {
		// let the build report it
		return false
	}
	current := make(map[string]string, len(articles))
	for _, a := range articles {
		current[a.ID()] = a.Fingerprint()
	}
	return maps.Equal(current, w.articles)
}
