// Package functions copies remote server-side function scripts into the build output.
package functions

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/fsutil"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/observability"
	"git.home.luguber.info/inful/portfolio/internal/retry"
)

// DefaultDir is the functions directory name inside the output directory.
const DefaultDir = "functions"

// Entry maps a logical script name to its remote URL.
type Entry struct {
	Name string
	URL  string
}

// EntryResult is the outcome of one entry. Err is nil when the script was written.
type EntryResult struct {
	Name     string
	URL      string
	File     string // written file, empty on failure
	Status   int    // HTTP status, 0 when no response arrived
	Bytes    int
	Duration time.Duration
	Err      error
}

// OK reports whether the script was written.
func (r EntryResult) OK() bool { return r.Err == nil }

// Summary collects per-entry results in processing order.
type Summary struct {
	Results []EntryResult
}

// Written counts successfully written scripts.
func (s Summary) Written() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failures returns the entries that were skipped.
func (s Summary) Failures() []EntryResult {
	var out []EntryResult
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Synchronizer fetches entries one at a time and writes each to
// <outDir>/functions/<name>.js.
type Synchronizer struct {
	outDir   string
	dirName  string
	entries  []Entry
	client   *http.Client
	recorder metrics.Recorder
	retry    retry.Policy
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Synchronizer) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRetry retries transient fetch failures (transport errors, 429 and 5xx)
// before the entry is skipped.
func WithRetry(p retry.Policy) Option {
	return func(s *Synchronizer) { s.retry = p }
}

// WithRecorder records fetch durations.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Synchronizer) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithDirName changes the functions directory name.
func WithDirName(name string) Option {
	return func(s *Synchronizer) {
		if name != "" {
			s.dirName = name
		}
	}
}

// NewSynchronizer creates a Synchronizer. Entries are processed sorted by name.
func NewSynchronizer(outDir string, entries []Entry, opts ...Option) *Synchronizer {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	s := &Synchronizer{
		outDir:   outDir,
		dirName:  DefaultDir,
		entries:  sorted,
		client:   NewHTTPClient(0),
		recorder: metrics.NoopRecorder{},
		retry:    retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir is the directory scripts are written to.
func (s *Synchronizer) Dir() string { return filepath.Join(s.outDir, s.dirName) }

// Sync processes every entry sequentially. A failing entry is logged, recorded
// in the summary and skipped; it never stops the remaining entries.
func (s *Synchronizer) Sync(ctx context.Context) Summary {
	summary := Summary{Results: make([]EntryResult, 0, len(s.entries))}
	for _, e := range s.entries {
		res := s.syncOne(ctx, e)
		s.recorder.ObserveScriptFetch(e.Name, res.Duration, res.OK())
		if res.OK() {
			observability.InfoContext(ctx, "Synchronized function script",
				logfields.Script(e.Name),
				logfields.File(res.File),
				logfields.Duration(res.Duration))
		} else {
			observability.WarnContext(ctx, "Skipping function script",
				logfields.Script(e.Name),
				logfields.URL(e.URL),
				logfields.Status(res.Status),
				logfields.Error(res.Err))
		}
		summary.Results = append(summary.Results, res)
	}
	return summary
}

func (s *Synchronizer) syncOne(ctx context.Context, e Entry) EntryResult {
	start := time.Now()
	res := EntryResult{Name: e.Name, URL: e.URL}

	if err := validateURL(e.URL); err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	var text string
	err := s.retry.Do(ctx, func(attempt int) (bool, error) {
		if attempt > 0 {
			observability.DebugContext(ctx, "Retrying function script",
				logfields.Script(e.Name), logfields.Count(attempt))
		}
		var status int
		var err error
		text, status, err = fetchText(ctx, s.client, e.URL)
		res.Status = status
		return transient(status, err), err
	})
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Err = ferrors.FileSystemError("failed to create functions directory").
			WithCause(err).WithContext("path", dir).Build()
		res.Duration = time.Since(start)
		return res
	}
	path := filepath.Join(dir, e.Name+".js")
	if err := fsutil.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		res.Err = ferrors.FileSystemError("failed to write function script").
			WithCause(err).WithContext("path", path).Build()
		res.Duration = time.Since(start)
		return res
	}
	res.File = path
	res.Bytes = len(text)
	res.Duration = time.Since(start)
	return res
}

// transient reports whether a failed fetch may succeed when repeated.
func transient(status int, err error) bool {
	if err == nil {
		return false
	}
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}
