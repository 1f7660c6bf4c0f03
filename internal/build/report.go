package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/fsutil"
	"git.home.luguber.info/inful/portfolio/internal/notify"
)

// Report file names written by Persist.
const (
	ReportJSONFile = "build-report.json"
	ReportTextFile = "build-report.txt"
)

// Event converts the result into the published build event.
func (r *BuildResult) Event() notify.BuildEvent {
	ev := notify.BuildEvent{
		BuildID:    r.BuildID,
		Outcome:    notify.OutcomeSuccess,
		Timestamp:  r.EndTime.UTC(),
		DurationMS: r.Duration.Milliseconds(),
		Articles:   r.Articles,
	}
	if !r.Status.IsSuccess() {
		ev.Outcome = notify.OutcomeFailed
	}
	if r.Err != nil {
		ev.Error = r.Err.Error()
	}
	for _, p := range r.Pages {
		ev.Pages = append(ev.Pages, p.File)
	}
	for _, res := range r.Scripts.Results {
		st := notify.ScriptStatus{Name: res.Name, Status: res.Status, Bytes: res.Bytes}
		if res.Err != nil {
			st.Error = res.Err.Error()
		}
		ev.Scripts = append(ev.Scripts, st)
	}
	return ev
}

// Summary renders a short human readable report.
func (r *BuildResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build=%s status=%s duration=%s\n", r.BuildID, r.Status, r.Duration)
	fmt.Fprintf(&b, "pages=%d articles=%d assets=%d scripts=%d/%d\n",
		len(r.Pages), len(r.Articles), r.Assets, r.Scripts.Written(), len(r.Scripts.Results))

	ids := make([]string, 0, len(r.Articles))
	for id := range r.Articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "article %s %s\n", id, r.Articles[id])
	}
	for _, f := range r.Scripts.Failures() {
		fmt.Fprintf(&b, "skipped script %s: %v\n", f.Name, f.Err)
	}
	if r.Err != nil {
		fmt.Fprintf(&b, "error: %v\n", r.Err)
	}
	return b.String()
}

// Persist writes build-report.json and build-report.txt into dir. Each file is
// replaced atomically.
func (r *BuildResult) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ferrors.FileSystemError("failed to create report directory").
			WithCause(err).WithContext("dir", dir).Build()
	}

	data, err := json.MarshalIndent(r.Event(), "", "  ")
	if err != nil {
		return ferrors.InternalError("failed to marshal build report").WithCause(err).Build()
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(dir, ReportJSONFile), append(data, '\n'), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write build report").
			WithCause(err).WithContext("file", ReportJSONFile).Build()
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(dir, ReportTextFile), []byte(r.Summary()), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write build summary").
			WithCause(err).WithContext("file", ReportTextFile).Build()
	}
	return nil
}
