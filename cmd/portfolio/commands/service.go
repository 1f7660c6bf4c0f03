package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/portfolio/internal/build"
	"git.home.luguber.info/inful/portfolio/internal/config"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/notify"
)

// Outcome lines printed after every build.
const (
	SuccessLine   = "✓ Application built successfully."
	FailurePrefix = "⨉ Failed to build application: "
)

// NewBuildService wires the optional metrics and notification side channels
// from cfg. The returned close function releases them.
func NewBuildService(cfg *config.Config) (*build.DefaultBuildService, func()) {
	svc := build.NewBuildService()
	closeFn := func() {}

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(rec).WithGatherer(rec.Registry())
	}

	if cfg.Notify.NATSURL != "" {
		pub, err := notify.Connect(cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			slog.Warn("Build events disabled", logfields.URL(cfg.Notify.NATSURL), logfields.Error(err))
		} else {
			svc.WithPublisher(pub)
			closeFn = func() { _ = pub.Close() }
		}
	}
	return svc, closeFn
}

// PrintOutcome writes the single user facing outcome line for a build.
func PrintOutcome(w io.Writer, err error) {
	if err != nil {
		_, _ = fmt.Fprintln(w, FailurePrefix+err.Error())
		return
	}
	_, _ = fmt.Fprintln(w, SuccessLine)
}

// RunBuild executes one build and prints its outcome. A returned error is
// marked as reported.
func RunBuild(ctx context.Context, svc build.BuildService, req build.BuildRequest, out io.Writer) error {
	_, err := svc.Run(ctx, req)
	PrintOutcome(out, err)
	if err != nil {
		return reportedError{err}
	}
	return nil
}

// reportedError wraps a build failure whose outcome line is already on stdout.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether the outcome of err was already printed.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// ExitCode returns the process exit code for err. Errors that were not
// reported yet are printed to stderr first.
func ExitCode(err error, verbose bool) int {
	adapter := ferrors.NewCLIErrorAdapter(verbose, nil)
	if IsReported(err) {
		return adapter.ExitCodeFor(err)
	}
	return adapter.Report(err)
}
