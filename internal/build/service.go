package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/functions"
	"git.home.luguber.info/inful/portfolio/internal/render"
)

// BuildService executes site builds.
type BuildService interface {
	// Run executes ingest → aggregate → render → functions.
	// The result is non-nil even when an error is returned.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Options provides optional build behavior modifiers.
	Options BuildOptions
}

// BuildOptions provides optional configuration for build behavior.
type BuildOptions struct {
	// SkipScripts leaves the remote script synchronization out.
	SkipScripts bool

	// ReportDir, when set, receives build-report.json and build-report.txt.
	ReportDir string
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	BuildID string
	Status  BuildStatus

	// OutputPath is the directory pages were written to.
	OutputPath string

	// Pages lists the written documents in route order.
	Pages []render.PageFile

	// Assets counts copied static files.
	Assets int

	// Articles maps article id to content fingerprint.
	Articles map[string]string

	// Scripts holds the per-entry synchronization outcome.
	Scripts functions.Summary

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Err is the error that failed the build.
	Err error
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the pages were written. Script failures do not change it.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
