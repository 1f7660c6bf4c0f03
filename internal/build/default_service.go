package build

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/content"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/functions"
	"git.home.luguber.info/inful/portfolio/internal/gitinfo"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/notify"
	"git.home.luguber.info/inful/portfolio/internal/observability"
	"git.home.luguber.info/inful/portfolio/internal/render"
	"git.home.luguber.info/inful/portfolio/internal/retry"
	"git.home.luguber.info/inful/portfolio/internal/site"
)

// Stage names used for logging and metrics.
const (
	StageAggregate = "aggregate"
	StageRender    = "render"
	StageFunctions = "functions"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	// Optional dependencies that can be injected
	httpClient *http.Client
	recorder   metrics.Recorder
	gatherer   prom.Gatherer
	publisher  notify.Publisher
	now        func() time.Time
	newID      func() string
}

// NewBuildService creates a DefaultBuildService with no-op metrics and notifications.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder:  metrics.NoopRecorder{},
		publisher: notify.Nop{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithHTTPClient overrides the client used for remote scripts.
// By default a client honouring functions.timeout is created per build.
func (s *DefaultBuildService) WithHTTPClient(c *http.Client) *DefaultBuildService {
	s.httpClient = c
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithGatherer enables the metrics textfile export at metrics.textfile after each build.
func (s *DefaultBuildService) WithGatherer(g prom.Gatherer) *DefaultBuildService {
	s.gatherer = g
	return s
}

// WithPublisher sets where build events are published.
func (s *DefaultBuildService) WithPublisher(p notify.Publisher) *DefaultBuildService {
	if p != nil {
		s.publisher = p
	}
	return s
}

// WithClock sets the build reference time source (footer year, fallback publish date).
func (s *DefaultBuildService) WithClock(now func() time.Time) *DefaultBuildService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator overrides build id generation.
func (s *DefaultBuildService) WithIDGenerator(gen func() string) *DefaultBuildService {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := s.now()
	result := &BuildResult{
		BuildID:   s.newID(),
		StartTime: startTime,
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)
	defer s.finish(ctx, req, result)

	if req.Config == nil {
		return s.fail(result, "", ferrors.ConfigError("config required").Build())
	}
	cfg := req.Config
	result.OutputPath = cfg.Output.Directory

	env, err := site.NewEnv(cfg.Site, startTime)
	if err != nil {
		return s.fail(result, "", err)
	}

	// Stage 1: ingest content and assemble routes
	stageStart := time.Now()
	ctx = observability.WithStage(ctx, StageAggregate)
	observability.InfoContext(ctx, "Ingesting content", logfields.Path(cfg.Content.Directory))
	pages, err := site.Aggregate(ctx, s.ingester(ctx, cfg), cfg.Content.Directory, env)
	s.recorder.ObserveStageDuration(StageAggregate, time.Since(stageStart))
	if err != nil {
		return s.fail(result, StageAggregate, err)
	}
	s.recorder.IncStageResult(StageAggregate, metrics.ResultSuccess)

	articles := site.Articles(pages)
	result.Articles = make(map[string]string, len(articles))
	for _, a := range articles {
		result.Articles[a.ID()] = a.Fingerprint()
	}
	s.recorder.SetArticles(len(articles))

	if ctx.Err() != nil {
		return s.cancel(ctx, result)
	}

	// Stage 2: write pages
	stageStart = time.Now()
	ctx = observability.WithStage(ctx, StageRender)
	writer := render.NewWriter(cfg.Output.Directory,
		render.WithClean(cfg.Output.Clean),
		render.WithPublicDir(cfg.Output.Public))
	report, err := writer.Write(ctx, pages)
	s.recorder.ObserveStageDuration(StageRender, time.Since(stageStart))
	if report != nil {
		result.Pages = report.Pages
		result.Assets = report.Assets
	}
	if err != nil {
		return s.fail(result, StageRender, err)
	}
	s.recorder.IncStageResult(StageRender, metrics.ResultSuccess)
	s.recorder.SetPagesWritten(len(result.Pages))

	if ctx.Err() != nil {
		return s.cancel(ctx, result)
	}

	// Stage 3: remote scripts, failures stay per entry
	outcome := metrics.BuildOutcomeSuccess
	if !req.Options.SkipScripts {
		ctx = observability.WithStage(ctx, StageFunctions)
		result.Scripts = s.SyncScripts(ctx, cfg)
		if failed := len(result.Scripts.Failures()); failed > 0 {
			observability.WarnContext(ctx, "Some remote scripts were skipped", logfields.Count(failed))
			outcome = metrics.BuildOutcomeWarning
		}
	}

	result.Status = BuildStatusSuccess
	s.stamp(result)
	s.recorder.IncBuildOutcome(outcome)
	s.recorder.ObserveBuildDuration(result.Duration)
	observability.InfoContext(ctx, "Build completed",
		logfields.Path(result.OutputPath),
		logfields.Count(len(result.Pages)),
		logfields.Duration(result.Duration))
	return result, nil
}

// SyncScripts runs only the remote script synchronization against an existing output directory.
func (s *DefaultBuildService) SyncScripts(ctx context.Context, cfg *config.Config) functions.Summary {
	ctx = observability.WithStage(ctx, StageFunctions)
	stageStart := time.Now()
	summary := s.synchronizer(cfg).Sync(ctx)
	s.recorder.ObserveStageDuration(StageFunctions, time.Since(stageStart))
	if len(summary.Failures()) > 0 {
		s.recorder.IncStageResult(StageFunctions, metrics.ResultWarning)
	} else {
		s.recorder.IncStageResult(StageFunctions, metrics.ResultSuccess)
	}
	return summary
}

func (s *DefaultBuildService) ingester(ctx context.Context, cfg *config.Config) site.Ingester {
	opts := []content.Option{
		content.WithPattern(cfg.Content.Pattern),
		content.WithRoot(cfg.Content.Root),
	}
	if cfg.Content.GitInfo {
		history, err := gitinfo.Open(cfg.Content.Directory)
		if err != nil {
			observability.WarnContext(ctx, "Git history unavailable, modified dates fall back to publish dates",
				logfields.Error(err))
		} else {
			opts = append(opts, content.WithModTimes(history))
		}
	}
	return content.NewIngestor(opts...)
}

func (s *DefaultBuildService) synchronizer(cfg *config.Config) *functions.Synchronizer {
	entries := make([]functions.Entry, 0, len(cfg.Functions.Scripts))
	for _, sc := range cfg.Functions.Scripts {
		entries = append(entries, functions.Entry{Name: sc.Name, URL: sc.URL})
	}
	r := cfg.Functions.Retry
	client := s.httpClient
	if client == nil {
		client = functions.NewHTTPClient(cfg.Functions.Timeout)
	}
	return functions.NewSynchronizer(cfg.Output.Directory, entries,
		functions.WithHTTPClient(client),
		functions.WithRecorder(s.recorder),
		functions.WithRetry(retry.NewPolicy(r.Backoff, r.Initial, r.Max, r.MaxRetries)),
		functions.WithDirName(cfg.Functions.Directory))
}

func (s *DefaultBuildService) fail(result *BuildResult, stage string, err error) (*BuildResult, error) {
	result.Status = BuildStatusFailed
	result.Err = err
	s.stamp(result)
	if stage != "" {
		s.recorder.IncStageResult(stage, metrics.ResultFatal)
	}
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	s.recorder.ObserveBuildDuration(result.Duration)
	return result, err
}

func (s *DefaultBuildService) cancel(ctx context.Context, result *BuildResult) (*BuildResult, error) {
	err := ctx.Err()
	result.Status = BuildStatusCancelled
	result.Err = err
	s.stamp(result)
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	return result, err
}

func (s *DefaultBuildService) stamp(result *BuildResult) {
	result.EndTime = s.now()
	result.Duration = result.EndTime.Sub(result.StartTime)
}

// finish runs the post-build side channels. None of them can fail the build.
func (s *DefaultBuildService) finish(ctx context.Context, req BuildRequest, result *BuildResult) {
	ctx = observability.WithStage(ctx, "report")
	if result.Err != nil {
		observability.ErrorContext(ctx, "Build failed", logfields.Error(result.Err))
	}

	if err := s.publisher.PublishBuild(context.WithoutCancel(ctx), result.Event()); err != nil {
		observability.WarnContext(ctx, "Failed to publish build event", logfields.Error(err))
	}

	if req.Options.ReportDir != "" {
		if err := result.Persist(req.Options.ReportDir); err != nil {
			observability.WarnContext(ctx, "Failed to persist build report", logfields.Error(err))
		}
	}

	if s.gatherer != nil && req.Config != nil && req.Config.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(req.Config.Metrics.Textfile, s.gatherer); err != nil {
			observability.WarnContext(ctx, "Failed to write metrics textfile",
				logfields.Path(req.Config.Metrics.Textfile),
				logfields.Error(err))
		}
	}
}
