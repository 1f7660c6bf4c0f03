package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/portfolio/internal/build"
	"git.home.luguber.info/inful/portfolio/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Override output.directory"`
	Content     string `help:"Override content.directory"`
	SkipScripts bool   `name:"skip-scripts" help:"Do not synchronize remote scripts"`
	ReportDir   string `name:"report-dir" help:"Write build-report.json and build-report.txt to this directory"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, b.Output, b.Content)
	if err != nil {
		PrintOutcome(g.stdout(), err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, closeFn := NewBuildService(cfg)
	defer closeFn()

	return RunBuild(ctx, svc, build.BuildRequest{
		Config: cfg,
		Options: build.BuildOptions{
			SkipScripts: b.SkipScripts,
			ReportDir:   b.ReportDir,
		},
	}, g.stdout())
}

// loadConfig reads the configuration (falling back to the built-in site) and
// applies directory overrides from flags.
func loadConfig(path, output, contentDir string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.Output.Directory = output
	}
	if contentDir != "" {
		cfg.Content.Directory = contentDir
	}
	if output != "" || contentDir != "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
