package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/build"
	"git.home.luguber.info/inful/portfolio/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output         string        `short:"o" help:"Override output.directory"`
	Content        string        `help:"Override content.directory"`
	Debounce       time.Duration `help:"Quiet window before a rebuild" default:"500ms"`
	ScriptInterval time.Duration `name:"script-interval" help:"Refresh remote scripts periodically (0 disables)" default:"0s"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, w.Output, w.Content)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, closeFn := NewBuildService(cfg)
	defer closeFn()

	watcher := watch.New(svc, build.BuildRequest{Config: cfg},
		watch.WithDebounce(w.Debounce),
		watch.WithScriptInterval(w.ScriptInterval),
		watch.WithReporter(func(_ *build.BuildResult, err error) {
			PrintOutcome(g.stdout(), err)
		}))
	return watcher.Run(ctx)
}
