// Package commands implements the portfolio command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries process wide state shared by every command.
type Global struct {
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"portfolio.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Build the site into the output directory (default)"`
	Watch WatchCmd `cmd:"" help:"Build, then rebuild whenever content changes"`
	Init  InitCmd  `cmd:"" help:"Write the default configuration file"`
	New   NewCmd   `cmd:"" help:"Create a new article in the content directory"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
