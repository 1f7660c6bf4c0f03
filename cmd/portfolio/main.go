package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/portfolio/cmd/portfolio/commands"
	"git.home.luguber.info/inful/portfolio/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("portfolio"),
		kong.Description("Build the portfolio site from Markdown articles."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Stdout: os.Stdout}
	if err := kctx.Run(global, cli); err != nil {
		os.Exit(commands.ExitCode(err, cli.Verbose))
	}
}
