package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Title       string `arg:"" help:"Article title; the file name is derived from it"`
	Description string `short:"d" help:"Front matter description"`
	Root        bool   `help:"Create a root entry without a published date"`
	Content     string `help:"Override content.directory"`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, "", n.Content)
	if err != nil {
		return err
	}
	path, err := scaffold.Write(cfg.Content.Directory, scaffold.Article{
		Title:       n.Title,
		Description: n.Description,
		Published:   time.Now(),
		Root:        n.Root,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Created %s\n", path)
	return nil
}
