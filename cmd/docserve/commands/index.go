package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/search"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// IndexCmd builds the search index once and prints its records, useful for
// inspecting what a running server would serve.
type IndexCmd struct {
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
}

func (i *IndexCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, i.ContentDir)
	if err != nil {
		return err
	}

	fs, err := store.NewFSStore(cfg.ContentDir)
	if err != nil {
		return err
	}

	records, err := search.NewIndexer(fs, doctree.NewBuilder(fs)).BuildIndex(context.Background())
	if err != nil {
		return err
	}

	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%d chars\n", r.Slug, r.Title, len(r.PlainText))
	}
	fmt.Fprintf(os.Stdout, "%d documents indexed\n", len(records))
	return nil
}
