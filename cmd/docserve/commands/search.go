package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/search"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// SearchCmd builds an index over the corpus and runs one query against it.
type SearchCmd struct {
	Query      string `arg:"" help:"Search query"`
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
}

func (s *SearchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.ContentDir)
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

	matches := search.Query(records, s.Query)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches.")
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%s\t%s\n\t%s\n", m.Record.Slug, m.Record.Title, m.Snippet)
	}
	return nil
}
