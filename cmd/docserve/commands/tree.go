package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/service"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// TreeCmd prints the navigation tree. Without a slug it prints the full
// corpus; with one it lists that directory one level deep.
type TreeCmd struct {
	Slug       string `arg:"" optional:"" help:"Directory slug to list (defaults to the corpus root)"`
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
}

func (t *TreeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, t.ContentDir)
	if err != nil {
		return err
	}

	fs, err := store.NewFSStore(cfg.ContentDir)
	if err != nil {
		return err
	}
	builder := doctree.NewBuilder(fs)
	ctx := context.Background()

	if t.Slug != "" {
		entries, err := service.NewTreeService(builder).GetChildren(ctx, t.Slug)
		if err != nil {
			return err
		}
		printEntries(entries, 0)
		return nil
	}

	entries, err := builder.BuildFullTree(ctx)
	if err != nil {
		return err
	}
	printEntries(entries, 0)
	return nil
}

func printEntries(entries []doctree.Entry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		if e.IsDir {
			fmt.Fprintf(os.Stdout, "%s%s/\n", indent, e.Slug.Last())
			printEntries(e.Children, depth+1)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s%s (%s)\n", indent, e.Slug.Last(), e.Title)
	}
}
