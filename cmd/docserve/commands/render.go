package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/docserve/internal/compose"
	"git.home.luguber.info/inful/docserve/internal/markdown"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// RenderCmd composes one document, resolving its includes, and writes the
// result to stdout.
type RenderCmd struct {
	Slug       string `arg:"" help:"Slug path of the document to render (e.g. guide/intro)"`
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
	HTML       bool   `name:"html" help:"Render to HTML instead of composed markdown"`
}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, r.ContentDir)
	if err != nil {
		return err
	}

	s, err := slug.ParseNonRoot(r.Slug)
	if err != nil {
		return err
	}

	fs, err := store.NewFSStore(cfg.ContentDir)
	if err != nil {
		return err
	}

	doc, err := compose.New(fs).Compose(context.Background(), s)
	if err != nil {
		return err
	}

	out := doc.Body
	if r.HTML {
		if out, err = markdown.RenderHTML(doc.Body); err != nil {
			return fmt.Errorf("render %s: %w", s, err)
		}
	}

	_, err = os.Stdout.Write(out)
	return err
}
