package commands

import (
	"context"
	"os"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/sitemap"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// SitemapCmd prints the sitemap XML for the corpus to stdout.
type SitemapCmd struct {
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
	BaseURL    string `name:"base-url" default:"" help:"Base URL for sitemap entries (overrides config)"`
}

func (s *SitemapCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.ContentDir)
	if err != nil {
		return err
	}
	baseURL := cfg.Site.BaseURL
	if s.BaseURL != "" {
		baseURL = s.BaseURL
	}

	fs, err := store.NewFSStore(cfg.ContentDir)
	if err != nil {
		return err
	}

	slugs, err := doctree.NewBuilder(fs).EnumerateAllDocumentSlugs(context.Background())
	if err != nil {
		return err
	}

	out, err := sitemap.Generate(baseURL, slugs)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}
