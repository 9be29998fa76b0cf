package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docserve/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docserve.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve the content corpus over HTTP"`
	Index   IndexCmd   `cmd:"" help:"Build the search index once and print its records"`
	Render  RenderCmd  `cmd:"" help:"Compose and render a single document to stdout"`
	Tree    TreeCmd    `cmd:"" help:"Print the navigation tree of the corpus"`
	Search  SearchCmd  `cmd:"" help:"Search the corpus from the command line"`
	Sitemap SitemapCmd `cmd:"" help:"Print the sitemap XML for the corpus"`
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

// loadConfig loads the configuration file named by the root flags, letting an
// explicit --content-dir override win over the file value.
func loadConfig(root *CLI, contentDir string) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	return cfg, nil
}
