// Package config loads and validates the docserve configuration: a YAML
// file, optional .env files, and DOCSERVE_* environment overrides, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	// ContentDir is the root of the read-only content corpus.
	ContentDir string `yaml:"content_dir"`

	Server ServerConfig `yaml:"server"`
	Site   SiteConfig   `yaml:"site"`
	Index  IndexConfig  `yaml:"index"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SiteConfig holds presentation metadata handed to the render and sitemap
// collaborators.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// IndexConfig controls search index rebuilds.
type IndexConfig struct {
	// Watch enables filesystem-notification driven rebuilds.
	Watch bool `yaml:"watch"`

	// RebuildInterval is the periodic fallback rebuild cadence; zero
	// disables the scheduler.
	RebuildInterval time.Duration `yaml:"rebuild_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ContentDir: "./content",
		Server: ServerConfig{
			ListenAddr:   ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Site: SiteConfig{
			Title: "Documentation",
		},
		Index: IndexConfig{
			Watch:           true,
			RebuildInterval: 15 * time.Minute,
		},
	}
}

// Load reads the configuration file at path, layering defaults, .env files,
// and environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied config path
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for operator mistakes.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir must not be empty")
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if c.Index.RebuildInterval < 0 {
		return fmt.Errorf("index.rebuild_interval must not be negative")
	}
	return nil
}

// loadEnvFiles loads .env then .env.local, first hit wins. Existing process
// environment variables are never overwritten.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", path)
			return
		}
	}
}

// applyEnvOverrides layers DOCSERVE_* variables over the file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCSERVE_CONTENT_DIR"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("DOCSERVE_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("DOCSERVE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
}
