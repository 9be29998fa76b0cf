package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docserve/internal/compose"
	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/index"
	"git.home.luguber.info/inful/docserve/internal/metrics"
	"git.home.luguber.info/inful/docserve/internal/search"
	"git.home.luguber.info/inful/docserve/internal/server/httpserver"
	"git.home.luguber.info/inful/docserve/internal/service"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// ServeCmd runs the HTTP server over a content directory.
type ServeCmd struct {
	ContentDir string `short:"d" name:"content-dir" default:"" help:"Content directory (overrides config)"`
	Listen     string `short:"l" name:"listen" default:"" help:"Listen address (overrides config)"`
	Metrics    bool   `name:"metrics" help:"Expose Prometheus metrics at /metrics"`
	NoWatch    bool   `name:"no-watch" help:"Disable filesystem watching for index rebuilds"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.ContentDir)
	if err != nil {
		return err
	}
	if s.Listen != "" {
		cfg.Server.ListenAddr = s.Listen
	}
	if s.NoWatch {
		cfg.Index.Watch = false
	}

	fs, err := store.NewFSStore(cfg.ContentDir)
	if err != nil {
		return err
	}

	var opts httpserver.Options
	if s.Metrics {
		recorder := metrics.NewPrometheusRecorder(nil)
		opts.Recorder = recorder
		opts.MetricsHandler = recorder.Handler()
	}

	builder := doctree.NewBuilder(fs)
	manager := index.NewManager(search.NewIndexer(fs, builder), opts.Recorder)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A failed first build is not fatal; the watcher or scheduler rebuilds
	// once the content is fixed.
	if err := manager.Rebuild(ctx); err != nil {
		slog.Warn("Initial index build failed", "error", err)
	}

	if cfg.Index.Watch {
		go func() {
			if err := manager.Watch(ctx, cfg.ContentDir); err != nil && ctx.Err() == nil {
				slog.Error("Content watcher stopped", "error", err)
			}
		}()
	}

	if cfg.Index.RebuildInterval > 0 {
		scheduler, err := index.NewScheduler(manager, cfg.Index.RebuildInterval)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Failed to stop index scheduler", "error", err)
			}
		}()
	}

	srv := httpserver.New(cfg, compose.New(fs), service.NewTreeService(builder), builder, manager, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	slog.Info("Shutdown signal received, draining requests...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	return srv.Shutdown(stopCtx)
}
