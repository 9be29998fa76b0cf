// Package httpserver wires the docserve handlers into one HTTP server.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"git.home.luguber.info/inful/docserve/internal/compose"
	"git.home.luguber.info/inful/docserve/internal/config"
	"git.home.luguber.info/inful/docserve/internal/doctree"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/index"
	"git.home.luguber.info/inful/docserve/internal/metrics"
	"git.home.luguber.info/inful/docserve/internal/server/handlers"
	smw "git.home.luguber.info/inful/docserve/internal/server/middleware"
	"git.home.luguber.info/inful/docserve/internal/service"
)

// Options carries the optional server collaborators.
type Options struct {
	// Recorder receives request metrics; nil means noop.
	Recorder metrics.Recorder

	// MetricsHandler, when set, is exposed at /metrics.
	MetricsHandler http.Handler
}

// Server manages the HTTP endpoints: document pages, tree expansion, search,
// sitemap, health, metrics.
type Server struct {
	cfg  *config.Config
	opts Options

	httpServer *http.Server
	mchain     func(http.Handler) http.Handler

	treeHandlers   *handlers.TreeHandlers
	searchHandlers *handlers.SearchHandlers
	docsHandlers   *handlers.DocsHandlers
	siteHandlers   *handlers.SiteHandlers
}

// New constructs the server wiring.
func New(cfg *config.Config, composer *compose.Composer, tree *service.TreeService,
	builder *doctree.Builder, manager *index.Manager, opts Options) *Server {

	s := &Server{
		cfg:            cfg,
		opts:           opts,
		treeHandlers:   handlers.NewTreeHandlers(tree, opts.Recorder),
		searchHandlers: handlers.NewSearchHandlers(manager),
		docsHandlers:   handlers.NewDocsHandlers(composer, cfg.Site, opts.Recorder),
		siteHandlers:   handlers.NewSiteHandlers(builder, manager, cfg.Site.BaseURL),
	}
	s.mchain = smw.Chain(slog.Default(), derrors.NewHTTPErrorAdapter(slog.Default()), opts.Recorder)
	return s
}

// Handler returns the routed, middleware-wrapped handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tree/children", s.treeHandlers.HandleChildren)
	mux.HandleFunc("GET /api/search", s.searchHandlers.HandleSearch)
	mux.HandleFunc("GET /docs/{slugpath...}", s.docsHandlers.HandlePage)
	mux.HandleFunc("GET /sitemap.xml", s.siteHandlers.HandleSitemap)
	mux.HandleFunc("GET /healthz", s.siteHandlers.HandleHealth)
	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}
	mux.Handle("GET /{$}", http.RedirectHandler("/docs/", http.StatusMovedPermanently))

	return s.mchain(mux)
}

// Start binds the listener and serves until Shutdown. Binding failures
// surface immediately instead of inside the serve goroutine.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.ListenAddr)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryRuntime, derrors.SeverityFatal, "failed to bind listen address").
			WithContext("addr", s.cfg.Server.ListenAddr)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server terminated", "error", err)
		}
	}()

	slog.Info("HTTP server listening", "addr", ln.Addr().String())
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
