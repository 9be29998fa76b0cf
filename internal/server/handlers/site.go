package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/index"
	"git.home.luguber.info/inful/docserve/internal/server/responses"
	"git.home.luguber.info/inful/docserve/internal/sitemap"
)

// SiteHandlers serves the sitemap and health endpoints.
type SiteHandlers struct {
	builder      *doctree.Builder
	manager      *index.Manager
	baseURL      string
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewSiteHandlers creates SiteHandlers.
func NewSiteHandlers(builder *doctree.Builder, manager *index.Manager, baseURL string) *SiteHandlers {
	return &SiteHandlers{
		builder:      builder,
		manager:      manager,
		baseURL:      baseURL,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleSitemap answers GET /sitemap.xml. The sitemap is generated from a
// fresh enumeration so it never lags the corpus.
func (h *SiteHandlers) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.builder.EnumerateAllDocumentSlugs(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityError, "sitemap enumeration failed"))
		return
	}

	out, err := sitemap.Generate(h.baseURL, slugs)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "sitemap generation failed"))
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// HandleHealth answers GET /healthz.
func (h *SiteHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := responses.HealthResponse{
		Status:       "ok",
		IndexRecords: len(h.manager.Records()),
		Timestamp:    time.Now().UTC(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "failed to encode health response"))
	}
}
