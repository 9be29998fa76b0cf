// Package handlers contains the HTTP handlers of the docserve API and page
// surface.
package handlers

import (
	"log/slog"
	"net/http"

	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/metrics"
	"git.home.luguber.info/inful/docserve/internal/server/responses"
	"git.home.luguber.info/inful/docserve/internal/service"
)

// TreeHandlers serves the lazy navigation expansion endpoint.
type TreeHandlers struct {
	tree         *service.TreeService
	recorder     metrics.Recorder
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewTreeHandlers creates TreeHandlers.
func NewTreeHandlers(tree *service.TreeService, recorder metrics.Recorder) *TreeHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &TreeHandlers{
		tree:         tree,
		recorder:     recorder,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleChildren answers GET /api/tree/children?slug=<path>. No slug means
// the content root.
func (h *TreeHandlers) HandleChildren(w http.ResponseWriter, r *http.Request) {
	slugPath := r.URL.Query().Get("slug")

	entries, err := h.tree.GetChildren(r.Context(), slugPath)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.recorder.IncTreeExpansion()

	resp := responses.TreeChildrenResponse{
		Slug:  slugPath,
		Items: make([]responses.TreeEntryView, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Items = append(resp.Items, responses.TreeEntryView{
			Slug:        e.Slug.String(),
			Title:       e.Title,
			Href:        e.Slug.ToHref(),
			IsDir:       e.IsDir,
			HasChildren: e.HasChildren,
		})
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "failed to encode tree response"))
	}
}
