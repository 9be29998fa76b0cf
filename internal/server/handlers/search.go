package handlers

import (
	"log/slog"
	"net/http"

	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/index"
	"git.home.luguber.info/inful/docserve/internal/server/responses"
)

// SearchHandlers serves the free-text search endpoint.
type SearchHandlers struct {
	manager      *index.Manager
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewSearchHandlers creates SearchHandlers over the index manager.
func NewSearchHandlers(manager *index.Manager) *SearchHandlers {
	return &SearchHandlers{
		manager:      manager,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleSearch answers GET /api/search?q=<query>. An empty query yields an
// empty result list, not an error.
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	matches := h.manager.Query(query)

	resp := responses.SearchResponse{
		Query:   query,
		Results: make([]responses.SearchResultView, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Results = append(resp.Results, responses.SearchResultView{
			Slug:    m.Record.Slug.String(),
			Title:   m.Record.Title,
			Href:    m.Record.Slug.ToHref(),
			Snippet: m.Snippet,
		})
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "failed to encode search response"))
	}
}
