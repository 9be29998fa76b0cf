package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docserve/internal/compose"
	"git.home.luguber.info/inful/docserve/internal/config"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/logfields"
	"git.home.luguber.info/inful/docserve/internal/markdown"
	"git.home.luguber.info/inful/docserve/internal/metrics"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// pageTemplate is the minimal chrome around a rendered document. Theming is
// a render-collaborator concern; this stays deliberately plain.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}{{if .SiteTitle}} - {{.SiteTitle}}{{end}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Title       string
	SiteTitle   string
	Description string
	Body        template.HTML
}

// DocsHandlers serves composed, rendered document pages.
type DocsHandlers struct {
	composer     *compose.Composer
	site         config.SiteConfig
	recorder     metrics.Recorder
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewDocsHandlers creates DocsHandlers.
func NewDocsHandlers(composer *compose.Composer, site config.SiteConfig, recorder metrics.Recorder) *DocsHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &DocsHandlers{
		composer:     composer,
		site:         site,
		recorder:     recorder,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandlePage answers GET /docs/{slugpath...}. The empty path serves the
// reserved "home" document.
func (h *DocsHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	slugPath := r.PathValue("slugpath")
	if slugPath == "" {
		slugPath = slug.Home
	}

	s, err := slug.ParseNonRoot(slugPath)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.ValidationError("invalid document slug").WithContext("slug", slugPath))
		return
	}

	start := time.Now()
	doc, err := h.composer.Compose(r.Context(), s)
	h.recorder.ObserveComposeDuration(time.Since(start), err == nil)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, classifyComposeError(err, s))
		return
	}

	// The store identity doubles as a strong validator for the page.
	etag := `"` + doc.Identity + `"`
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	body, err := markdown.RenderHTML(doc.Body)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "markdown rendering failed"))
		return
	}

	title := doc.Metadata.Title()
	if title == "" {
		title = markdown.HumanizeSegment(s.Last())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	err = pageTemplate.Execute(w, pageData{
		Title:       title,
		SiteTitle:   h.site.Title,
		Description: doc.Metadata.Description(),
		Body:        template.HTML(body), // #nosec G203 - body is rendered from trusted corpus content
	})
	if err != nil {
		slog.Warn("Failed to write page", logfields.SlugPath(s.String()), logfields.Error(err))
	}
}

// classifyComposeError maps composition failures onto client-facing
// categories. Cycles and broken includes abort the render; they are content
// defects, never silently degraded output.
func classifyComposeError(err error, s slug.Slug) error {
	switch {
	case store.IsNotFound(err):
		return derrors.NotFoundError("document not found").
			WithContext("slug", s.String())
	case compose.IsCircularInclude(err):
		return derrors.Wrap(err, derrors.CategoryCompose, derrors.SeverityError, "circular include chain").
			WithContext("slug", s.String())
	case compose.IsInvalidInclude(err):
		return derrors.Wrap(err, derrors.CategoryCompose, derrors.SeverityError, "invalid include directive").
			WithContext("slug", s.String())
	case slug.IsInvalid(err):
		return derrors.ValidationError("invalid slug in composition").
			WithContext("slug", s.String())
	default:
		return derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityError, "composition failed").
			WithContext("slug", s.String())
	}
}
