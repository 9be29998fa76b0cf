// Package service exposes the navigation façade used by the lazily-expanding
// tree UI: parse the requested slug, list one level, translate store errors
// into client-facing classifications.
package service

import (
	"context"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// TreeService answers "list children of slug X" requests.
type TreeService struct {
	builder *doctree.Builder
}

// NewTreeService creates a TreeService over builder.
func NewTreeService(builder *doctree.Builder) *TreeService {
	return &TreeService{builder: builder}
}

// GetChildren lists the immediate tree entries under slugPath. An empty path
// denotes the content root. Invalid and non-directory slugs come back as
// validation errors, missing directories as not_found; both carry the
// offending slug in their context.
func (t *TreeService) GetChildren(ctx context.Context, slugPath string) ([]doctree.Entry, error) {
	s, err := slug.Parse(slugPath)
	if err != nil {
		return nil, derrors.ValidationError("invalid tree slug").
			WithContext("slug", slugPath)
	}

	entries, err := t.builder.ListOneLevel(ctx, s)
	if err != nil {
		switch {
		case store.IsNotFound(err):
			return nil, derrors.NotFoundError("no such directory").
				WithContext("slug", s.String())
		case store.IsNotDirectory(err):
			return nil, derrors.ValidationError("slug addresses a document, not a directory").
				WithContext("slug", s.String())
		default:
			return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityError, "tree listing failed")
		}
	}
	return entries, nil
}
