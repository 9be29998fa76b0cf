// Package doctree assembles navigation trees from the content store: the
// complete tree for static enumeration and single-level listings for
// on-demand client expansion.
package doctree

import (
	"context"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"git.home.luguber.info/inful/docserve/internal/frontmatter"
	"git.home.luguber.info/inful/docserve/internal/markdown"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

// Entry is one node of the navigation tree. IsDir tags the variant: a
// directory carries HasChildren (and, in full trees, Children); a file is a
// leaf addressing a composable document.
type Entry struct {
	Slug        slug.Slug
	Title       string
	IsDir       bool
	HasChildren bool
	Children    []Entry
}

// Builder walks the content store.
type Builder struct {
	store       store.ContentStore
	parallelism int
}

// NewBuilder creates a Builder. Sibling directory descents of the full walk
// run on a bounded pool.
func NewBuilder(st store.ContentStore) *Builder {
	return &Builder{store: st, parallelism: 8}
}

// BuildFullTree walks the whole corpus from the content root. Directories
// without at least one document descendant are pruned. Entries at each level
// are sorted by name, case-sensitive; directory-before-file display
// precedence is the caller's concern, keyed off IsDir.
func (b *Builder) BuildFullTree(ctx context.Context) ([]Entry, error) {
	return b.walk(ctx, slug.Slug{})
}

func (b *Builder) walk(ctx context.Context, s slug.Slug) ([]Entry, error) {
	children, err := b.store.ListChildren(ctx, s)
	if err != nil {
		return nil, err
	}

	// Descend sibling directories concurrently; results land in their slot
	// so ordering stays deterministic. Any error aborts the whole build.
	subtrees := make([][]Entry, len(children))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(b.parallelism)
	for i, child := range children {
		if !child.IsDir {
			continue
		}
		i, name := i, child.Name
		p.Go(func(ctx context.Context) error {
			sub, err := b.walk(ctx, s.Child(name))
			if err != nil {
				return err
			}
			subtrees[i] = sub
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(children))
	for i, child := range children {
		switch {
		case child.IsDir:
			if len(subtrees[i]) == 0 {
				continue // no document descendants
			}
			out = append(out, Entry{
				Slug:        s.Child(child.Name),
				Title:       markdown.HumanizeSegment(child.Name),
				IsDir:       true,
				HasChildren: true,
				Children:    subtrees[i],
			})
		case store.IsDocumentName(child.Name):
			name := store.DocumentName(child.Name)
			cs := s.Child(name)
			title, err := b.documentTitle(ctx, cs)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Slug: cs, Title: title})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slug.Last() < out[j].Slug.Last()
	})
	return out, nil
}

// ListOneLevel returns the immediate entries under s without descending.
// Each directory entry is probed exactly one level deep: it is listed (with
// HasChildren set) when that probe finds a document or an eligible
// subdirectory, keeping the cost proportional to the immediate children.
func (b *Builder) ListOneLevel(ctx context.Context, s slug.Slug) ([]Entry, error) {
	children, err := b.store.ListChildren(ctx, s)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(children))
	for _, child := range children {
		switch {
		case child.IsDir:
			cs := s.Child(child.Name)
			expandable, err := b.probe(ctx, cs)
			if err != nil {
				return nil, err
			}
			if !expandable {
				continue
			}
			out = append(out, Entry{
				Slug:        cs,
				Title:       markdown.HumanizeSegment(child.Name),
				IsDir:       true,
				HasChildren: true,
			})
		case store.IsDocumentName(child.Name):
			name := store.DocumentName(child.Name)
			cs := s.Child(name)
			title, err := b.documentTitle(ctx, cs)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Slug: cs, Title: title})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slug.Last() < out[j].Slug.Last()
	})
	return out, nil
}

// EnumerateAllDocumentSlugs flattens the full tree to document slugs in
// lexicographic path order. Every returned slug is independently composable.
func (b *Builder) EnumerateAllDocumentSlugs(ctx context.Context) ([]slug.Slug, error) {
	tree, err := b.BuildFullTree(ctx)
	if err != nil {
		return nil, err
	}
	var slugs []slug.Slug
	flattenFiles(tree, &slugs)
	return slugs, nil
}

func flattenFiles(entries []Entry, out *[]slug.Slug) {
	for _, e := range entries {
		if e.IsDir {
			flattenFiles(e.Children, out)
			continue
		}
		*out = append(*out, e.Slug)
	}
}

// probe looks one level into a directory for anything expandable.
func (b *Builder) probe(ctx context.Context, s slug.Slug) (bool, error) {
	children, err := b.store.ListChildren(ctx, s)
	if err != nil {
		return false, err
	}
	for _, c := range children {
		if c.IsDir || store.IsDocumentName(c.Name) {
			return true, nil
		}
	}
	return false, nil
}

// documentTitle reads a document's frontmatter title, falling back to the
// humanized last slug segment.
func (b *Builder) documentTitle(ctx context.Context, s slug.Slug) (string, error) {
	doc, err := b.store.Read(ctx, s)
	if err != nil {
		return "", err
	}
	fm, _, _, err := frontmatter.Split(doc.Text)
	if err == nil {
		if fields, perr := frontmatter.Parse(fm); perr == nil {
			if title := fields.Title(); title != "" {
				return title, nil
			}
		}
	}
	return markdown.HumanizeSegment(s.Last()), nil
}
