// Package compose expands inclusion directives recursively, turning one
// document plus everything it references into a single composed body.
//
// Directive forms understood here:
//
//	{{include:path/of/document}}   spliced in place with the target's body
//	{{template:key args}}          validated, then left for the renderer
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docserve/internal/frontmatter"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

var (
	includePattern  = regexp.MustCompile(`\{\{include:([^{}]*)\}\}`)
	templatePattern = regexp.MustCompile(`\{\{template:([A-Za-z0-9_-]+)(?:\s+[^{}]*)?\}\}`)
)

// allowedTemplates is the fixed set of inline template keys the render
// collaborator recognizes. Anything else is a content authoring error.
var allowedTemplates = map[string]struct{}{
	"image":   {},
	"figure":  {},
	"youtube": {},
}

// ComposedDocument is a document with every inclusion directive resolved.
// Metadata is always the root document's own frontmatter; included
// documents' frontmatter is discarded during splicing.
type ComposedDocument struct {
	Slug     slug.Slug
	Body     []byte
	Metadata frontmatter.Fields

	// Identity fingerprints the composition input: the root frontmatter
	// and the fully expanded body. It changes whenever the root or any
	// included document changes, so it is usable as an ETag for the
	// rendered page. For a document without includes it equals the store
	// identity of the document itself.
	Identity string
}

// CircularIncludeError indicates an inclusion chain that revisits one of its
// own ancestors.
type CircularIncludeError struct {
	Slug slug.Slug
}

func (e *CircularIncludeError) Error() string {
	return fmt.Sprintf("circular include: %q revisits its own inclusion chain", e.Slug.String())
}

// InvalidIncludeError indicates a malformed inclusion directive.
type InvalidIncludeError struct {
	In        slug.Slug
	Directive string
	Cause     error
}

func (e *InvalidIncludeError) Error() string {
	return fmt.Sprintf("invalid include %s in %q: %v", e.Directive, e.In.String(), e.Cause)
}

func (e *InvalidIncludeError) Unwrap() error { return e.Cause }

// UnknownTemplateError indicates an inline template key outside the allowed
// set.
type UnknownTemplateError struct {
	In  slug.Slug
	Key string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template key %q in %q", e.Key, e.In.String())
}

// IsCircularInclude reports whether err is a CircularIncludeError.
func IsCircularInclude(err error) bool {
	var ce *CircularIncludeError
	return errors.As(err, &ce)
}

// IsInvalidInclude reports whether err is an InvalidIncludeError or an
// UnknownTemplateError.
func IsInvalidInclude(err error) bool {
	var ie *InvalidIncludeError
	if errors.As(err, &ie) {
		return true
	}
	var te *UnknownTemplateError
	return errors.As(err, &te)
}

// Composer resolves documents through a ContentStore.
type Composer struct {
	store store.ContentStore
}

// New creates a Composer backed by st.
func New(st store.ContentStore) *Composer {
	return &Composer{store: st}
}

// Compose produces the fully expanded document at s. Every composition
// request starts with a fresh visited set; nothing is shared across calls.
func (c *Composer) Compose(ctx context.Context, s slug.Slug) (*ComposedDocument, error) {
	return c.compose(ctx, s, map[string]struct{}{})
}

func (c *Composer) compose(ctx context.Context, s slug.Slug, visited map[string]struct{}) (*ComposedDocument, error) {
	if _, seen := visited[s.String()]; seen {
		return nil, &CircularIncludeError{Slug: s}
	}

	doc, err := c.store.Read(ctx, s)
	if err != nil {
		// A missing include target is a content error; propagate untouched.
		return nil, err
	}

	fm, body, _, err := frontmatter.Split(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("frontmatter of %q: %w", s.String(), err)
	}
	fields, err := frontmatter.Parse(fm)
	if err != nil {
		return nil, fmt.Errorf("frontmatter of %q: %w", s.String(), err)
	}

	if err := validateTemplates(body, s); err != nil {
		return nil, err
	}

	expanded, err := c.expand(ctx, body, s, visited)
	if err != nil {
		return nil, err
	}

	return &ComposedDocument{
		Slug:     s,
		Body:     expanded,
		Metadata: fields,
		Identity: mdfp.CalculateFingerprintFromParts(string(fm), string(expanded)),
	}, nil
}

// expand splices each include target's composed body into place. Each
// directive recurses with its own copy of the visited set extended by the
// current slug: sibling includes of the same document are legal, an include
// pointing back up its own ancestor chain is not.
func (c *Composer) expand(ctx context.Context, body []byte, current slug.Slug, visited map[string]struct{}) ([]byte, error) {
	matches := includePattern.FindAllSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body, nil
	}

	var buf bytes.Buffer
	last := 0
	for _, m := range matches {
		buf.Write(body[last:m[0]])

		directive := string(body[m[0]:m[1]])
		ref := strings.TrimSpace(string(body[m[2]:m[3]]))
		target, err := slug.ParseNonRoot(ref)
		if err != nil {
			return nil, &InvalidIncludeError{In: current, Directive: directive, Cause: err}
		}

		branch := make(map[string]struct{}, len(visited)+1)
		for k := range visited {
			branch[k] = struct{}{}
		}
		branch[current.String()] = struct{}{}

		child, err := c.compose(ctx, target, branch)
		if err != nil {
			return nil, err
		}
		buf.Write(child.Body)

		last = m[1]
	}
	buf.Write(body[last:])
	return buf.Bytes(), nil
}

func validateTemplates(body []byte, s slug.Slug) error {
	for _, m := range templatePattern.FindAllSubmatch(body, -1) {
		key := string(m[1])
		if _, ok := allowedTemplates[key]; !ok {
			return &UnknownTemplateError{In: s, Key: key}
		}
	}
	return nil
}
