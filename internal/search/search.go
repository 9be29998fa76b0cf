// Package search builds the in-memory search index and answers substring
// queries over it. The index is derived wholesale from the content tree and
// is never mutated in place; content changes mean a full rebuild.
package search

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	"git.home.luguber.info/inful/docserve/internal/frontmatter"
	"git.home.luguber.info/inful/docserve/internal/markdown"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

const (
	// MaxResults caps how many matches a query returns.
	MaxResults = 8

	// snippetRadius is the character window kept on each side of the first
	// query occurrence.
	snippetRadius = 80

	// fallbackSnippetLen is used when the query matched title or path only.
	fallbackSnippetLen = 160

	ellipsis = "…"
)

// Record is one searchable document: display title, slug path, and the body
// with all markup stripped to plain words.
type Record struct {
	Slug      slug.Slug
	Title     string
	PlainText string
}

// Match pairs a matching record with a context snippet.
type Match struct {
	Record  Record
	Snippet string
}

// Indexer builds records from the content store via the tree builder.
type Indexer struct {
	store store.ContentStore
	tree  *doctree.Builder
}

// NewIndexer creates an Indexer.
func NewIndexer(st store.ContentStore, tree *doctree.Builder) *Indexer {
	return &Indexer{store: st, tree: tree}
}

// BuildIndex produces one Record per document in the corpus, in the
// enumeration order of the tree. Any store error aborts the build.
func (ix *Indexer) BuildIndex(ctx context.Context) ([]Record, error) {
	slugs, err := ix.tree.EnumerateAllDocumentSlugs(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(slugs))
	for _, s := range slugs {
		doc, err := ix.store.Read(ctx, s)
		if err != nil {
			return nil, err
		}

		title := markdown.HumanizeSegment(s.Last())
		body := doc.Text
		if fm, rest, _, serr := frontmatter.Split(doc.Text); serr == nil {
			body = rest
			if fields, perr := frontmatter.Parse(fm); perr == nil {
				if t := fields.Title(); t != "" {
					title = t
				}
			}
		}

		records = append(records, Record{
			Slug:      s,
			Title:     title,
			PlainText: markdown.PlainText(body),
		})
	}
	return records, nil
}

// Query matches rawQuery as a case-insensitive substring over each record's
// title, path, and plain text. Result order follows record order (stable,
// not relevance-ranked), capped at MaxResults. An empty normalized query
// returns nothing.
func Query(records []Record, rawQuery string) []Match {
	q := strings.ToLower(strings.TrimSpace(rawQuery))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, r := range records {
		haystack := strings.ToLower(r.Title + " " + r.Slug.String() + " " + r.PlainText)
		if !strings.Contains(haystack, q) {
			continue
		}
		matches = append(matches, Match{Record: r, Snippet: snippet(r.PlainText, q)})
		if len(matches) == MaxResults {
			break
		}
	}
	return matches
}

// snippet extracts a window around the first occurrence of q inside plain
// text, marking truncated ends with an ellipsis. When the occurrence is in
// title or path only, the head of the text is returned instead.
func snippet(plain, q string) string {
	idx := foldIndex(plain, q)
	if idx < 0 {
		if len(plain) <= fallbackSnippetLen {
			return plain
		}
		return plain[:runeFloor(plain, fallbackSnippetLen)] + ellipsis
	}

	start := runeFloor(plain, idx-snippetRadius)
	end := runeCeil(plain, idx+len(q)+snippetRadius)

	out := plain[start:end]
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(plain) {
		out += ellipsis
	}
	return out
}

// foldIndex returns the byte offset in s of the first case-insensitive
// occurrence of q (already lowercase), or -1. Offsets are computed against s
// itself; lowering s first would shift offsets for characters whose lowercase
// form has a different byte length.
func foldIndex(s, q string) int {
	if q == "" {
		return 0
	}
	for i := 0; i < len(s); {
		if matchFoldPrefix(s[i:], q) {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1
}

func matchFoldPrefix(s, q string) bool {
	for _, qr := range q {
		if s == "" {
			return false
		}
		r, size := utf8.DecodeRuneInString(s)
		if unicode.ToLower(r) != qr {
			return false
		}
		s = s[size:]
	}
	return true
}

// runeFloor clamps a byte offset into [0,len] and moves it left onto a rune
// boundary.
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil clamps a byte offset into [0,len] and moves it right onto a rune
// boundary.
func runeCeil(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
