// Package markdown renders composed document bodies and extracts searchable
// plain text from them.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var engine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a Markdown body (frontmatter already removed, includes
// already expanded) to HTML.
func RenderHTML(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PlainText strips all markup syntax from a Markdown body, collapsing
// whitespace to single spaces. Code block and inline code content is kept
// (only the fence/backtick markers are stripped); inline HTML is reduced to
// its text content.
func PlainText(body []byte) string {
	root := engine.Parser().Parse(gmtext.NewReader(body))

	var parts []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Text:
			parts = append(parts, string(node.Segment.Value(body)))
		case *gmast.String:
			parts = append(parts, string(node.Value))
		case *gmast.AutoLink:
			parts = append(parts, string(node.URL(body)))
		case *gmast.CodeBlock:
			parts = append(parts, linesText(node, body))
		case *gmast.FencedCodeBlock:
			parts = append(parts, linesText(node, body))
		case *gmast.RawHTML:
			parts = append(parts, htmlText(segmentsText(node.Segments, body)))
			return gmast.WalkSkipChildren, nil
		case *gmast.HTMLBlock:
			parts = append(parts, htmlText(linesText(node, body)))
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// HumanizeSegment turns a slug segment like "getting-started" into a display
// title like "Getting Started". Used when a document carries no frontmatter
// title.
func HumanizeSegment(segment string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return cases.Title(language.English).String(words)
}

func linesText(n interface{ Lines() *gmtext.Segments }, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func segmentsText(segments *gmtext.Segments, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// htmlText reduces an HTML fragment to its text content.
func htmlText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var buf bytes.Buffer
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return buf.String()
		}
		if tt == html.TextToken {
			buf.Write(tokenizer.Text())
			buf.WriteByte(' ')
		}
	}
}
