package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderHTML_BasicMarkdown(t *testing.T) {
	out, err := RenderHTML([]byte("# Hello\n\nSome *text*.\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Hello</h1>")
	require.Contains(t, string(out), "<em>text</em>")
}

func TestPlainText_StripsHeadingAndEmphasisMarkers(t *testing.T) {
	got := PlainText([]byte("# Heading\n\nSome **bold** and _italic_ text.\n"))
	require.Equal(t, "Heading Some bold and italic text.", got)
}

func TestPlainText_StripsLinkAndImageSyntax(t *testing.T) {
	got := PlainText([]byte("See [the guide](/guide/intro) and ![alt text](/img.png).\n"))
	require.Equal(t, "See the guide and alt text .", got)
}

func TestPlainText_KeepsCodeContentDropsFences(t *testing.T) {
	got := PlainText([]byte("Run:\n\n```sh\ndocserve serve\n```\n\nand `docserve index` too.\n"))
	require.NotContains(t, got, "```")
	require.NotContains(t, got, "`")
	require.Contains(t, got, "docserve serve")
	require.Contains(t, got, "docserve index")
}

func TestPlainText_CollapsesWhitespace(t *testing.T) {
	got := PlainText([]byte("a\n\n\nb\t c\n"))
	require.Equal(t, "a b c", got)
}

func TestPlainText_StripsInlineHTML(t *testing.T) {
	got := PlainText([]byte("before <span class=\"x\">inside</span> after\n"))
	require.Contains(t, got, "inside")
	require.NotContains(t, got, "<span")
}

func TestHumanizeSegment(t *testing.T) {
	require.Equal(t, "Getting Started", HumanizeSegment("getting-started"))
	require.Equal(t, "Api Reference", HumanizeSegment("api_reference"))
	require.Equal(t, "Home", HumanizeSegment("home"))
}
