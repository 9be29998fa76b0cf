// Package sitemap emits the XML sitemap over every composable document slug.
package sitemap

import (
	"encoding/xml"
	"strings"

	"git.home.luguber.info/inful/docserve/internal/slug"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Generate renders the sitemap for slugs. baseURL has any trailing slash
// trimmed before hrefs are appended.
func Generate(baseURL string, slugs []slug.Slug) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, 0, len(slugs)),
	}
	for _, s := range slugs {
		set.URLs = append(set.URLs, urlEntry{Loc: base + s.ToHref()})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
