// Package responses defines the JSON response types of the docserve HTTP
// API.
package responses

import "time"

// TreeEntryView is one navigation entry in a tree listing.
type TreeEntryView struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Href        string `json:"href"`
	IsDir       bool   `json:"is_dir"`
	HasChildren bool   `json:"has_children,omitempty"`
}

// TreeChildrenResponse answers a lazy tree expansion request.
type TreeChildrenResponse struct {
	Slug  string          `json:"slug"`
	Items []TreeEntryView `json:"items"`
}

// SearchResultView is one ranked search hit.
type SearchResultView struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Href    string `json:"href"`
	Snippet string `json:"snippet"`
}

// SearchResponse answers a search query.
type SearchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultView `json:"results"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status       string    `json:"status"`
	IndexRecords int       `json:"index_records"`
	Timestamp    time.Time `json:"timestamp"`
}
