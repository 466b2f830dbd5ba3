package api

import (
	"github.com/flix/flixsite/internal/pageviews"
)

// PageSummary is one entry of GET /api/pages.
type PageSummary struct {
	Route       string `json:"route"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Cards       int    `json:"cards"`
}

// PageListResponse wraps the page listing.
type PageListResponse struct {
	Pages []PageSummary `json:"pages"`
}

// CardDTO is one rendered catalog card.
type CardDTO struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// PageDetail is the response of GET /api/pages/{route}.
type PageDetail struct {
	Route string    `json:"route"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
	Cards []CardDTO `json:"cards"`
}

// PageviewsResponse reports per-path counts for one hit kind.
type PageviewsResponse struct {
	Kind  string                `json:"kind"`
	Total int                   `json:"total"`
	Paths []pageviews.PathCount `json:"paths"`
}
