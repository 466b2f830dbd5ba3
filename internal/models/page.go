// Package models defines the domain types shared by the site packages.
package models

import "strings"

// PageMetadata is the document metadata a page writes when it is displayed.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Location is the logical location of a displayed page.
type Location struct {
	BasePath string `json:"base_path"`
	Fragment string `json:"fragment,omitempty"`
}

// String joins the base path and fragment. A non-empty fragment always
// carries its leading '#'.
func (l Location) String() string {
	if l.Fragment == "" || l.Fragment == "#" {
		return l.BasePath
	}
	if strings.HasPrefix(l.Fragment, "#") {
		return l.BasePath + l.Fragment
	}
	return l.BasePath + "#" + l.Fragment
}

// AnalyticsEvent is a single pageview handed to the analytics collaborator.
type AnalyticsEvent struct {
	Path string `json:"path"`
}

// NewAnalyticsEvent builds the pageview event for loc.
func NewAnalyticsEvent(loc Location) AnalyticsEvent {
	return AnalyticsEvent{Path: loc.String()}
}
