// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingResolver    = errors.New("lifecycle: path resolver is required")
	ErrMissingTitleSlot   = errors.New("lifecycle: title slot is required")
	ErrMissingTracker     = errors.New("lifecycle: tracker is required")
	ErrOutboundNotAllowed = errors.New("outbound target not allowed")
)
