// Package formatter projects tracker state into display fields.
//
// This package is organized into:
// - display.go: status color classification and timestamp rendering
//
// Everything here is a pure function of its input; the tracker state is
// never read or written.
package formatter
