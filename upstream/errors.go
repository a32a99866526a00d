package upstream

import "errors"

// ErrEmptyQuery is returned when a search query is blank after trimming.
// The request is rejected locally; no network call is made.
var ErrEmptyQuery = errors.New("search query is empty")

// FetchError reports a failed fleet poll (transport error or non-success
// status). Callers must keep their existing fleet on a FetchError; stale
// data is preferred over a blank state.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return "fleet fetch failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SearchError reports a failed search call. It is distinct from an empty
// result set, which is a successful response with zero matches.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string { return "search failed: " + e.Err.Error() }
func (e *SearchError) Unwrap() error { return e.Err }
