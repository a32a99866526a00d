// Package upstream handles fetching train snapshots from the live-location API.
//
// It exposes two calls:
//   - FetchFleet: the full current fleet, polled periodically
//   - SearchFleet: free-text search returning candidate trains
//
// The main type is Client which wraps the HTTP transport and normalizes
// empty or malformed responses into empty fleets.
package upstream
