// Package tracker provides the fleet state synchronization core.
//
// A Tracker polls the live-location API on a fixed cadence and reconciles
// each fleet snapshot with the locally held state: the snapshot replaces
// the fleet wholesale, and an active selection is re-bound to the new
// record with the same identity. Search and manual selection feed the same
// state through a single serialized apply loop, so concurrent results
// never interleave partial writes.
//
// A selection whose train is missing from a snapshot keeps its last-known
// record rather than vanishing; how long that is tolerated is configurable.
package tracker
