package tracker

import "errors"

// ErrNoMatch reports a search that succeeded but matched nothing. It is
// deliberately distinct from a SearchError: the transport worked, there
// was simply no such train.
var ErrNoMatch = errors.New("no matching train found")

// ErrUnknownTrain reports a manual selection of an identity that is not in
// the current fleet.
var ErrUnknownTrain = errors.New("train not in current fleet")

// ErrStopped reports an operation submitted after the tracker's run loop
// has shut down. The operation was discarded without touching state.
var ErrStopped = errors.New("tracker stopped")
