package tracker

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/train-tracker/upstream"
)

// FleetAPI is the slice of the live-location client the tracker depends on.
type FleetAPI interface {
	FetchFleet(ctx context.Context) ([]upstream.Train, error)
	SearchFleet(ctx context.Context, query string) ([]upstream.Train, error)
}

// Options configures a Tracker.
type Options struct {
	// PollInterval is the fleet poll cadence. Defaults to 5 seconds.
	PollInterval time.Duration
	// AbsenceTolerance bounds how long a selected train may be missing
	// from snapshots before the selection is cleared. Zero retains the
	// last-known record indefinitely.
	AbsenceTolerance time.Duration
	// OnChange is invoked from the run loop with a fresh view after every
	// applied update that actually changed state. Optional.
	OnChange func(StateView)
}

// event is one serialized state mutation. fn reports whether it changed
// anything; done is closed once it has been applied.
type event struct {
	fn   func() bool
	done chan struct{}
}

// Tracker reconciles fleet snapshots, search results and manual selection
// into one consistent state. All writes are applied by the Run loop, one
// at a time.
type Tracker struct {
	api              FleetAPI
	pollInterval     time.Duration
	absenceTolerance time.Duration
	onChange         func(StateView)

	mu    sync.RWMutex
	state fleetState

	events  chan event
	stopped chan struct{}

	now func() time.Time
}

// New creates a Tracker. Run must be called for polling and for search or
// selection results to be applied.
func New(api FleetAPI, opts Options) *Tracker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	return &Tracker{
		api:              api,
		pollInterval:     opts.PollInterval,
		absenceTolerance: opts.AbsenceTolerance,
		onChange:         opts.OnChange,
		state:            newFleetState(),
		events:           make(chan event),
		stopped:          make(chan struct{}),
		now:              time.Now,
	}
}

// Run drives the poll timer and applies queued updates until ctx is
// cancelled. Polls are executed inline, so a slow fetch delays the next
// tick rather than overlapping it, and no two updates ever interleave.
func (t *Tracker) Run(ctx context.Context) {
	defer close(t.stopped)
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			t.poll(ctx)
			timer.Reset(t.pollInterval)
		case ev := <-t.events:
			if ev.fn() {
				t.emit()
			}
			close(ev.done)
		}
	}
}

// View returns a copy of the current state.
func (t *Tracker) View() StateView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.view()
}

// Search resolves a free-text query against the fleet and selects the
// first match. A blank query is a local no-op returning
// upstream.ErrEmptyQuery. Zero matches returns ErrNoMatch; transport
// failure returns the *upstream.SearchError. Neither disturbs the fleet
// or an existing selection.
func (t *Tracker) Search(ctx context.Context, query string) (upstream.Train, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return upstream.Train{}, upstream.ErrEmptyQuery
	}
	results, err := t.api.SearchFleet(ctx, query)
	if err != nil {
		if errors.Is(err, upstream.ErrEmptyQuery) {
			return upstream.Train{}, err
		}
		_ = t.submit(ctx, func() bool { return t.recordSearchFailure(err) })
		return upstream.Train{}, err
	}
	if len(results) == 0 {
		_ = t.submit(ctx, func() bool { return t.recordSearchFailure(ErrNoMatch) })
		return upstream.Train{}, ErrNoMatch
	}
	// First match wins; remaining candidates are discarded.
	found := results[0]
	if err := t.submit(ctx, func() bool { return t.applySelection(found) }); err != nil {
		return upstream.Train{}, err
	}
	return found, nil
}

// Select manually selects a train already present in the current fleet.
func (t *Tracker) Select(ctx context.Context, id upstream.TrainID) (upstream.Train, error) {
	var tr upstream.Train
	var selErr error
	err := t.submit(ctx, func() bool {
		t.mu.RLock()
		cur, ok := t.state.trains[id]
		t.mu.RUnlock()
		if !ok {
			selErr = ErrUnknownTrain
			return false
		}
		tr = cur
		return t.applySelection(cur)
	})
	if err != nil {
		return upstream.Train{}, err
	}
	return tr, selErr
}

// Deselect clears the active selection.
func (t *Tracker) Deselect(ctx context.Context) error {
	return t.submit(ctx, func() bool {
		t.mu.Lock()
		defer t.mu.Unlock()
		s := &t.state
		if s.selectedID == "" && s.selected == nil {
			return false
		}
		s.selectedID = ""
		s.selected = nil
		s.selectedMissingSince = time.Time{}
		return true
	})
}

// submit queues fn for the run loop and waits until it has been applied.
// After the loop has shut down the update is discarded with ErrStopped.
func (t *Tracker) submit(ctx context.Context, fn func() bool) error {
	ev := event{fn: fn, done: make(chan struct{})}
	select {
	case t.events <- ev:
	case <-t.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ev.done:
		return nil
	case <-t.stopped:
		select {
		case <-ev.done:
			return nil
		default:
		}
		return ErrStopped
	}
}

func (t *Tracker) poll(ctx context.Context) {
	trains, err := t.api.FetchFleet(ctx)
	if err != nil {
		// Keep the stale fleet; the next tick retries.
		log.Printf("fleet poll error: %v", err)
		return
	}
	if ctx.Err() != nil {
		// Consumer tore down while the fetch was in flight.
		return
	}
	if t.applySnapshot(trains) {
		t.emit()
	}
}

// applySnapshot replaces the fleet wholesale with the fetched snapshot and
// re-binds the active selection by identity. It reports whether anything
// observable changed, so replaying an identical snapshot stays silent.
func (t *Tracker) applySnapshot(trains []upstream.Train) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make(map[upstream.TrainID]upstream.Train, len(trains))
	for _, tr := range trains {
		next[tr.ID] = tr
	}
	changed := !fleetEqual(t.state.trains, next)
	t.state.trains = next
	t.state.lastRefreshedAt = t.now()

	if t.rebindSelection() {
		changed = true
	}
	return changed
}

// rebindSelection updates the selection against the current fleet. Caller
// holds the write lock.
func (t *Tracker) rebindSelection() bool {
	s := &t.state
	if s.selectedID == "" {
		return false
	}
	if tr, ok := s.trains[s.selectedID]; ok {
		changed := s.selected == nil || !trainEqual(*s.selected, tr)
		cp := tr
		s.selected = &cp
		s.selectedMissingSince = time.Time{}
		return changed
	}
	// The selected train dropped out of this snapshot. Keep showing its
	// last-known record instead of vanishing; a later snapshot that
	// reports the id again re-binds as usual.
	if s.selectedMissingSince.IsZero() {
		s.selectedMissingSince = t.now()
		return false
	}
	if t.absenceTolerance > 0 && t.now().Sub(s.selectedMissingSince) >= t.absenceTolerance {
		s.selectedID = ""
		s.selected = nil
		s.selectedMissingSince = time.Time{}
		return true
	}
	return false
}

// applySelection binds the selection to tr and clears any search failure.
func (t *Tracker) applySelection(tr upstream.Train) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.state
	changed := s.selectedID != tr.ID || s.selected == nil ||
		!trainEqual(*s.selected, tr) || s.searchErr != nil
	s.selectedID = tr.ID
	cp := tr
	s.selected = &cp
	s.selectedMissingSince = time.Time{}
	s.searchErr = nil
	return changed
}

// recordSearchFailure stores the failure reason without touching the fleet
// or the selection.
func (t *Tracker) recordSearchFailure(err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.state.searchErr
	t.state.searchErr = err
	if prev == nil {
		return true
	}
	return prev.Error() != err.Error()
}

func (t *Tracker) emit() {
	if t.onChange == nil {
		return
	}
	t.onChange(t.View())
}
