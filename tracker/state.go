package tracker

import (
	"errors"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/train-tracker/upstream"
)

// StateView is a read-only copy of the tracker's state, safe to hand to
// renderers and encoders after the tracker has moved on.
type StateView struct {
	Trains          []upstream.Train `json:"trains"`
	SelectedID      upstream.TrainID `json:"selectedId,omitempty"`
	Selected        *upstream.Train  `json:"selected,omitempty"`
	LastRefreshedAt time.Time        `json:"lastRefreshedAt"`
	SearchError     string           `json:"searchError,omitempty"`
	NoMatch         bool             `json:"noMatch,omitempty"`
}

// fleetState is the tracker-owned mutable state. All writes happen on the
// run loop; the tracker's mutex guards it for concurrent readers.
type fleetState struct {
	trains map[upstream.TrainID]upstream.Train

	// selectedID identifies the selection; selected holds the last-known
	// record for it, retained when the id drops out of a snapshot.
	selectedID           upstream.TrainID
	selected             *upstream.Train
	selectedMissingSince time.Time

	lastRefreshedAt time.Time
	searchErr       error
}

func newFleetState() fleetState {
	return fleetState{trains: make(map[upstream.TrainID]upstream.Train)}
}

// view builds a StateView copy. Trains are sorted by id for stable output.
func (s *fleetState) view() StateView {
	v := StateView{
		Trains:          make([]upstream.Train, 0, len(s.trains)),
		SelectedID:      s.selectedID,
		LastRefreshedAt: s.lastRefreshedAt,
	}
	for _, tr := range s.trains {
		v.Trains = append(v.Trains, tr)
	}
	sort.Slice(v.Trains, func(i, j int) bool { return v.Trains[i].ID < v.Trains[j].ID })
	if s.selected != nil {
		sel := *s.selected
		v.Selected = &sel
	}
	if s.searchErr != nil {
		if errors.Is(s.searchErr, ErrNoMatch) {
			// No-match is an outcome, not a failure.
			v.NoMatch = true
		} else {
			v.SearchError = s.searchErr.Error()
		}
	}
	return v
}

// trainEqual compares two records field by field, route included.
func trainEqual(a, b upstream.Train) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Number != b.Number ||
		a.Position != b.Position || a.SpeedKmh != b.SpeedKmh ||
		a.HeadingDeg != b.HeadingDeg || a.LastStop != b.LastStop ||
		a.NextStop != b.NextStop || a.DistanceToNextKm != b.DistanceToNextKm ||
		a.TotalDistanceKm != b.TotalDistanceKm || a.DistanceCovered != b.DistanceCovered ||
		a.DelayMinutes != b.DelayMinutes || a.Status != b.Status ||
		a.EstimatedArrival != b.EstimatedArrival || a.ProgressPercent != b.ProgressPercent {
		return false
	}
	if len(a.Route) != len(b.Route) {
		return false
	}
	for i := range a.Route {
		if a.Route[i] != b.Route[i] {
			return false
		}
	}
	return true
}

// fleetEqual reports whether two fleets hold identical records.
func fleetEqual(a, b map[upstream.TrainID]upstream.Train) bool {
	if len(a) != len(b) {
		return false
	}
	for id, tr := range a {
		other, ok := b[id]
		if !ok || !trainEqual(tr, other) {
			return false
		}
	}
	return true
}
