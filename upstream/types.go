package upstream

import (
	"encoding/json"
	"strconv"
)

// TrainID is a stable train identity. The API reports it as either a JSON
// number or a string; both decode to the same canonical string form.
type TrainID string

// UnmarshalJSON accepts both "7" and 7 on the wire.
func (id *TrainID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = TrainID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TrainID(n.String())
	return nil
}

// MarshalJSON renders numeric identities back as numbers.
func (id TrainID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Position is a geographic coordinate
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteStop is one scheduled stop on a train's route, ordered by
// increasing distance from the origin.
type RouteStop struct {
	StopName      string  `json:"stopName"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	ScheduledTime string  `json:"scheduledTime"`
	DistanceKm    float64 `json:"distanceKm"`
}

// Train is one reported position record from the live-location API.
//
// ID is the stable identity: the same physical train always reports the
// same ID across snapshots. Name and Number are display fields only and
// must never be used for re-identification.
type Train struct {
	ID               TrainID     `json:"id"`
	Name             string      `json:"name"`
	Number           string      `json:"number"`
	Position         Position    `json:"position"`
	SpeedKmh         float64     `json:"speedKmh"`
	HeadingDeg       float64     `json:"headingDeg"`
	LastStop         string      `json:"lastStop"`
	NextStop         string      `json:"nextStop"`
	DistanceToNextKm float64     `json:"distanceToNextKm"`
	TotalDistanceKm  float64     `json:"totalDistanceKm"`
	DistanceCovered  float64     `json:"distanceCoveredKm"`
	DelayMinutes     int         `json:"delayMinutes"`
	Status           string      `json:"status"`
	EstimatedArrival string      `json:"estimatedArrival"`
	ProgressPercent  float64     `json:"progressPercent"`
	Route            []RouteStop `json:"route"`
}

// fleetResponse is the wire envelope of the fleet endpoint. A missing or
// malformed trains field decodes to nil and is treated as an empty fleet.
type fleetResponse struct {
	Trains []Train `json:"trains"`
}

// searchResponse is the wire envelope of the search endpoint. Empty
// results is a valid, non-error response.
type searchResponse struct {
	Results []Train `json:"results"`
}
