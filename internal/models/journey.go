package models

// Journey is a driving route estimate between two points.
type Journey struct {
	DistanceText    string // DistanceText is the human readable distance, e.g. "12.3 km".
	DurationText    string // DurationText is the human readable travel time, e.g. "16 mins".
	DistanceMeters  int    // DistanceMeters is the route length.
	DurationSeconds int    // DurationSeconds is the travel time.
	Status          string // Status reported by the provider, "OK" on success.
}

// JourneyStatusOK marks a journey that carries usable values.
const JourneyStatusOK = "OK"
