package models

import "github.com/UnknownOlympus/servo/internal/geo"

// Facility is a fuel station from the price feed.
// DistanceTo is filled in by the selector, the travel fields only by the journey provider.
type Facility struct {
	Point       geo.GeoPoint `json:"point"`
	Price       float64      `json:"price"`                 // Price in cents per litre.
	Brand       string       `json:"brand,omitempty"`       // Brand is the fuel brand, e.g. "Caltex".
	TradingName string       `json:"tradingName,omitempty"` // TradingName is the station name.
	Address     string       `json:"address,omitempty"`     // Address is the street address.
	Location    string       `json:"location,omitempty"`    // Location is the suburb.
	Date        string       `json:"date,omitempty"`        // Date the price applies to (YYYY-MM-DD).

	DistanceTo     *float64   `json:"distanceTo,omitempty"`     // DistanceTo is the distance to the user in km.
	DistanceMethod geo.Method `json:"distanceMethod,omitempty"` // DistanceMethod tags the formula used for DistanceTo.

	TravelDistanceText *string `json:"travelDistance,omitempty"` // TravelDistanceText is the driving distance, e.g. "12.3 km".
	TravelDurationText *string `json:"travelDuration,omitempty"` // TravelDurationText is the driving time, e.g. "16 mins".
}

// WithDistance returns a copy of f carrying the given distance.
func (f Facility) WithDistance(km float64, method geo.Method) Facility {
	f.DistanceTo = &km
	f.DistanceMethod = method

	return f
}

// WithJourney returns a copy of f carrying the travel texts from j.
func (f Facility) WithJourney(j Journey) Facility {
	distance, duration := j.DistanceText, j.DurationText
	f.TravelDistanceText = &distance
	f.TravelDurationText = &duration

	return f
}
