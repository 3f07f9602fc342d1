// Package geo holds the coordinate and distance primitives used to rank fuel stations.
// Everything in it is pure: no I/O, no logging, no shared state.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Valid coordinate bounds in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// GeoPoint is a WGS84-compatible position in decimal degrees.
// The zero value is the point (0,0); any other value must come from NewGeoPoint
// or ParseCoordinates so the range invariant holds.
type GeoPoint struct {
	lat float64
	lng float64
}

// NewGeoPoint validates the latitude and longitude and returns the point.
// Out of range values are rejected with ErrOutOfRange, never clamped.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return GeoPoint{}, fmt.Errorf("%w: latitude %v not in [%v, %v]", ErrOutOfRange, lat, MinLatitude, MaxLatitude)
	}
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return GeoPoint{}, fmt.Errorf("%w: longitude %v not in [%v, %v]", ErrOutOfRange, lng, MinLongitude, MaxLongitude)
	}

	return GeoPoint{lat: lat, lng: lng}, nil
}

// MustGeoPoint is like NewGeoPoint but panics on invalid input.
// Intended for constants and tests.
func MustGeoPoint(lat, lng float64) GeoPoint {
	p, err := NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}

	return p
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 { return p.lat }

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 { return p.lng }

// String renders the point as "lat,lng", the same shape ParseCoordinates accepts.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.lng, 'f', -1, 64)
}

type pointJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MarshalJSON encodes the point as {"latitude":..,"longitude":..}.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{Latitude: p.lat, Longitude: p.lng})
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
