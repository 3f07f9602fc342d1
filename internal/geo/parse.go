package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCoordinates parses a "<lat>,<lng>" string into a GeoPoint.
//
// The input is split on the first comma only, so any further comma ends up in the
// longitude half and makes it non-numeric. Each half must be a plain finite decimal;
// surrounding whitespace is ignored. Syntax problems are reported with Kind Malformed,
// range violations with Kind OutOfRange.
func ParseCoordinates(raw string) (GeoPoint, error) {
	latRaw, lngRaw, found := strings.Cut(raw, ",")
	if !found {
		return GeoPoint{}, &ParseError{
			Kind:  Malformed,
			Input: raw,
			Err:   fmt.Errorf("%w: expected \"<lat>,<lng>\"", ErrMalformed),
		}
	}

	lat, err := parseDegrees(latRaw)
	if err != nil {
		return GeoPoint{}, &ParseError{Kind: Malformed, Input: raw, Err: fmt.Errorf("latitude: %w", err)}
	}

	lng, err := parseDegrees(lngRaw)
	if err != nil {
		return GeoPoint{}, &ParseError{Kind: Malformed, Input: raw, Err: fmt.Errorf("longitude: %w", err)}
	}

	point, err := NewGeoPoint(lat, lng)
	if err != nil {
		return GeoPoint{}, &ParseError{Kind: OutOfRange, Input: raw, Err: err}
	}

	return point, nil
}

// parseDegrees accepts an optionally signed decimal with an optional exponent.
// strconv.ParseFloat alone would also let through "NaN", "Inf" and hex floats.
func parseDegrees(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrMalformed)
	}

	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, fmt.Errorf("%w: %q is not a decimal number", ErrMalformed, s)
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %q is not a finite decimal number", ErrMalformed, s)
	}

	return value, nil
}
