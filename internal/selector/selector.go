// Package selector filters and ranks fuel stations around a user location.
//
// Every function returns a fresh slice and leaves its input untouched, so the same
// feed snapshot can be shared by concurrent requests.
package selector

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
)

// ErrInvalidRadius is returned by WithinRadius for negative or non-finite radii.
var ErrInvalidRadius = errors.New("radius must be a finite non-negative number of kilometers")

// AnnotateDistances returns a copy of facilities with DistanceTo set to the distance from user.
// A nil formula means geo.Spherical(). A failure for one facility leaves its DistanceTo nil and
// is reported in the joined error; the remaining facilities are still annotated.
func AnnotateDistances(user geo.GeoPoint, facilities []models.Facility, formula geo.Formula) ([]models.Facility, error) {
	if formula == nil {
		formula = geo.Spherical()
	}

	out := make([]models.Facility, len(facilities))
	var errs []error
	for i, facility := range facilities {
		facility.DistanceTo = nil
		facility.DistanceMethod = ""

		d, err := formula.Distance(user, facility.Point)
		if err != nil {
			errs = append(errs, fmt.Errorf("facility %d (%s): %w", i, facility.TradingName, err))
			out[i] = facility
			continue
		}
		out[i] = facility.WithDistance(d.Km(), d.Method)
	}

	return out, errors.Join(errs...)
}

// WithinRadius keeps the facilities whose DistanceTo is at most radiusKm, in input order.
// Facilities without a distance are dropped. A zero radius keeps only coincident points.
func WithinRadius(facilities []models.Facility, radiusKm float64) ([]models.Facility, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radiusKm)
	}

	out := make([]models.Facility, 0, len(facilities))
	for _, facility := range facilities {
		if facility.DistanceTo != nil && *facility.DistanceTo <= radiusKm {
			out = append(out, facility)
		}
	}

	return out, nil
}

// Nearest returns the facility with the smallest DistanceTo.
// On equal distances the one earlier in the input wins. The boolean is false when
// no facility carries a distance.
func Nearest(facilities []models.Facility) (models.Facility, bool) {
	best := -1
	for i, facility := range facilities {
		if facility.DistanceTo == nil {
			continue
		}
		if best < 0 || *facility.DistanceTo < *facilities[best].DistanceTo {
			best = i
		}
	}

	if best < 0 {
		return models.Facility{}, false
	}

	return facilities[best], true
}

// NearestK returns up to k facilities ordered by ascending DistanceTo, ties in input order.
// Facilities without a distance are skipped.
func NearestK(facilities []models.Facility, k int) []models.Facility {
	withDistance := make([]models.Facility, 0, len(facilities))
	for _, facility := range facilities {
		if facility.DistanceTo != nil {
			withDistance = append(withDistance, facility)
		}
	}

	return topK(withDistance, k, func(a, b models.Facility) int {
		return cmp.Compare(*a.DistanceTo, *b.DistanceTo)
	})
}

// Cheapest returns up to k facilities ordered by ascending price, ties in input order.
func Cheapest(facilities []models.Facility, k int) []models.Facility {
	return topK(facilities, k, func(a, b models.Facility) int {
		return cmp.Compare(a.Price, b.Price)
	})
}

func topK(facilities []models.Facility, k int, compare func(a, b models.Facility) int) []models.Facility {
	if k <= 0 || len(facilities) == 0 {
		return []models.Facility{}
	}

	sorted := slices.Clone(facilities)
	slices.SortStableFunc(sorted, compare)

	return sorted[:min(k, len(sorted))]
}
