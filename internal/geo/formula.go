package geo

import (
	"errors"
	"fmt"
)

// Method tags which formula produced a distance. The two formulas are not
// interchangeable for precision-sensitive comparisons.
type Method string

const (
	MethodSpherical   Method = "spherical"
	MethodEllipsoidal Method = "ellipsoidal"
)

// ErrUnknownFormula is returned by FormulaByName for unsupported names.
var ErrUnknownFormula = errors.New("unknown distance formula")

// Distance is a computed distance tagged with the method that produced it.
type Distance struct {
	Meters float64
	Method Method
}

// Km returns the distance in kilometers.
func (d Distance) Km() float64 { return d.Meters / 1000 }

// Formula computes the distance between two points.
// Implementations are pure and safe for concurrent use.
type Formula interface {
	Distance(a, b GeoPoint) (Distance, error)
	Method() Method
}

type sphericalFormula struct{}

// Spherical returns the haversine formula on a sphere of EarthMeanRadiusKm. It never fails.
func Spherical() Formula { return sphericalFormula{} }

func (sphericalFormula) Distance(a, b GeoPoint) (Distance, error) {
	return Distance{Meters: SphericalKm(a, b) * 1000, Method: MethodSpherical}, nil
}

func (sphericalFormula) Method() Method { return MethodSpherical }

type ellipsoidalFormula struct {
	ellipsoid Ellipsoid
}

// Ellipsoidal returns Vincenty's inverse solution on the given ellipsoid.
// Failures surface as *GeodesyError.
func Ellipsoidal(e Ellipsoid) Formula { return ellipsoidalFormula{ellipsoid: e} }

func (f ellipsoidalFormula) Distance(a, b GeoPoint) (Distance, error) {
	meters, err := VincentyMeters(a, b, f.ellipsoid)
	if err != nil {
		return Distance{}, err
	}

	return Distance{Meters: meters, Method: MethodEllipsoidal}, nil
}

func (ellipsoidalFormula) Method() Method { return MethodEllipsoidal }

type fallbackFormula struct {
	primary Formula
}

// WithSphericalFallback wraps a formula so that a *GeodesyError for a pair is
// answered with the spherical distance instead. The returned Distance keeps
// MethodSpherical so callers can tell a fallback happened.
func WithSphericalFallback(primary Formula) Formula {
	return fallbackFormula{primary: primary}
}

func (f fallbackFormula) Distance(a, b GeoPoint) (Distance, error) {
	d, err := f.primary.Distance(a, b)
	var gerr *GeodesyError
	if errors.As(err, &gerr) {
		return Spherical().Distance(a, b)
	}

	return d, err
}

func (f fallbackFormula) Method() Method { return f.primary.Method() }

// FormulaByName maps a configuration value to a formula.
// "ellipsoidal" uses WGS84 with spherical fallback.
func FormulaByName(name string) (Formula, error) {
	switch Method(name) {
	case MethodSpherical, "":
		return Spherical(), nil
	case MethodEllipsoidal:
		return WithSphericalFallback(Ellipsoidal(WGS84)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormula, name)
	}
}
