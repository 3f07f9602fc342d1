package geo

// Ellipsoid describes an oblate reference ellipsoid.
// A is the semi-major axis and B the semi-minor axis, both in meters; F is the flattening.
type Ellipsoid struct {
	A float64
	B float64
	F float64
}

// NewEllipsoid builds an ellipsoid from its semi-major axis (meters) and inverse flattening.
func NewEllipsoid(semiMajor, inverseFlattening float64) Ellipsoid {
	f := 1 / inverseFlattening

	return Ellipsoid{A: semiMajor, B: semiMajor * (1 - f), F: f}
}

var (
	// WGS84 is the reference ellipsoid used by GPS and by the fuel feed coordinates.
	WGS84 = NewEllipsoid(6378137, 298.257223563)
	// GRS80 differs from WGS84 by about 0.1 mm in the semi-minor axis.
	GRS80 = NewEllipsoid(6378137, 298.257222101)
)
