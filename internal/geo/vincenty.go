package geo

import "math"

const (
	vincentyTolerance     = 1e-12
	vincentyMaxIterations = 1000
)

// VincentyMeters solves the inverse geodesic problem on ellipsoid e with Vincenty's
// iteration and returns the distance between a and b in meters.
//
// When sin²σ vanishes before the first update the points are either coincident
// (including one pole written with two longitudes) or exactly antipodal, and cos σ
// decides which. A *GeodesyError
// is returned when λ leaves its valid range (LambdaOverflow) or the iteration cap is
// hit (DidNotConverge); in both cases no distance is returned.
func VincentyMeters(a, b GeoPoint, e Ellipsoid) (float64, error) {
	f := e.F
	phi1 := toRadians(a.lat)
	phi2 := toRadians(b.lat)
	L := toRadians(b.lng - a.lng)

	tanU1 := (1 - f) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - f) * math.Tan(phi2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	antipodal := math.Abs(L) > math.Pi/2 || math.Abs(phi2-phi1) > math.Pi/2

	lambda := L
	sigma, sinSigma, cosSigma := 0.0, 0.0, 1.0
	if antipodal {
		sigma, cosSigma = math.Pi, -1
	}
	cos2SigmaM, cosSqAlpha := 1.0, 1.0

	iterations := 0
	for {
		sinLambda, cosLambda := math.Sincos(lambda)
		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSqSigma := t1*t1 + t2*t2
		if math.Abs(sinSqSigma) < 1e-24 {
			if iterations == 0 {
				sinSigma = 0
				sigma, cosSigma = 0, 1
				if sinU1*sinU2+cosU1*cosU2*cosLambda < 0 {
					sigma, cosSigma = math.Pi, -1
				}
			}
			break
		}

		sinSigma = math.Sqrt(sinSqSigma)
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			// equatorial line
			cos2SigmaM = 0
		}
		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))

		prev := lambda
		lambda = L + (1-C)*f*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		iterations++

		check := math.Abs(lambda)
		if antipodal {
			check -= math.Pi
		}
		if check > math.Pi {
			return 0, &GeodesyError{Kind: LambdaOverflow, Iterations: iterations, From: a, To: b}
		}
		if math.Abs(lambda-prev) <= vincentyTolerance {
			break
		}
		if iterations >= vincentyMaxIterations {
			return 0, &GeodesyError{Kind: DidNotConverge, Iterations: iterations, From: a, To: b}
		}
	}

	uSq := cosSqAlpha * (e.A*e.A - e.B*e.B) / (e.B * e.B)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return e.B * A * (sigma - deltaSigma), nil
}
