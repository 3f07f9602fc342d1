package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a coordinate string is not a "<lat>,<lng>" pair of finite decimals.
	ErrMalformed = errors.New("malformed coordinates")
	// ErrOutOfRange is returned when a latitude or longitude falls outside the valid range.
	ErrOutOfRange = errors.New("coordinates out of range")

	// ErrLambdaOverflow is returned when the ellipsoidal iteration diverges (|λ| > π).
	ErrLambdaOverflow = errors.New("geodesic lambda exceeded pi")
	// ErrDidNotConverge is returned when the ellipsoidal iteration hits its iteration cap.
	ErrDidNotConverge = errors.New("geodesic iteration did not converge")
)

// ParseErrorKind classifies a coordinate parse failure.
type ParseErrorKind int

const (
	// Malformed means the input is not syntactically a coordinate pair.
	Malformed ParseErrorKind = iota + 1
	// OutOfRange means the input parsed but violates the latitude/longitude bounds.
	OutOfRange
)

func (k ParseErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// ParseError describes why a raw coordinate string was rejected.
type ParseError struct {
	Kind  ParseErrorKind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse coordinates %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GeodesyErrorKind classifies an ellipsoidal distance failure.
type GeodesyErrorKind int

const (
	// LambdaOverflow means the auxiliary longitude left its valid range.
	LambdaOverflow GeodesyErrorKind = iota + 1
	// DidNotConverge means the iteration cap was reached.
	DidNotConverge
)

func (k GeodesyErrorKind) String() string {
	switch k {
	case LambdaOverflow:
		return "lambda_overflow"
	case DidNotConverge:
		return "did_not_converge"
	default:
		return "unknown"
	}
}

// GeodesyError reports an ellipsoidal computation that produced no reliable answer
// for a specific pair of points. Callers are expected to fall back to the spherical formula.
type GeodesyError struct {
	Kind       GeodesyErrorKind
	Iterations int
	From, To   GeoPoint
}

func (e *GeodesyError) Error() string {
	return fmt.Sprintf("ellipsoidal distance %s -> %s after %d iterations: %v", e.From, e.To, e.Iterations, e.Unwrap())
}

func (e *GeodesyError) Unwrap() error {
	switch e.Kind {
	case LambdaOverflow:
		return ErrLambdaOverflow
	case DidNotConverge:
		return ErrDidNotConverge
	default:
		return nil
	}
}
