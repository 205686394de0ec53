package geojson

import (
	"fmt"

	"github.com/juju/errors"
)

// ShapeError describes a structural violation of the GeoJSON grammar: a
// wrong coordinate nesting depth, an unrecognized type tag, a missing
// required member or a ring below the minimum length.
type ShapeError struct {
	message string
}

// Error implements error.
func (e *ShapeError) Error() string { return e.message }

// NewShapeError returns a ShapeError with a formatted message.
func NewShapeError(format string, args ...interface{}) error {
	return &ShapeError{message: fmt.Sprintf(format, args...)}
}

// IsShapeError reports whether the cause of err is a ShapeError.
func IsShapeError(err error) bool {
	_, ok := errors.Cause(err).(*ShapeError)
	return ok
}

// UnclosedRingError is returned when a polygon ring's first and last
// positions differ and ring auto-closure is disabled.
type UnclosedRingError struct {
	First, Last Position
}

// Error implements error.
func (e *UnclosedRingError) Error() string {
	return fmt.Sprintf("ring is not closed: first position %v differs from last position %v", e.First, e.Last)
}

// IsUnclosedRingError reports whether the cause of err is an
// UnclosedRingError.
func IsUnclosedRingError(err error) bool {
	_, ok := errors.Cause(err).(*UnclosedRingError)
	return ok
}

// CoordinateArityError is returned when 2D and 3D coordinates are mixed
// within a single geometry.
type CoordinateArityError struct {
	Want, Got int
}

// Error implements error.
func (e *CoordinateArityError) Error() string {
	return fmt.Sprintf("mixed coordinate arity: got a %d-component position in a geometry with %d-component positions", e.Got, e.Want)
}

// IsCoordinateArityError reports whether the cause of err is a
// CoordinateArityError.
func IsCoordinateArityError(err error) bool {
	_, ok := errors.Cause(err).(*CoordinateArityError)
	return ok
}
