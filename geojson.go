// Package geojson implements the RFC7946 geometry grammar as an immutable
// in-memory value tree, together with the structural algorithms that operate
// on it: ring winding normalization, antimeridian cutting, bounding box
// computation, coordinate precision rounding and generic traversal.
//
// All values are treated as immutable after construction; every operation
// that changes a value returns a new tree and leaves its input untouched,
// so independent trees may be used concurrently without locking.
//
// For the GeoJSON RFC specification see:
//
//	https://tools.ietf.org/html/rfc7946
package geojson

import (
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("geojson")

// A Position is a single coordinate: longitude, latitude and an optional
// elevation. Valid positions have two or three finite components. Longitude
// is logically periodic with period 360 but is stored as given; no
// normalization happens on construction.
type Position []float64

// Lon returns the longitude component.
func (p Position) Lon() float64 { return p[0] }

// Lat returns the latitude component.
func (p Position) Lat() float64 { return p[1] }

// Equals reports whether p and q have identical components.
func (p Position) Equals(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func (p Position) clone() Position {
	q := make(Position, len(p))
	copy(q, p)
	return q
}

// Object is implemented by every GeoJSON entity: the seven geometry
// variants plus Feature and FeatureCollection. The variant set is closed;
// operations over it use exhaustive type switches.
type Object interface {
	// Type returns the GeoJSON type name, e.g. "Point".
	Type() string

	// Validate checks the construction invariants of the value and
	// everything nested inside it.
	Validate() error

	// geojsonObject provides no functionality - it restricts
	// implementations to this package.
	geojsonObject()
}

// Geometry is implemented by the seven geometry variants. It is used to
// provide type safety for inputs into geometry-only operations such as the
// Feature geometry member.
type Geometry interface {
	Object

	// geojsonGeometry provides no functionality - it separates geometries
	// from Feature and FeatureCollection.
	geojsonGeometry()
}

// CRS is a coordinate reference system annotation. It has no effect on any
// geometric invariant or algorithm; it is carried through transformations
// and optionally written on output.
type CRS struct {
	Type       string
	Properties map[string]interface{}
}

// DefaultCRS returns longitude and latitude on the WGS84 ellipsoid, the
// coordinate reference system RFC7946 assumes when none is given.
func DefaultCRS() *CRS {
	return &CRS{
		Type:       "name",
		Properties: map[string]interface{}{"name": "urn:ogc:def:crs:OGC:1.3:CRS84"},
	}
}
