package geojson

import (
	"math"
	"reflect"

	"github.com/juju/errors"
)

// Point is an implementation of the GeoJSON "Point" type.
type Point struct {
	Coordinates Position
	CRS         *CRS
	BBox        []float64
}

// MultiPoint is an implementation of the GeoJSON "MultiPoint" type.
type MultiPoint struct {
	Coordinates []Position
	CRS         *CRS
	BBox        []float64
}

// LineString is an implementation of the GeoJSON "LineString" type.
type LineString struct {
	Coordinates []Position
	CRS         *CRS
	BBox        []float64
}

// MultiLineString is an implementation of the GeoJSON "MultiLineString"
// type.
type MultiLineString struct {
	Coordinates [][]Position
	CRS         *CRS
	BBox        []float64
}

// Polygon is an implementation of the GeoJSON "Polygon" type. The first
// ring is the exterior; any further rings are interior holes. Every ring
// is closed: its first and last positions are equal.
type Polygon struct {
	Coordinates [][]Position
	CRS         *CRS
	BBox        []float64
}

// MultiPolygon is an implementation of the GeoJSON "MultiPolygon" type.
type MultiPolygon struct {
	Coordinates [][][]Position
	CRS         *CRS
	BBox        []float64
}

// GeometryCollection is an implementation of the GeoJSON
// "GeometryCollection" type. Members may be of any geometry variant,
// including nested collections.
type GeometryCollection struct {
	Geometries []Geometry
	CRS        *CRS
	BBox       []float64
}

// Feature is an implementation of the GeoJSON "Feature" type. Geometry may
// be nil, and ID holds any JSON value or nil.
type Feature struct {
	Geometry   Geometry
	Properties map[string]interface{}
	ID         interface{}
	CRS        *CRS
	BBox       []float64
}

// FeatureCollection is an implementation of the GeoJSON
// "FeatureCollection" type.
type FeatureCollection struct {
	Features []*Feature
	CRS      *CRS
	BBox     []float64
}

func (*Point) geojsonObject()              {}
func (*MultiPoint) geojsonObject()         {}
func (*LineString) geojsonObject()         {}
func (*MultiLineString) geojsonObject()    {}
func (*Polygon) geojsonObject()            {}
func (*MultiPolygon) geojsonObject()       {}
func (*GeometryCollection) geojsonObject() {}
func (*Feature) geojsonObject()            {}
func (*FeatureCollection) geojsonObject()  {}

func (*Point) geojsonGeometry()              {}
func (*MultiPoint) geojsonGeometry()         {}
func (*LineString) geojsonGeometry()         {}
func (*MultiLineString) geojsonGeometry()    {}
func (*Polygon) geojsonGeometry()            {}
func (*MultiPolygon) geojsonGeometry()       {}
func (*GeometryCollection) geojsonGeometry() {}

// Type implements Object.
func (*Point) Type() string { return "Point" }

// Type implements Object.
func (*MultiPoint) Type() string { return "MultiPoint" }

// Type implements Object.
func (*LineString) Type() string { return "LineString" }

// Type implements Object.
func (*MultiLineString) Type() string { return "MultiLineString" }

// Type implements Object.
func (*Polygon) Type() string { return "Polygon" }

// Type implements Object.
func (*MultiPolygon) Type() string { return "MultiPolygon" }

// Type implements Object.
func (*GeometryCollection) Type() string { return "GeometryCollection" }

// Type implements Object.
func (*Feature) Type() string { return "Feature" }

// Type implements Object.
func (*FeatureCollection) Type() string { return "FeatureCollection" }

// NewPoint returns a Point at the given position.
func NewPoint(coordinates Position) (*Point, error) {
	p := &Point{Coordinates: coordinates.clone()}
	if err := p.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}

// NewMultiPoint returns a MultiPoint over the given positions.
func NewMultiPoint(coordinates []Position) (*MultiPoint, error) {
	m := &MultiPoint{Coordinates: clonePositions(coordinates)}
	if err := m.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// NewLineString returns a LineString through the given positions, which
// must number at least two and not all coincide.
func NewLineString(coordinates []Position) (*LineString, error) {
	l := &LineString{Coordinates: clonePositions(coordinates)}
	if err := l.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return l, nil
}

// NewMultiLineString returns a MultiLineString over the given coordinate
// sequences, each of which must be valid as a LineString.
func NewMultiLineString(coordinates [][]Position) (*MultiLineString, error) {
	m := &MultiLineString{Coordinates: cloneLines(coordinates)}
	if err := m.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// NewPolygon returns a Polygon with the given rings, the first being the
// exterior. An open ring is closed by appending its first position.
func NewPolygon(rings [][]Position) (*Polygon, error) {
	p := &Polygon{Coordinates: closeRings(cloneLines(rings))}
	if err := p.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}

// NewStrictPolygon is like NewPolygon but fails with an UnclosedRingError
// when any ring's first and last positions differ, instead of closing the
// ring.
func NewStrictPolygon(rings [][]Position) (*Polygon, error) {
	p := &Polygon{Coordinates: cloneLines(rings)}
	if err := p.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}

// NewMultiPolygon returns a MultiPolygon over the given ring sequences,
// each of which must be valid as a Polygon. Open rings are closed by
// appending their first position.
func NewMultiPolygon(polygons [][][]Position) (*MultiPolygon, error) {
	cloned := clonePolygons(polygons)
	for i := range cloned {
		cloned[i] = closeRings(cloned[i])
	}
	m := &MultiPolygon{Coordinates: cloned}
	if err := m.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// NewStrictMultiPolygon is like NewMultiPolygon but fails with an
// UnclosedRingError on any open ring.
func NewStrictMultiPolygon(polygons [][][]Position) (*MultiPolygon, error) {
	m := &MultiPolygon{Coordinates: clonePolygons(polygons)}
	if err := m.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// NewGeometryCollection returns a GeometryCollection over the given
// members.
func NewGeometryCollection(geometries ...Geometry) (*GeometryCollection, error) {
	gc := &GeometryCollection{Geometries: append([]Geometry{}, geometries...)}
	if err := gc.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return gc, nil
}

// NewFeature returns a Feature wrapping geometry, which may be nil.
func NewFeature(geometry Geometry, properties map[string]interface{}, id interface{}) (*Feature, error) {
	props := make(map[string]interface{}, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	f := &Feature{Geometry: geometry, Properties: props, ID: id}
	if err := f.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return f, nil
}

// NewFeatureCollection returns a FeatureCollection over the given
// features.
func NewFeatureCollection(features ...*Feature) (*FeatureCollection, error) {
	fc := &FeatureCollection{Features: append([]*Feature{}, features...)}
	if err := fc.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return fc, nil
}

// Validate implements Object.
func (p *Point) Validate() error {
	arity := 0
	return validatePosition(p.Coordinates, &arity)
}

// Validate implements Object.
func (m *MultiPoint) Validate() error {
	arity := 0
	for _, c := range m.Coordinates {
		if err := validatePosition(c, &arity); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Validate implements Object.
func (l *LineString) Validate() error {
	arity := 0
	return validateLine(l.Coordinates, &arity)
}

// Validate implements Object.
func (m *MultiLineString) Validate() error {
	arity := 0
	for _, line := range m.Coordinates {
		if err := validateLine(line, &arity); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Validate implements Object.
func (p *Polygon) Validate() error {
	arity := 0
	return validateRings(p.Coordinates, &arity)
}

// Validate implements Object.
func (m *MultiPolygon) Validate() error {
	arity := 0
	for _, rings := range m.Coordinates {
		if err := validateRings(rings, &arity); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Validate implements Object.
func (gc *GeometryCollection) Validate() error {
	for i, g := range gc.Geometries {
		if g == nil {
			return NewShapeError("geometry collection member %d is nil", i)
		}
		if err := g.Validate(); err != nil {
			return errors.Annotatef(err, "geometry collection member %d", i)
		}
	}
	return nil
}

// Validate implements Object.
func (f *Feature) Validate() error {
	if f.Geometry == nil {
		return nil
	}
	if err := f.Geometry.Validate(); err != nil {
		return errors.Annotatef(err, "feature geometry")
	}
	return nil
}

// Validate implements Object.
func (fc *FeatureCollection) Validate() error {
	for i, f := range fc.Features {
		if f == nil {
			return NewShapeError("feature collection member %d is nil", i)
		}
		if err := f.Validate(); err != nil {
			return errors.Annotatef(err, "feature collection member %d", i)
		}
	}
	return nil
}

// validatePosition checks component count and finiteness, threading the
// arity seen first through *arity so mixed 2D/3D geometries are caught.
func validatePosition(p Position, arity *int) error {
	if len(p) != 2 && len(p) != 3 {
		return NewShapeError("position has %d components, want 2 or 3", len(p))
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewShapeError("position component %v is not finite", v)
		}
	}
	if *arity == 0 {
		*arity = len(p)
	} else if *arity != len(p) {
		return &CoordinateArityError{Want: *arity, Got: len(p)}
	}
	return nil
}

func validateLine(coordinates []Position, arity *int) error {
	if len(coordinates) < 2 {
		return NewShapeError("line string has %d positions, want at least 2", len(coordinates))
	}
	degenerate := true
	for _, c := range coordinates {
		if err := validatePosition(c, arity); err != nil {
			return errors.Trace(err)
		}
		if !c.Equals(coordinates[0]) {
			degenerate = false
		}
	}
	if degenerate {
		return NewShapeError("line string degenerates to the single point %v", coordinates[0])
	}
	return nil
}

func validateRings(rings [][]Position, arity *int) error {
	if len(rings) == 0 {
		return NewShapeError("polygon has no rings")
	}
	for _, ring := range rings {
		if len(ring) < 4 {
			return NewShapeError("polygon ring has %d positions, want at least 4", len(ring))
		}
		for _, c := range ring {
			if err := validatePosition(c, arity); err != nil {
				return errors.Trace(err)
			}
		}
		if !ring[0].Equals(ring[len(ring)-1]) {
			return &UnclosedRingError{First: ring[0].clone(), Last: ring[len(ring)-1].clone()}
		}
	}
	return nil
}

// closeRings appends the first position of any open ring, in place.
func closeRings(rings [][]Position) [][]Position {
	for i, ring := range rings {
		if len(ring) > 0 && !ring[0].Equals(ring[len(ring)-1]) {
			rings[i] = append(ring, ring[0].clone())
		}
	}
	return rings
}

func clonePositions(coordinates []Position) []Position {
	out := make([]Position, len(coordinates))
	for i, c := range coordinates {
		out[i] = c.clone()
	}
	return out
}

func cloneLines(lines [][]Position) [][]Position {
	out := make([][]Position, len(lines))
	for i, line := range lines {
		out[i] = clonePositions(line)
	}
	return out
}

func clonePolygons(polygons [][][]Position) [][][]Position {
	out := make([][][]Position, len(polygons))
	for i, rings := range polygons {
		out[i] = cloneLines(rings)
	}
	return out
}

// Equal reports whether a and b are the same variant with structurally
// equal coordinate trees, in order. Equality is not invariant under
// winding reversal or antimeridian splitting: those produce distinct
// values for the same spatial object. The BBox annotation is ignored; the
// CRS annotation is compared.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Point:
		bv, ok := b.(*Point)
		return ok && av.Coordinates.Equals(bv.Coordinates) && crsEqual(av.CRS, bv.CRS)
	case *MultiPoint:
		bv, ok := b.(*MultiPoint)
		return ok && positionsEqual(av.Coordinates, bv.Coordinates) && crsEqual(av.CRS, bv.CRS)
	case *LineString:
		bv, ok := b.(*LineString)
		return ok && positionsEqual(av.Coordinates, bv.Coordinates) && crsEqual(av.CRS, bv.CRS)
	case *MultiLineString:
		bv, ok := b.(*MultiLineString)
		return ok && linesEqual(av.Coordinates, bv.Coordinates) && crsEqual(av.CRS, bv.CRS)
	case *Polygon:
		bv, ok := b.(*Polygon)
		return ok && linesEqual(av.Coordinates, bv.Coordinates) && crsEqual(av.CRS, bv.CRS)
	case *MultiPolygon:
		bv, ok := b.(*MultiPolygon)
		if !ok || len(av.Coordinates) != len(bv.Coordinates) || !crsEqual(av.CRS, bv.CRS) {
			return false
		}
		for i := range av.Coordinates {
			if !linesEqual(av.Coordinates[i], bv.Coordinates[i]) {
				return false
			}
		}
		return true
	case *GeometryCollection:
		bv, ok := b.(*GeometryCollection)
		if !ok || len(av.Geometries) != len(bv.Geometries) || !crsEqual(av.CRS, bv.CRS) {
			return false
		}
		for i := range av.Geometries {
			if !Equal(av.Geometries[i], bv.Geometries[i]) {
				return false
			}
		}
		return true
	case *Feature:
		bv, ok := b.(*Feature)
		if !ok || !crsEqual(av.CRS, bv.CRS) {
			return false
		}
		if (av.Geometry == nil) != (bv.Geometry == nil) {
			return false
		}
		if av.Geometry != nil && !Equal(av.Geometry, bv.Geometry) {
			return false
		}
		return reflect.DeepEqual(av.ID, bv.ID) && propertiesEqual(av.Properties, bv.Properties)
	case *FeatureCollection:
		bv, ok := b.(*FeatureCollection)
		if !ok || len(av.Features) != len(bv.Features) || !crsEqual(av.CRS, bv.CRS) {
			return false
		}
		for i := range av.Features {
			if !Equal(av.Features[i], bv.Features[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func positionsEqual(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func linesEqual(a, b [][]Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !positionsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func crsEqual(a, b *CRS) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type == b.Type && reflect.DeepEqual(a.Properties, b.Properties)
}

func propertiesEqual(a, b map[string]interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || reflect.DeepEqual(a, b)
}
