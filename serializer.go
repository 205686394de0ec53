package geojson

import (
	"encoding/json"
	"os"

	"github.com/juju/errors"
)

// Options configures serialization.
//
// For the serialization rules RFC7946 applies to each option see:
//
//	https://tools.ietf.org/html/rfc7946
type Options struct {
	// EnforcePolyWinding rewinds polygon rings before emitting, so
	// exteriors are counterclockwise and holes clockwise.
	EnforcePolyWinding bool

	// AntimeridianCutting splits geometries spanning the dateline before
	// emitting, possibly changing type in the process (e.g. LineString to
	// MultiLineString).
	AntimeridianCutting bool

	// WriteBBox attempts to write a "bbox" member on the root object. The
	// annotation already attached to the value is used when present,
	// otherwise the box is computed.
	WriteBBox bool

	// WriteCRS writes a "crs" member on the root object when its CRS is
	// set and differs from the WGS84 default.
	WriteCRS bool

	// Precision, when set, rounds coordinates to this many decimal digits
	// before emitting.
	Precision *int
}

// DefaultOptions returns the options used by the package level helpers:
// antimeridian cutting and bbox writing on, CRS writing off, no rounding.
func DefaultOptions() Options {
	return Options{AntimeridianCutting: true, WriteBBox: true}
}

// A Serializer lowers GeoJSON values to generic JSON values and to JSON
// text.
type Serializer struct {
	Options
}

// NewSerializer returns a Serializer with the given options.
func NewSerializer(opts Options) *Serializer {
	return &Serializer{Options: opts}
}

// ToValue validates obj, applies the configured transformations and
// lowers the result to a generic JSON value: a map[string]interface{}
// tree of maps, slices, strings and float64s.
func (s *Serializer) ToValue(obj Object) (map[string]interface{}, error) {
	prepared, err := s.prepare(obj)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return s.asValue(prepared, true), nil
}

// Marshal serializes obj to JSON text.
func (s *Serializer) Marshal(obj Object) ([]byte, error) {
	value, err := s.ToValue(obj)
	if err != nil {
		return nil, errors.Trace(err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

// ToString serializes obj to a JSON string.
func (s *Serializer) ToString(obj Object) (string, error) {
	data, err := s.Marshal(obj)
	if err != nil {
		return "", errors.Trace(err)
	}
	return string(data), nil
}

// ToFile serializes obj to the file at path.
func (s *Serializer) ToFile(obj Object, path string) error {
	data, err := s.Marshal(obj)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, data, 0644))
}

func (s *Serializer) prepare(obj Object) (Object, error) {
	if err := obj.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if s.EnforcePolyWinding {
		obj = EnforceWinding(obj)
	}
	if s.AntimeridianCutting {
		obj = CutAntimeridian(obj)
	}
	if s.Precision != nil {
		rounded, err := RoundPrecision(obj, *s.Precision)
		if err != nil {
			return nil, errors.Trace(err)
		}
		obj = rounded
	}
	return obj, nil
}

func (s *Serializer) asValue(obj Object, root bool) map[string]interface{} {
	d := map[string]interface{}{"type": obj.Type()}
	switch g := obj.(type) {
	case *Point:
		d["coordinates"] = positionValue(g.Coordinates)
	case *MultiPoint:
		d["coordinates"] = positionsValue(g.Coordinates)
	case *LineString:
		d["coordinates"] = positionsValue(g.Coordinates)
	case *MultiLineString:
		d["coordinates"] = linesValue(g.Coordinates)
	case *Polygon:
		d["coordinates"] = linesValue(g.Coordinates)
	case *MultiPolygon:
		polygons := make([]interface{}, len(g.Coordinates))
		for i, rings := range g.Coordinates {
			polygons[i] = linesValue(rings)
		}
		d["coordinates"] = polygons
	case *GeometryCollection:
		members := make([]interface{}, len(g.Geometries))
		for i, member := range g.Geometries {
			members[i] = s.asValue(member, false)
		}
		d["geometries"] = members
	case *Feature:
		if g.Geometry != nil {
			d["geometry"] = s.asValue(g.Geometry, false)
		} else {
			d["geometry"] = nil
		}
		d["properties"] = g.Properties
		if g.ID != nil {
			d["id"] = g.ID
		}
	case *FeatureCollection:
		features := make([]interface{}, len(g.Features))
		for i, f := range g.Features {
			features[i] = s.asValue(f, false)
		}
		d["features"] = features
	}
	if root && s.WriteBBox {
		box := objectBBox(obj)
		if box == nil {
			box = BBox(obj)
		}
		if box != nil {
			d["bbox"] = box
		}
	}
	if root && s.WriteCRS {
		if crs := objectCRS(obj); crs != nil && !crsEqual(crs, DefaultCRS()) {
			d["crs"] = map[string]interface{}{
				"type":       crs.Type,
				"properties": crs.Properties,
			}
		}
	}
	return d
}

func positionValue(p Position) []interface{} {
	out := make([]interface{}, len(p))
	for i, v := range p {
		out[i] = v
	}
	return out
}

func positionsValue(coordinates []Position) []interface{} {
	out := make([]interface{}, len(coordinates))
	for i, c := range coordinates {
		out[i] = positionValue(c)
	}
	return out
}

func linesValue(lines [][]Position) []interface{} {
	out := make([]interface{}, len(lines))
	for i, line := range lines {
		out[i] = positionsValue(line)
	}
	return out
}

func objectBBox(obj Object) []float64 {
	switch g := obj.(type) {
	case *Point:
		return g.BBox
	case *MultiPoint:
		return g.BBox
	case *LineString:
		return g.BBox
	case *MultiLineString:
		return g.BBox
	case *Polygon:
		return g.BBox
	case *MultiPolygon:
		return g.BBox
	case *GeometryCollection:
		return g.BBox
	case *Feature:
		return g.BBox
	case *FeatureCollection:
		return g.BBox
	}
	return nil
}

// ToString serializes obj with the default options.
func ToString(obj Object) (string, error) {
	return NewSerializer(DefaultOptions()).ToString(obj)
}

// ToFile serializes obj to the file at path with the default options.
func ToFile(obj Object, path string) error {
	return NewSerializer(DefaultOptions()).ToFile(obj, path)
}
