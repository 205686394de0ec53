package geojson

import (
	"github.com/juju/errors"
)

// A TransformFunc maps a position to a replacement position. It may change
// component values and arity, but changing arity inconsistently across a
// geometry renders the result invalid.
type TransformFunc func(Position) Position

// Transform applies fn to every coordinate in obj and returns a new tree
// of the same variant and shape. The result is validated: an fn that
// breaks a construction invariant, such as mixing coordinate arity, makes
// Transform fail.
func Transform(obj Object, fn TransformFunc) (Object, error) {
	out := transformObject(obj, fn)
	if err := out.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return out, nil
}

func transformObject(obj Object, fn TransformFunc) Object {
	switch g := obj.(type) {
	case *Point:
		return &Point{Coordinates: fn(g.Coordinates.clone()), CRS: g.CRS, BBox: g.BBox}
	case *MultiPoint:
		return &MultiPoint{Coordinates: transformLine(g.Coordinates, fn), CRS: g.CRS, BBox: g.BBox}
	case *LineString:
		return &LineString{Coordinates: transformLine(g.Coordinates, fn), CRS: g.CRS, BBox: g.BBox}
	case *MultiLineString:
		return &MultiLineString{Coordinates: transformLines(g.Coordinates, fn), CRS: g.CRS, BBox: g.BBox}
	case *Polygon:
		return &Polygon{Coordinates: transformLines(g.Coordinates, fn), CRS: g.CRS, BBox: g.BBox}
	case *MultiPolygon:
		out := make([][][]Position, len(g.Coordinates))
		for i, rings := range g.Coordinates {
			out[i] = transformLines(rings, fn)
		}
		return &MultiPolygon{Coordinates: out, CRS: g.CRS, BBox: g.BBox}
	case *GeometryCollection:
		return g.Map(func(member Geometry) Geometry {
			return transformObject(member, fn).(Geometry)
		})
	case *Feature:
		return g.MapGeometry(func(geometry Geometry) Geometry {
			return transformObject(geometry, fn).(Geometry)
		})
	case *FeatureCollection:
		return g.Map(func(f *Feature) *Feature {
			return transformObject(f, fn).(*Feature)
		})
	}
	return obj
}

func transformLine(coordinates []Position, fn TransformFunc) []Position {
	out := make([]Position, len(coordinates))
	for i, c := range coordinates {
		out[i] = fn(c.clone())
	}
	return out
}

func transformLines(lines [][]Position, fn TransformFunc) [][]Position {
	out := make([][]Position, len(lines))
	for i, line := range lines {
		out[i] = transformLine(line, fn)
	}
	return out
}

// Map returns a new collection with fn applied to each member geometry in
// order.
func (gc *GeometryCollection) Map(fn func(Geometry) Geometry) *GeometryCollection {
	out := make([]Geometry, len(gc.Geometries))
	for i, g := range gc.Geometries {
		out[i] = fn(g)
	}
	return &GeometryCollection{Geometries: out, CRS: gc.CRS, BBox: gc.BBox}
}

// FlatMap returns a new collection concatenating, in order, the geometries
// fn yields for each member. fn may delete a member by returning nil,
// preserve it by returning a singleton, or expand it.
func (gc *GeometryCollection) FlatMap(fn func(Geometry) []Geometry) *GeometryCollection {
	var out []Geometry
	for _, g := range gc.Geometries {
		out = append(out, fn(g)...)
	}
	return &GeometryCollection{Geometries: out, CRS: gc.CRS, BBox: gc.BBox}
}

// MapGeometry returns a new feature with fn applied to the geometry.
// Features without a geometry are returned unchanged apart from being
// copied; fn is not called on a nil geometry.
func (f *Feature) MapGeometry(fn func(Geometry) Geometry) *Feature {
	out := &Feature{Geometry: f.Geometry, Properties: f.Properties, ID: f.ID, CRS: f.CRS, BBox: f.BBox}
	if f.Geometry != nil {
		out.Geometry = fn(f.Geometry)
	}
	return out
}

// MapProperties returns a new feature with fn applied to the properties
// mapping. The geometry is untouched.
func (f *Feature) MapProperties(fn func(map[string]interface{}) map[string]interface{}) *Feature {
	props := make(map[string]interface{}, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}
	return &Feature{Geometry: f.Geometry, Properties: fn(props), ID: f.ID, CRS: f.CRS, BBox: f.BBox}
}

// Map returns a new collection with fn applied to each feature in order.
func (fc *FeatureCollection) Map(fn func(*Feature) *Feature) *FeatureCollection {
	out := make([]*Feature, len(fc.Features))
	for i, f := range fc.Features {
		out[i] = fn(f)
	}
	return &FeatureCollection{Features: out, CRS: fc.CRS, BBox: fc.BBox}
}

// FlatMap returns a new collection concatenating, in order, the features
// fn yields for each member.
func (fc *FeatureCollection) FlatMap(fn func(*Feature) []*Feature) *FeatureCollection {
	var out []*Feature
	for _, f := range fc.Features {
		out = append(out, fn(f)...)
	}
	return &FeatureCollection{Features: out, CRS: fc.CRS, BBox: fc.BBox}
}
