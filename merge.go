package geojson

import (
	"github.com/juju/errors"
)

// Merge combines a list of GeoJSON objects into the single most specific
// object that retains all information:
//
//   - Points merge to a MultiPoint, LineStrings to a MultiLineString and
//     Polygons to a MultiPolygon
//   - Features merge to a FeatureCollection and FeatureCollections
//     concatenate
//   - mixed geometry variants merge to a GeometryCollection
//
// Merge fails on an empty list, when objects of one variant disagree on
// CRS, and when bare geometries are mixed with features.
func Merge(items []Object) (Object, error) {
	if len(items) == 0 {
		return nil, errors.New("cannot merge zero objects")
	}
	if len(items) == 1 {
		return items[0], nil
	}

	uniform := true
	for _, item := range items[1:] {
		if item.Type() != items[0].Type() {
			uniform = false
			break
		}
	}
	if uniform {
		return mergeUniform(items)
	}

	features := 0
	for _, item := range items {
		switch item.(type) {
		case *Feature, *FeatureCollection:
			features++
		}
	}
	switch features {
	case 0:
		geometries := make([]Geometry, len(items))
		for i, item := range items {
			geometries[i] = item.(Geometry)
		}
		return &GeometryCollection{Geometries: geometries}, nil
	case len(items):
		var collected []*Feature
		for _, item := range items {
			switch v := item.(type) {
			case *Feature:
				collected = append(collected, v)
			case *FeatureCollection:
				collected = append(collected, v.Features...)
			}
		}
		return &FeatureCollection{Features: collected}, nil
	}
	return nil, errors.NotSupportedf("merging features with bare geometries")
}

func mergeUniform(items []Object) (Object, error) {
	crs := objectCRS(items[0])
	for _, item := range items[1:] {
		if !crsEqual(crs, objectCRS(item)) {
			return nil, errors.New("all merged objects must share the same CRS")
		}
	}
	switch items[0].(type) {
	case *Point:
		coordinates := make([]Position, len(items))
		for i, item := range items {
			coordinates[i] = item.(*Point).Coordinates
		}
		return &MultiPoint{Coordinates: coordinates, CRS: crs}, nil
	case *LineString:
		coordinates := make([][]Position, len(items))
		for i, item := range items {
			coordinates[i] = item.(*LineString).Coordinates
		}
		return &MultiLineString{Coordinates: coordinates, CRS: crs}, nil
	case *Polygon:
		coordinates := make([][][]Position, len(items))
		for i, item := range items {
			coordinates[i] = item.(*Polygon).Coordinates
		}
		return &MultiPolygon{Coordinates: coordinates, CRS: crs}, nil
	case *GeometryCollection:
		geometries := make([]Geometry, len(items))
		for i, item := range items {
			geometries[i] = item.(Geometry)
		}
		return &GeometryCollection{Geometries: geometries, CRS: crs}, nil
	case *Feature:
		collected := make([]*Feature, len(items))
		for i, item := range items {
			collected[i] = item.(*Feature)
		}
		return &FeatureCollection{Features: collected, CRS: crs}, nil
	case *FeatureCollection:
		var collected []*Feature
		for _, item := range items {
			collected = append(collected, item.(*FeatureCollection).Features...)
		}
		return &FeatureCollection{Features: collected, CRS: crs}, nil
	}
	return nil, errors.NotSupportedf("merging %s objects", items[0].Type())
}

// Burst splits a composite object into its atomic parts: a MultiPoint
// into Points, a MultiLineString into LineStrings, a MultiPolygon into
// Polygons, and collections into their members, recursively. Parts
// without their own CRS inherit the container's. Atomic objects burst to
// themselves.
func Burst(obj Object) []Object {
	switch g := obj.(type) {
	case *MultiPoint:
		out := make([]Object, len(g.Coordinates))
		for i, c := range g.Coordinates {
			out[i] = &Point{Coordinates: c, CRS: g.CRS}
		}
		return out
	case *MultiLineString:
		out := make([]Object, len(g.Coordinates))
		for i, line := range g.Coordinates {
			out[i] = &LineString{Coordinates: line, CRS: g.CRS}
		}
		return out
	case *MultiPolygon:
		out := make([]Object, len(g.Coordinates))
		for i, rings := range g.Coordinates {
			out[i] = &Polygon{Coordinates: rings, CRS: g.CRS}
		}
		return out
	case *GeometryCollection:
		var out []Object
		for _, member := range g.Geometries {
			for _, part := range Burst(member) {
				out = append(out, withCRS(part, g.CRS))
			}
		}
		return out
	case *FeatureCollection:
		out := make([]Object, len(g.Features))
		for i, f := range g.Features {
			out[i] = withCRS(f, g.CRS)
		}
		return out
	}
	return []Object{obj}
}

func objectCRS(obj Object) *CRS {
	switch g := obj.(type) {
	case *Point:
		return g.CRS
	case *MultiPoint:
		return g.CRS
	case *LineString:
		return g.CRS
	case *MultiLineString:
		return g.CRS
	case *Polygon:
		return g.CRS
	case *MultiPolygon:
		return g.CRS
	case *GeometryCollection:
		return g.CRS
	case *Feature:
		return g.CRS
	case *FeatureCollection:
		return g.CRS
	}
	return nil
}

// withCRS returns obj carrying crs, unless obj already has one or crs is
// nil.
func withCRS(obj Object, crs *CRS) Object {
	if crs == nil || objectCRS(obj) != nil {
		return obj
	}
	switch g := obj.(type) {
	case *Point:
		return &Point{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *MultiPoint:
		return &MultiPoint{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *LineString:
		return &LineString{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *MultiLineString:
		return &MultiLineString{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *Polygon:
		return &Polygon{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *MultiPolygon:
		return &MultiPolygon{Coordinates: g.Coordinates, CRS: crs, BBox: g.BBox}
	case *GeometryCollection:
		return &GeometryCollection{Geometries: g.Geometries, CRS: crs, BBox: g.BBox}
	case *Feature:
		return &Feature{Geometry: g.Geometry, Properties: g.Properties, ID: g.ID, CRS: crs, BBox: g.BBox}
	case *FeatureCollection:
		return &FeatureCollection{Features: g.Features, CRS: crs, BBox: g.BBox}
	}
	return obj
}
