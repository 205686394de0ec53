package geojson

import (
	"reflect"

	"github.com/juju/collections/set"
)

// Walk visits obj and then, depth first and in order, every object nested
// inside it: geometry collection members, feature geometries and feature
// collection members. Returning false from visit stops the walk; Walk
// reports whether it ran to completion. Walking the same object again
// restarts from the top.
func Walk(obj Object, visit func(Object) bool) bool {
	if obj == nil {
		return true
	}
	if !visit(obj) {
		return false
	}
	switch g := obj.(type) {
	case *GeometryCollection:
		for _, member := range g.Geometries {
			if !Walk(member, visit) {
				return false
			}
		}
	case *Feature:
		if g.Geometry != nil {
			return Walk(g.Geometry, visit)
		}
	case *FeatureCollection:
		for _, f := range g.Features {
			if !Walk(f, visit) {
				return false
			}
		}
	}
	return true
}

// ExtractGeometries returns every geometry nested anywhere in obj whose
// type name is in types, in depth-first order. An empty set matches every
// geometry.
func ExtractGeometries(obj Object, types set.Strings) []Geometry {
	var out []Geometry
	Walk(obj, func(o Object) bool {
		if g, ok := o.(Geometry); ok {
			if types.IsEmpty() || types.Contains(o.Type()) {
				out = append(out, g)
			}
		}
		return true
	})
	return out
}

// ExtractFeatures returns every feature nested anywhere in obj whose
// geometry type name is in geometryTypes (an empty set matches all,
// including features without a geometry) and whose properties contain
// every key in properties with an equal value.
func ExtractFeatures(obj Object, geometryTypes set.Strings, properties map[string]interface{}) []*Feature {
	var out []*Feature
	Walk(obj, func(o Object) bool {
		f, ok := o.(*Feature)
		if !ok {
			return true
		}
		if !geometryTypes.IsEmpty() {
			if f.Geometry == nil || !geometryTypes.Contains(f.Geometry.Type()) {
				return true
			}
		}
		for k, want := range properties {
			got, present := f.Properties[k]
			if !present || !reflect.DeepEqual(got, want) {
				return true
			}
		}
		out = append(out, f)
		return true
	})
	return out
}
