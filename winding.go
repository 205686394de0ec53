package geojson

// SignedArea returns the shoelace-formula signed area of a ring, ignoring
// elevation. The area is positive when the ring winds counterclockwise and
// negative when it winds clockwise.
func SignedArea(ring []Position) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i].Lon()*ring[i+1].Lat() - ring[i+1].Lon()*ring[i].Lat()
	}
	return sum / 2
}

// IsCounterClockwise reports whether ring has positive signed area.
func IsCounterClockwise(ring []Position) bool {
	return SignedArea(ring) > 0
}

// EnforceWinding returns obj with every polygon ring, anywhere in the
// tree, wound per RFC7946: exterior rings counterclockwise and interior
// rings clockwise. Rings with zero signed area are left unchanged, so the
// operation is idempotent.
func EnforceWinding(obj Object) Object {
	switch g := obj.(type) {
	case *Polygon:
		return &Polygon{Coordinates: enforceRings(g.Coordinates), CRS: g.CRS, BBox: g.BBox}
	case *MultiPolygon:
		out := make([][][]Position, len(g.Coordinates))
		for i, rings := range g.Coordinates {
			out[i] = enforceRings(rings)
		}
		return &MultiPolygon{Coordinates: out, CRS: g.CRS, BBox: g.BBox}
	case *GeometryCollection:
		return g.Map(func(member Geometry) Geometry {
			return EnforceWinding(member).(Geometry)
		})
	case *Feature:
		return g.MapGeometry(func(geometry Geometry) Geometry {
			return EnforceWinding(geometry).(Geometry)
		})
	case *FeatureCollection:
		return g.Map(func(f *Feature) *Feature {
			return EnforceWinding(f).(*Feature)
		})
	}
	return obj
}

func enforceRings(rings [][]Position) [][]Position {
	out := make([][]Position, len(rings))
	for i, ring := range rings {
		area := SignedArea(ring)
		if (i == 0 && area < 0) || (i > 0 && area > 0) {
			out[i] = reverseRing(ring)
		} else {
			out[i] = ring
		}
	}
	return out
}

func reverseRing(ring []Position) []Position {
	out := make([]Position, len(ring))
	for i, c := range ring {
		out[len(ring)-1-i] = c
	}
	return out
}
