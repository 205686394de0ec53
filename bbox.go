package geojson

import (
	"math"

	"github.com/juju/errors"
)

// BBox returns the axis-aligned extent of every coordinate in obj, as
// [west, south, east, north] or, when the coordinates carry elevation,
// [west, south, min-elevation, east, north, max-elevation]. A single
// position produces a zero-area box at that position. Objects containing
// no coordinates produce nil.
func BBox(obj Object) []float64 {
	var (
		min, max [3]float64
		arity    int
		seen     bool
	)
	forEachPosition(obj, func(p Position) {
		if !seen {
			seen = true
			arity = len(p)
			for i, v := range p {
				min[i], max[i] = v, v
			}
			return
		}
		if len(p) > arity {
			arity = len(p)
			min[2], max[2] = p[2], p[2]
		}
		for i := 0; i < len(p) && i < 3; i++ {
			min[i] = math.Min(min[i], p[i])
			max[i] = math.Max(max[i], p[i])
		}
	})
	if !seen {
		return nil
	}
	if arity >= 3 {
		return []float64{min[0], min[1], min[2], max[0], max[1], max[2]}
	}
	return []float64{min[0], min[1], max[0], max[1]}
}

// RoundPrecision returns obj with every coordinate component rounded to
// digits decimal places, half away from zero. Rounding at very low
// precision can pull a ring's first and last positions apart; such rings
// are re-closed by overwriting the last position with the first. The
// result is validated, since rounding can also collapse a line string to a
// single point.
func RoundPrecision(obj Object, digits int) (Object, error) {
	scale := math.Pow(10, float64(digits))
	out := transformObject(obj, func(p Position) Position {
		for i, v := range p {
			p[i] = math.Round(v*scale) / scale
		}
		return p
	})
	out = recloseRings(out)
	if err := out.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return out, nil
}

func recloseRings(obj Object) Object {
	switch g := obj.(type) {
	case *Polygon:
		return &Polygon{Coordinates: recloseEach(g.Coordinates), CRS: g.CRS, BBox: g.BBox}
	case *MultiPolygon:
		out := make([][][]Position, len(g.Coordinates))
		for i, rings := range g.Coordinates {
			out[i] = recloseEach(rings)
		}
		return &MultiPolygon{Coordinates: out, CRS: g.CRS, BBox: g.BBox}
	case *GeometryCollection:
		return g.Map(func(member Geometry) Geometry {
			return recloseRings(member).(Geometry)
		})
	case *Feature:
		return g.MapGeometry(func(geometry Geometry) Geometry {
			return recloseRings(geometry).(Geometry)
		})
	case *FeatureCollection:
		return g.Map(func(f *Feature) *Feature {
			return recloseRings(f).(*Feature)
		})
	}
	return obj
}

func recloseEach(rings [][]Position) [][]Position {
	out := make([][]Position, len(rings))
	for i, ring := range rings {
		if len(ring) > 0 && !ring[0].Equals(ring[len(ring)-1]) {
			ring[len(ring)-1] = ring[0].clone()
		}
		out[i] = ring
	}
	return out
}

func forEachPosition(obj Object, fn func(Position)) {
	switch g := obj.(type) {
	case *Point:
		fn(g.Coordinates)
	case *MultiPoint:
		for _, c := range g.Coordinates {
			fn(c)
		}
	case *LineString:
		for _, c := range g.Coordinates {
			fn(c)
		}
	case *MultiLineString:
		for _, line := range g.Coordinates {
			for _, c := range line {
				fn(c)
			}
		}
	case *Polygon:
		for _, ring := range g.Coordinates {
			for _, c := range ring {
				fn(c)
			}
		}
	case *MultiPolygon:
		for _, rings := range g.Coordinates {
			for _, ring := range rings {
				for _, c := range ring {
					fn(c)
				}
			}
		}
	case *GeometryCollection:
		for _, member := range g.Geometries {
			forEachPosition(member, fn)
		}
	case *Feature:
		if g.Geometry != nil {
			forEachPosition(g.Geometry, fn)
		}
	case *FeatureCollection:
		for _, f := range g.Features {
			forEachPosition(f, fn)
		}
	}
}
