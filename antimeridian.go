package geojson

import (
	"math"
)

// CrossesAntimeridian reports whether any segment of obj spans more than
// 180 degrees of longitude. Such a segment is assumed to cross the +/-180
// discontinuity rather than legitimately span most of the globe. Point and
// MultiPoint never cross.
func CrossesAntimeridian(obj Object) bool {
	switch g := obj.(type) {
	case *LineString:
		return lineCrosses(g.Coordinates)
	case *MultiLineString:
		for _, line := range g.Coordinates {
			if lineCrosses(line) {
				return true
			}
		}
	case *Polygon:
		return ringsCross(g.Coordinates)
	case *MultiPolygon:
		for _, rings := range g.Coordinates {
			if ringsCross(rings) {
				return true
			}
		}
	case *GeometryCollection:
		for _, member := range g.Geometries {
			if CrossesAntimeridian(member) {
				return true
			}
		}
	case *Feature:
		return g.Geometry != nil && CrossesAntimeridian(g.Geometry)
	case *FeatureCollection:
		for _, f := range g.Features {
			if CrossesAntimeridian(f) {
				return true
			}
		}
	}
	return false
}

// CutAntimeridian splits obj wherever it crosses the antimeridian, so that
// every resulting part lies within a contiguous longitude window of at
// most 180 degrees. When a split occurs the type is promoted:
//
//	given a             returns a
//	------------------  ------------------
//	LineString          MultiLineString
//	Polygon             MultiPolygon
//	MultiLineString     MultiLineString
//	MultiPolygon        MultiPolygon
//	GeometryCollection  GeometryCollection
//	Feature             Feature
//	FeatureCollection   FeatureCollection
//
// Interior polygon rings are assigned to the exterior fragment containing
// them, falling back to the fragment with the nearest mean longitude when
// containment fails. If obj crosses nowhere, it is returned unchanged.
func CutAntimeridian(obj Object) Object {
	switch g := obj.(type) {
	case *LineString:
		if !lineCrosses(g.Coordinates) {
			return g
		}
		return &MultiLineString{Coordinates: cutLine(g.Coordinates), CRS: g.CRS}
	case *MultiLineString:
		if !CrossesAntimeridian(g) {
			return g
		}
		var out [][]Position
		for _, line := range g.Coordinates {
			if lineCrosses(line) {
				out = append(out, cutLine(line)...)
			} else {
				out = append(out, line)
			}
		}
		return &MultiLineString{Coordinates: out, CRS: g.CRS}
	case *Polygon:
		if !ringsCross(g.Coordinates) {
			return g
		}
		polygons := cutPolygon(g.Coordinates)
		if len(polygons) == 1 {
			return &Polygon{Coordinates: polygons[0], CRS: g.CRS}
		}
		return &MultiPolygon{Coordinates: polygons, CRS: g.CRS}
	case *MultiPolygon:
		if !CrossesAntimeridian(g) {
			return g
		}
		var out [][][]Position
		for _, rings := range g.Coordinates {
			if ringsCross(rings) {
				out = append(out, cutPolygon(rings)...)
			} else {
				out = append(out, rings)
			}
		}
		return &MultiPolygon{Coordinates: out, CRS: g.CRS}
	case *GeometryCollection:
		if !CrossesAntimeridian(g) {
			return g
		}
		return g.Map(func(member Geometry) Geometry {
			return CutAntimeridian(member).(Geometry)
		})
	case *Feature:
		if !CrossesAntimeridian(g) {
			return g
		}
		return g.MapGeometry(func(geometry Geometry) Geometry {
			return CutAntimeridian(geometry).(Geometry)
		})
	case *FeatureCollection:
		if !CrossesAntimeridian(g) {
			return g
		}
		return g.Map(func(f *Feature) *Feature {
			return CutAntimeridian(f).(*Feature)
		})
	}
	return obj
}

func segmentCrosses(lon0, lon1 float64) bool {
	return math.Abs(lon1-lon0) > 180
}

func lineCrosses(coordinates []Position) bool {
	for i := 0; i < len(coordinates)-1; i++ {
		if segmentCrosses(coordinates[i].Lon(), coordinates[i+1].Lon()) {
			return true
		}
	}
	return false
}

func ringsCross(rings [][]Position) bool {
	for _, ring := range rings {
		if lineCrosses(ring) {
			return true
		}
	}
	return false
}

// cutLine walks consecutive positions and, at every crossing segment,
// inserts a synthetic position on the boundary and starts a new fragment
// on the opposite boundary. Fragment longitudes are shifted into
// [-180, 180].
func cutLine(coordinates []Position) [][]Position {
	var parts [][]Position
	current := []Position{coordinates[0].clone()}
	for i := 0; i < len(coordinates)-1; i++ {
		p0, p1 := coordinates[i], coordinates[i+1]
		if !segmentCrosses(p0.Lon(), p1.Lon()) {
			current = append(current, p1.clone())
			continue
		}
		exit, entry := boundaryPositions(p0, p1)
		current = append(current, exit)
		parts = append(parts, current)
		current = []Position{entry, p1.clone()}
	}
	parts = append(parts, current)
	for _, part := range parts {
		for _, c := range part {
			c[0] = normalizeLon(c[0])
		}
	}
	return parts
}

// boundaryPositions returns the synthetic positions where the crossing
// segment p0->p1 meets the antimeridian: one on p0's boundary and one on
// p1's. Latitude, and elevation when present, are linearly interpolated in
// proportion to each endpoint's angular distance from the meridian.
func boundaryPositions(p0, p1 Position) (Position, Position) {
	d0 := meridianDistance(p0.Lon())
	d1 := meridianDistance(p1.Lon())
	interpolate := func(v0, v1 float64) float64 {
		if d0+d1 == 0 {
			return (v0 + v1) / 2
		}
		return (v0*d1 + v1*d0) / (d0 + d1)
	}
	lat := interpolate(p0.Lat(), p1.Lat())
	lon := 180.0
	if p0.Lon() < 0 {
		lon = -180
	}
	exit := Position{lon, lat}
	entry := Position{-lon, lat}
	if len(p0) == 3 && len(p1) == 3 {
		elev := interpolate(p0[2], p1[2])
		exit = append(exit, elev)
		entry = append(entry, elev)
	}
	return exit, entry
}

// meridianDistance is the angular distance from lon to the antimeridian,
// measured the short way around.
func meridianDistance(lon float64) float64 {
	return math.Abs(math.Mod(lon+360, 360) - 180)
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// cutRing cuts a closed ring like a line and then re-closes the pieces.
// The ring is cyclic, so the final fragment continues into the first and
// the two are merged before closing. Fragments too short to form a ring
// are dropped.
func cutRing(ring []Position) [][]Position {
	parts := cutLine(ring)
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		merged := append(last[:len(last)-1], parts[0]...)
		parts = append([][]Position{merged}, parts[1:len(parts)-1]...)
	}
	var out [][]Position
	for _, part := range parts {
		if !part[0].Equals(part[len(part)-1]) {
			part = append(part, part[0].clone())
		}
		if len(part) < 4 {
			logger.Debugf("dropping degenerate %d-position ring fragment at the antimeridian", len(part))
			continue
		}
		out = append(out, part)
	}
	return out
}

// cutPolygon cuts every ring of a polygon. Each exterior fragment becomes
// the exterior of a new polygon; each interior fragment is attached to the
// exterior fragment containing its first vertex, or failing that to the
// one with the nearest mean longitude.
func cutPolygon(rings [][]Position) [][][]Position {
	exteriors := cutRing(rings[0])
	polygons := make([][][]Position, len(exteriors))
	for i, exterior := range exteriors {
		polygons[i] = [][]Position{exterior}
	}
	for _, hole := range rings[1:] {
		fragments := [][]Position{hole}
		if lineCrosses(hole) {
			fragments = cutRing(hole)
		}
		for _, fragment := range fragments {
			i := assignHole(fragment, exteriors)
			polygons[i] = append(polygons[i], fragment)
		}
	}
	return polygons
}

func assignHole(hole []Position, exteriors [][]Position) int {
	for i, exterior := range exteriors {
		if pointInRing(hole[0], exterior) {
			return i
		}
	}
	// No exterior contains the hole, which can happen because the split is
	// simplified. Fall back to the nearest longitude band.
	best, bestDistance := 0, math.Inf(1)
	target := meanLon(hole)
	for i, exterior := range exteriors {
		if d := math.Abs(meanLon(exterior) - target); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	logger.Warningf("no exterior fragment contains interior ring starting at %v; assigning to nearest longitude band", hole[0])
	return best
}

func meanLon(ring []Position) float64 {
	var sum float64
	for _, c := range ring {
		sum += c.Lon()
	}
	return sum / float64(len(ring))
}

// pointInRing is an even-odd rule containment test, ignoring elevation.
func pointInRing(p Position, ring []Position) bool {
	inside := false
	for i := 0; i < len(ring)-1; i++ {
		x0, y0 := ring[i].Lon(), ring[i].Lat()
		x1, y1 := ring[i+1].Lon(), ring[i+1].Lat()
		if (y0 > p.Lat()) != (y1 > p.Lat()) &&
			p.Lon() < (x1-x0)*(p.Lat()-y0)/(y1-y0)+x0 {
			inside = !inside
		}
	}
	return inside
}
