package geojson_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/geojson"
)

type MergeSuite struct{}

var _ = gc.Suite(&MergeSuite{})

func (s *MergeSuite) points(c *gc.C, coordinates ...geojson.Position) []geojson.Object {
	out := make([]geojson.Object, len(coordinates))
	for i, coords := range coordinates {
		p, err := geojson.NewPoint(coords)
		c.Assert(err, jc.ErrorIsNil)
		out[i] = p
	}
	return out
}

func (s *MergeSuite) TestMergePointsAndBurstBack(c *gc.C) {
	points := s.points(c, geojson.Position{1, 2}, geojson.Position{3, 4}, geojson.Position{5, 6})

	merged, err := geojson.Merge(points)
	c.Assert(err, jc.ErrorIsNil)
	multi, ok := merged.(*geojson.MultiPoint)
	c.Assert(ok, jc.IsTrue)
	c.Assert(multi.Coordinates, jc.DeepEquals, []geojson.Position{{1, 2}, {3, 4}, {5, 6}})

	burst := geojson.Burst(multi)
	c.Assert(burst, gc.HasLen, 3)
	for i, part := range burst {
		c.Check(geojson.Equal(part, points[i]), jc.IsTrue)
	}
}

func (s *MergeSuite) TestMergeLineStrings(c *gc.C) {
	a, err := geojson.NewLineString([]geojson.Position{{0, 0}, {1, 1}})
	c.Assert(err, jc.ErrorIsNil)
	b, err := geojson.NewLineString([]geojson.Position{{2, 2}, {3, 3}})
	c.Assert(err, jc.ErrorIsNil)

	merged, err := geojson.Merge([]geojson.Object{a, b})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(merged, gc.FitsTypeOf, &geojson.MultiLineString{})
	c.Assert(merged.(*geojson.MultiLineString).Coordinates, gc.HasLen, 2)
}

func (s *MergeSuite) TestMergePolygons(c *gc.C) {
	a, err := geojson.NewPolygon([][]geojson.Position{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	c.Assert(err, jc.ErrorIsNil)
	b, err := geojson.NewPolygon([][]geojson.Position{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}})
	c.Assert(err, jc.ErrorIsNil)

	merged, err := geojson.Merge([]geojson.Object{a, b})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(merged, gc.FitsTypeOf, &geojson.MultiPolygon{})
}

func (s *MergeSuite) TestMergeMixedGeometries(c *gc.C) {
	p, err := geojson.NewPoint(geojson.Position{1, 2})
	c.Assert(err, jc.ErrorIsNil)
	l, err := geojson.NewLineString([]geojson.Position{{0, 0}, {1, 1}})
	c.Assert(err, jc.ErrorIsNil)

	merged, err := geojson.Merge([]geojson.Object{p, l})
	c.Assert(err, jc.ErrorIsNil)
	col, ok := merged.(*geojson.GeometryCollection)
	c.Assert(ok, jc.IsTrue)
	c.Assert(col.Geometries, gc.HasLen, 2)
}

func (s *MergeSuite) TestMergeFeatures(c *gc.C) {
	a, err := geojson.NewFeature(nil, map[string]interface{}{"n": 1}, nil)
	c.Assert(err, jc.ErrorIsNil)
	b, err := geojson.NewFeature(nil, map[string]interface{}{"n": 2}, nil)
	c.Assert(err, jc.ErrorIsNil)

	merged, err := geojson.Merge([]geojson.Object{a, b})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(merged.(*geojson.FeatureCollection).Features, gc.HasLen, 2)
}

func (s *MergeSuite) TestMergeFeatureCollectionsConcatenate(c *gc.C) {
	f, err := geojson.NewFeature(nil, nil, nil)
	c.Assert(err, jc.ErrorIsNil)
	a, err := geojson.NewFeatureCollection(f, f)
	c.Assert(err, jc.ErrorIsNil)
	b, err := geojson.NewFeatureCollection(f)
	c.Assert(err, jc.ErrorIsNil)

	merged, err := geojson.Merge([]geojson.Object{a, b})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(merged.(*geojson.FeatureCollection).Features, gc.HasLen, 3)
}

func (s *MergeSuite) TestMergeEmptyFails(c *gc.C) {
	_, err := geojson.Merge(nil)
	c.Assert(err, gc.ErrorMatches, "cannot merge zero objects")
}

func (s *MergeSuite) TestMergeSingletonIsIdentity(c *gc.C) {
	p, err := geojson.NewPoint(geojson.Position{1, 2})
	c.Assert(err, jc.ErrorIsNil)
	merged, err := geojson.Merge([]geojson.Object{p})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.Equal(merged, p), jc.IsTrue)
}

func (s *MergeSuite) TestMergeFeatureWithGeometryFails(c *gc.C) {
	p, err := geojson.NewPoint(geojson.Position{1, 2})
	c.Assert(err, jc.ErrorIsNil)
	f, err := geojson.NewFeature(p, nil, nil)
	c.Assert(err, jc.ErrorIsNil)

	_, err = geojson.Merge([]geojson.Object{p, f})
	c.Assert(err, gc.ErrorMatches, ".*not supported")
}

func (s *MergeSuite) TestMergeMismatchedCRSFails(c *gc.C) {
	a := &geojson.Point{Coordinates: geojson.Position{1, 2}, CRS: geojson.DefaultCRS()}
	b := &geojson.Point{Coordinates: geojson.Position{3, 4}}

	_, err := geojson.Merge([]geojson.Object{a, b})
	c.Assert(err, gc.ErrorMatches, "all merged objects must share the same CRS")
}

func (s *MergeSuite) TestBurstAtomicIsIdentity(c *gc.C) {
	p, err := geojson.NewPoint(geojson.Position{1, 2})
	c.Assert(err, jc.ErrorIsNil)
	parts := geojson.Burst(p)
	c.Assert(parts, gc.HasLen, 1)
	c.Assert(geojson.Equal(parts[0], p), jc.IsTrue)
}

func (s *MergeSuite) TestBurstGeometryCollectionRecurses(c *gc.C) {
	m, err := geojson.NewMultiPoint([]geojson.Position{{1, 2}, {3, 4}})
	c.Assert(err, jc.ErrorIsNil)
	l, err := geojson.NewLineString([]geojson.Position{{0, 0}, {1, 1}})
	c.Assert(err, jc.ErrorIsNil)
	col, err := geojson.NewGeometryCollection(m, l)
	c.Assert(err, jc.ErrorIsNil)

	parts := geojson.Burst(col)
	c.Assert(parts, gc.HasLen, 3)
	c.Assert(parts[0], gc.FitsTypeOf, &geojson.Point{})
	c.Assert(parts[1], gc.FitsTypeOf, &geojson.Point{})
	c.Assert(parts[2], gc.FitsTypeOf, &geojson.LineString{})
}

func (s *MergeSuite) TestBurstPropagatesCRS(c *gc.C) {
	crs := &geojson.CRS{Type: "name", Properties: map[string]interface{}{"name": "urn:example"}}
	m := &geojson.MultiPoint{Coordinates: []geojson.Position{{1, 2}}, CRS: crs}
	parts := geojson.Burst(m)
	c.Assert(parts[0].(*geojson.Point).CRS, gc.Equals, crs)
}

func (s *MergeSuite) TestBurstFeatureCollection(c *gc.C) {
	f, err := geojson.NewFeature(nil, map[string]interface{}{"n": 1}, nil)
	c.Assert(err, jc.ErrorIsNil)
	fc, err := geojson.NewFeatureCollection(f)
	c.Assert(err, jc.ErrorIsNil)

	parts := geojson.Burst(fc)
	c.Assert(parts, gc.HasLen, 1)
	c.Assert(geojson.Equal(parts[0], f), jc.IsTrue)
}
