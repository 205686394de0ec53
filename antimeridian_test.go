package geojson_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/geojson"
)

type AntimeridianSuite struct{}

var _ = gc.Suite(&AntimeridianSuite{})

func (s *AntimeridianSuite) TestCrossesAntimeridian(c *gc.C) {
	crossing, err := geojson.NewLineString([]geojson.Position{{179, 0}, {-179, 0}})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.CrossesAntimeridian(crossing), jc.IsTrue)

	straight, err := geojson.NewLineString([]geojson.Position{{-10, 0}, {10, 0}})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.CrossesAntimeridian(straight), jc.IsFalse)
}

func (s *AntimeridianSuite) TestPointNeverCrosses(c *gc.C) {
	p, err := geojson.NewPoint(geojson.Position{-179.9, 0})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.CrossesAntimeridian(p), jc.IsFalse)
	c.Assert(geojson.Equal(geojson.CutAntimeridian(p), p), jc.IsTrue)
}

func (s *AntimeridianSuite) TestCutLineString(c *gc.C) {
	l, err := geojson.NewLineString([]geojson.Position{{179, 0}, {-179, 0}})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(l).(*geojson.MultiLineString)
	c.Assert(cut.Coordinates, jc.DeepEquals, [][]geojson.Position{
		{{179, 0}, {180, 0}},
		{{-180, 0}, {-179, 0}},
	})
}

func (s *AntimeridianSuite) TestCutInterpolatesLatitude(c *gc.C) {
	// 170 is 10 degrees from the meridian, -175 is 5: the crossing sits
	// two thirds of the way along the segment.
	l, err := geojson.NewLineString([]geojson.Position{{170, 0}, {-175, 30}})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(l).(*geojson.MultiLineString)
	c.Assert(cut.Coordinates, gc.HasLen, 2)
	boundary := cut.Coordinates[0][1]
	c.Assert(boundary.Lon(), gc.Equals, 180.0)
	c.Assert(boundary.Lat(), gc.Equals, 20.0)
}

func (s *AntimeridianSuite) TestCutInterpolatesElevation(c *gc.C) {
	l, err := geojson.NewLineString([]geojson.Position{{179, 0, 100}, {-179, 0, 300}})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(l).(*geojson.MultiLineString)
	c.Assert(cut.Coordinates[0][1], jc.DeepEquals, geojson.Position{180, 0, 200})
	c.Assert(cut.Coordinates[1][0], jc.DeepEquals, geojson.Position{-180, 0, 200})
}

func (s *AntimeridianSuite) TestCutNoCrossingIsValueEqual(c *gc.C) {
	l, err := geojson.NewLineString([]geojson.Position{{-10, 0}, {10, 20}})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.Equal(geojson.CutAntimeridian(l), l), jc.IsTrue)
}

func (s *AntimeridianSuite) TestCutMultiLineString(c *gc.C) {
	m, err := geojson.NewMultiLineString([][]geojson.Position{
		{{0, 0}, {10, 10}},
		{{179, 0}, {-179, 0}},
	})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(m).(*geojson.MultiLineString)
	c.Assert(cut.Coordinates, gc.HasLen, 3)
	c.Assert(cut.Coordinates[0], jc.DeepEquals, []geojson.Position{{0, 0}, {10, 10}})
}

func (s *AntimeridianSuite) TestCutPolygon(c *gc.C) {
	p, err := geojson.NewPolygon([][]geojson.Position{
		{{170, 10}, {-170, 10}, {-170, -10}, {170, -10}, {170, 10}},
	})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(p).(*geojson.MultiPolygon)
	c.Assert(cut.Coordinates, jc.DeepEquals, [][][]geojson.Position{
		{{{180, -10}, {170, -10}, {170, 10}, {180, 10}, {180, -10}}},
		{{{-180, 10}, {-170, 10}, {-170, -10}, {-180, -10}, {-180, 10}}},
	})
}

func (s *AntimeridianSuite) TestCutPolygonPartsLieInOneBand(c *gc.C) {
	p, err := geojson.NewPolygon([][]geojson.Position{
		{{170, 10}, {-170, 10}, {-170, -10}, {170, -10}, {170, 10}},
	})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(p).(*geojson.MultiPolygon)
	for _, rings := range cut.Coordinates {
		for _, ring := range rings {
			east := ring[0].Lon() >= 0
			for _, pos := range ring {
				c.Assert(pos.Lon() >= 0, gc.Equals, east)
			}
		}
	}
}

func (s *AntimeridianSuite) TestCutPolygonAssignsHole(c *gc.C) {
	exterior := []geojson.Position{{170, 10}, {-170, 10}, {-170, -10}, {170, -10}, {170, 10}}
	hole := []geojson.Position{{172, 2}, {178, 2}, {178, -2}, {172, -2}, {172, 2}}
	p, err := geojson.NewPolygon([][]geojson.Position{exterior, hole})
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(p).(*geojson.MultiPolygon)
	c.Assert(cut.Coordinates, gc.HasLen, 2)
	// The hole lies in the eastern fragment, which comes first.
	c.Assert(cut.Coordinates[0], gc.HasLen, 2)
	c.Assert(cut.Coordinates[0][1], jc.DeepEquals, hole)
	c.Assert(cut.Coordinates[1], gc.HasLen, 1)
}

func (s *AntimeridianSuite) TestCutPolygonResultIsValid(c *gc.C) {
	p, err := geojson.NewPolygon([][]geojson.Position{
		{{170, 10}, {-170, 10}, {-170, -10}, {170, -10}, {170, 10}},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(geojson.CutAntimeridian(p).Validate(), jc.ErrorIsNil)
}

func (s *AntimeridianSuite) TestCutRecursesThroughCollections(c *gc.C) {
	l, err := geojson.NewLineString([]geojson.Position{{179, 0}, {-179, 0}})
	c.Assert(err, jc.ErrorIsNil)
	f, err := geojson.NewFeature(l, map[string]interface{}{"name": "dateline"}, nil)
	c.Assert(err, jc.ErrorIsNil)
	fc, err := geojson.NewFeatureCollection(f)
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(fc).(*geojson.FeatureCollection)
	c.Assert(cut.Features[0].Geometry, gc.FitsTypeOf, &geojson.MultiLineString{})
	c.Assert(cut.Features[0].Properties, jc.DeepEquals, map[string]interface{}{"name": "dateline"})
}

func (s *AntimeridianSuite) TestCutGeometryCollection(c *gc.C) {
	l, err := geojson.NewLineString([]geojson.Position{{179, 5}, {-179, 5}})
	c.Assert(err, jc.ErrorIsNil)
	p, err := geojson.NewPoint(geojson.Position{0, 0})
	c.Assert(err, jc.ErrorIsNil)
	col, err := geojson.NewGeometryCollection(l, p)
	c.Assert(err, jc.ErrorIsNil)

	cut := geojson.CutAntimeridian(col).(*geojson.GeometryCollection)
	c.Assert(cut.Geometries[0], gc.FitsTypeOf, &geojson.MultiLineString{})
	c.Assert(geojson.Equal(cut.Geometries[1], p), jc.IsTrue)
}

func (s *AntimeridianSuite) TestCutKeepsCRS(c *gc.C) {
	l := &geojson.LineString{
		Coordinates: []geojson.Position{{179, 0}, {-179, 0}},
		CRS:         geojson.DefaultCRS(),
	}
	cut := geojson.CutAntimeridian(l).(*geojson.MultiLineString)
	c.Assert(cut.CRS, jc.DeepEquals, geojson.DefaultCRS())
}
