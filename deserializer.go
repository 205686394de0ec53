package geojson

import (
	"encoding/json"
	"os"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

var objectTypes = set.NewStrings(
	"Point", "MultiPoint", "LineString", "MultiLineString",
	"Polygon", "MultiPolygon", "GeometryCollection",
	"Feature", "FeatureCollection",
)

var knownMembers = set.NewStrings(
	"type", "coordinates", "geometries", "geometry",
	"properties", "features", "id", "bbox", "crs",
)

// A Deserializer lifts generic JSON values into GeoJSON values.
type Deserializer struct {
	// DefaultCRS, when set, is attached to the root object when the input
	// carries no "crs" member.
	DefaultCRS *CRS

	// StrictRings rejects open polygon rings with an UnclosedRingError
	// instead of closing them.
	StrictRings bool
}

// FromValue lifts a generic JSON value, as produced by encoding/json into
// an interface{}, into a GeoJSON value. Construction invariants are
// enforced; "bbox" and "crs" members are attached as annotations without
// being re-derived or checked against the coordinates.
func (d *Deserializer) FromValue(v interface{}) (Object, error) {
	obj, err := d.parse(v)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if d.DefaultCRS != nil && objectCRS(obj) == nil {
		obj = withCRS(obj, d.DefaultCRS)
	}
	return obj, nil
}

// Unmarshal parses JSON text into a GeoJSON value.
func (d *Deserializer) Unmarshal(data []byte) (Object, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Trace(err)
	}
	return d.FromValue(v)
}

// FromString parses a JSON string into a GeoJSON value.
func (d *Deserializer) FromString(s string) (Object, error) {
	return d.Unmarshal([]byte(s))
}

// FromFile parses the JSON file at path into a GeoJSON value.
func (d *Deserializer) FromFile(path string) (Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return d.Unmarshal(data)
}

func (d *Deserializer) parse(v interface{}) (Object, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, NewShapeError("expected a JSON object, got %T", v)
	}
	name, ok := m["type"].(string)
	if !ok {
		return nil, NewShapeError(`missing or non-string "type" member`)
	}
	if !objectTypes.Contains(name) {
		return nil, NewShapeError("unrecognized type %q", name)
	}
	for member := range m {
		if !knownMembers.Contains(member) {
			logger.Debugf("skipping unknown member %q in %s object", member, name)
		}
	}

	var (
		obj Object
		err error
	)
	switch name {
	case "Point":
		obj, err = d.parsePoint(m)
	case "MultiPoint":
		obj, err = d.parseMultiPoint(m)
	case "LineString":
		obj, err = d.parseLineString(m)
	case "MultiLineString":
		obj, err = d.parseMultiLineString(m)
	case "Polygon":
		obj, err = d.parsePolygon(m)
	case "MultiPolygon":
		obj, err = d.parseMultiPolygon(m)
	case "GeometryCollection":
		obj, err = d.parseGeometryCollection(m)
	case "Feature":
		obj, err = d.parseFeature(m)
	case "FeatureCollection":
		obj, err = d.parseFeatureCollection(m)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "%s", name)
	}
	return d.annotate(obj, m)
}

func (d *Deserializer) parsePoint(m map[string]interface{}) (Object, error) {
	coordinates, err := parsePosition(coordinatesMember(m))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewPoint(coordinates)
}

func (d *Deserializer) parseMultiPoint(m map[string]interface{}) (Object, error) {
	coordinates, err := parsePositions(coordinatesMember(m))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewMultiPoint(coordinates)
}

func (d *Deserializer) parseLineString(m map[string]interface{}) (Object, error) {
	coordinates, err := parsePositions(coordinatesMember(m))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewLineString(coordinates)
}

func (d *Deserializer) parseMultiLineString(m map[string]interface{}) (Object, error) {
	coordinates, err := parseLines(coordinatesMember(m))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewMultiLineString(coordinates)
}

func (d *Deserializer) parsePolygon(m map[string]interface{}) (Object, error) {
	rings, err := parseLines(coordinatesMember(m))
	if err != nil {
		return nil, errors.Trace(err)
	}
	if d.StrictRings {
		return NewStrictPolygon(rings)
	}
	return NewPolygon(rings)
}

func (d *Deserializer) parseMultiPolygon(m map[string]interface{}) (Object, error) {
	value, ok := coordinatesMember(m).([]interface{})
	if !ok {
		return nil, NewShapeError(`missing or malformed "coordinates" member`)
	}
	polygons := make([][][]Position, len(value))
	for i, p := range value {
		rings, err := parseLines(p)
		if err != nil {
			return nil, errors.Annotatef(err, "polygon %d", i)
		}
		polygons[i] = rings
	}
	if d.StrictRings {
		return NewStrictMultiPolygon(polygons)
	}
	return NewMultiPolygon(polygons)
}

func (d *Deserializer) parseGeometryCollection(m map[string]interface{}) (Object, error) {
	value, ok := m["geometries"].([]interface{})
	if !ok {
		return nil, NewShapeError(`missing or malformed "geometries" member`)
	}
	geometries := make([]Geometry, len(value))
	for i, gv := range value {
		obj, err := d.parse(gv)
		if err != nil {
			return nil, errors.Annotatef(err, "member %d", i)
		}
		geometry, ok := obj.(Geometry)
		if !ok {
			return nil, NewShapeError("member %d is a %s, not a geometry", i, obj.Type())
		}
		geometries[i] = geometry
	}
	return &GeometryCollection{Geometries: geometries}, nil
}

func (d *Deserializer) parseFeature(m map[string]interface{}) (*Feature, error) {
	gv, present := m["geometry"]
	if !present {
		return nil, NewShapeError(`missing "geometry" member`)
	}
	pv, present := m["properties"]
	if !present {
		return nil, NewShapeError(`missing "properties" member`)
	}
	f := &Feature{ID: m["id"]}
	if gv != nil {
		obj, err := d.parse(gv)
		if err != nil {
			return nil, errors.Annotatef(err, "geometry")
		}
		geometry, ok := obj.(Geometry)
		if !ok {
			return nil, NewShapeError("geometry member is a %s, not a geometry", obj.Type())
		}
		f.Geometry = geometry
	}
	if pv != nil {
		properties, ok := pv.(map[string]interface{})
		if !ok {
			return nil, NewShapeError(`malformed "properties" member`)
		}
		f.Properties = properties
	}
	return f, nil
}

func (d *Deserializer) parseFeatureCollection(m map[string]interface{}) (Object, error) {
	value, ok := m["features"].([]interface{})
	if !ok {
		return nil, NewShapeError(`missing or malformed "features" member`)
	}
	features := make([]*Feature, len(value))
	for i, fv := range value {
		fm, ok := fv.(map[string]interface{})
		if !ok {
			return nil, NewShapeError("member %d is not a JSON object", i)
		}
		if name, _ := fm["type"].(string); name != "Feature" {
			return nil, NewShapeError("member %d has type %q, want \"Feature\"", i, name)
		}
		f, err := d.parseFeature(fm)
		if err != nil {
			return nil, errors.Annotatef(err, "member %d", i)
		}
		annotated, err := d.annotate(f, fm)
		if err != nil {
			return nil, errors.Annotatef(err, "member %d", i)
		}
		features[i] = annotated.(*Feature)
	}
	return &FeatureCollection{Features: features}, nil
}

// annotate attaches any "bbox" and "crs" members of m to obj.
func (d *Deserializer) annotate(obj Object, m map[string]interface{}) (Object, error) {
	if cv, present := m["crs"]; present && cv != nil {
		crs, err := parseCRS(cv)
		if err != nil {
			return nil, errors.Trace(err)
		}
		obj = withCRS(obj, crs)
	}
	bv, present := m["bbox"]
	if !present {
		return obj, nil
	}
	value, ok := bv.([]interface{})
	if !ok || (len(value) != 4 && len(value) != 6) {
		return nil, NewShapeError(`"bbox" member must be an array of 4 or 6 numbers`)
	}
	box := make([]float64, len(value))
	for i, nv := range value {
		n, ok := nv.(float64)
		if !ok {
			return nil, NewShapeError(`"bbox" member must be an array of 4 or 6 numbers`)
		}
		box[i] = n
	}
	return withBBox(obj, box), nil
}

func parseCRS(v interface{}) (*CRS, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, NewShapeError(`"crs" member is not a JSON object`)
	}
	name, ok := m["type"].(string)
	if !ok {
		return nil, NewShapeError(`"crs" member has no "type"`)
	}
	properties, _ := m["properties"].(map[string]interface{})
	return &CRS{Type: name, Properties: properties}, nil
}

func coordinatesMember(m map[string]interface{}) interface{} {
	return m["coordinates"]
}

func parsePosition(v interface{}) (Position, error) {
	value, ok := v.([]interface{})
	if !ok {
		return nil, NewShapeError("expected a position array, got %T", v)
	}
	p := make(Position, len(value))
	for i, nv := range value {
		n, ok := nv.(float64)
		if !ok {
			return nil, NewShapeError("position component %d is %T, not a number", i, nv)
		}
		p[i] = n
	}
	return p, nil
}

func parsePositions(v interface{}) ([]Position, error) {
	value, ok := v.([]interface{})
	if !ok {
		return nil, NewShapeError("expected an array of positions, got %T", v)
	}
	out := make([]Position, len(value))
	for i, pv := range value {
		p, err := parsePosition(pv)
		if err != nil {
			return nil, errors.Annotatef(err, "position %d", i)
		}
		out[i] = p
	}
	return out, nil
}

func parseLines(v interface{}) ([][]Position, error) {
	value, ok := v.([]interface{})
	if !ok {
		return nil, NewShapeError("expected an array of position arrays, got %T", v)
	}
	out := make([][]Position, len(value))
	for i, lv := range value {
		line, err := parsePositions(lv)
		if err != nil {
			return nil, errors.Annotatef(err, "sequence %d", i)
		}
		out[i] = line
	}
	return out, nil
}

func withBBox(obj Object, box []float64) Object {
	switch g := obj.(type) {
	case *Point:
		return &Point{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *MultiPoint:
		return &MultiPoint{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *LineString:
		return &LineString{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *MultiLineString:
		return &MultiLineString{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *Polygon:
		return &Polygon{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *MultiPolygon:
		return &MultiPolygon{Coordinates: g.Coordinates, CRS: g.CRS, BBox: box}
	case *GeometryCollection:
		return &GeometryCollection{Geometries: g.Geometries, CRS: g.CRS, BBox: box}
	case *Feature:
		return &Feature{Geometry: g.Geometry, Properties: g.Properties, ID: g.ID, CRS: g.CRS, BBox: box}
	case *FeatureCollection:
		return &FeatureCollection{Features: g.Features, CRS: g.CRS, BBox: box}
	}
	return obj
}

// FromString parses a JSON string into a GeoJSON value using a zero
// Deserializer.
func FromString(s string) (Object, error) {
	d := Deserializer{}
	return d.FromString(s)
}

// FromFile parses the JSON file at path into a GeoJSON value using a zero
// Deserializer.
func FromFile(path string) (Object, error) {
	d := Deserializer{}
	return d.FromFile(path)
}
