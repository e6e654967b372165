package geojson

import (
	"math"
	"testing"

	"github.com/woozymasta/geo2json/internal/geom"
)

func pt(x, y float64) *geom.Geometry {
	return &geom.Geometry{Kind: geom.Point, Coords: []geom.Coord{{X: x, Y: y}}}
}

func defaults() Options {
	return DefaultOptions()
}

func writeJSON(t *testing.T, g *geom.Geometry, opts Options) string {
	t.Helper()
	v := WriteGeometry(g, &opts)
	if v == nil {
		t.Fatal("WriteGeometry returned nil")
	}
	return v.String()
}

func TestWritePoint(t *testing.T) {
	opts := defaults()

	got := writeJSON(t, pt(1.5, 2.5), opts)
	want := `{"type":"Point","coordinates":[1.5,2.5]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWritePoint3D(t *testing.T) {
	opts := defaults()
	g := &geom.Geometry{Kind: geom.Point, HasZ: true, Coords: []geom.Coord{{X: 1, Y: 2, Z: 3}}}

	got := writeJSON(t, g, opts)
	want := `{"type":"Point","coordinates":[1,2,3]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWriteEmptyPointIsNull(t *testing.T) {
	opts := defaults()
	if v := WriteGeometry(&geom.Geometry{Kind: geom.Point}, &opts); v != nil {
		t.Errorf("Expected nil for empty point, got %s", v.String())
	}
}

func TestWriteLineString(t *testing.T) {
	opts := defaults()
	g := &geom.Geometry{Kind: geom.LineString, Coords: []geom.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0},
	}}

	got := writeJSON(t, g, opts)
	want := `{"type":"LineString","coordinates":[[0,0],[1,1],[2,0]]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWritePolygonRightHandRule(t *testing.T) {
	// Clockwise exterior ring must come out counter-clockwise, reversed
	// index-for-index.
	cw := []geom.Coord{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
	}
	g := &geom.Geometry{Kind: geom.Polygon, Rings: []geom.Ring{{Points: cw}}}

	opts := defaults()
	opts.SetRFC7946Defaults()

	got := writeJSON(t, g, opts)
	want := `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWritePolygonKeepsCorrectWinding(t *testing.T) {
	ccw := []geom.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0},
	}
	g := &geom.Geometry{Kind: geom.Polygon, Rings: []geom.Ring{{Points: ccw}}}

	opts := defaults()
	opts.SetRFC7946Defaults()

	got := writeJSON(t, g, opts)
	want := `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWritePolygonInteriorRingReversed(t *testing.T) {
	exterior := []geom.Coord{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
	}
	// Counter-clockwise interior ring is wrong under the right-hand rule.
	interior := []geom.Coord{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1},
	}
	g := &geom.Geometry{Kind: geom.Polygon, Rings: []geom.Ring{
		{Points: exterior}, {Points: interior},
	}}

	opts := defaults()
	opts.PolygonRightHandRule = true

	got := writeJSON(t, g, opts)
	want := `{"type":"Polygon","coordinates":[` +
		`[[0,0],[4,0],[4,4],[0,4],[0,0]],` +
		`[[1,1],[1,2],[2,2],[2,1],[1,1]]]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWritePolygonEmptyExterior(t *testing.T) {
	opts := defaults()
	g := &geom.Geometry{Kind: geom.Polygon}

	got := writeJSON(t, g, opts)
	want := `{"type":"Polygon","coordinates":[]}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWriteMultiGeometries(t *testing.T) {
	opts := defaults()
	tests := []struct {
		name string
		g    *geom.Geometry
		want string
	}{
		{
			name: "multipoint",
			g: &geom.Geometry{Kind: geom.MultiPoint, Members: []*geom.Geometry{
				pt(1, 2), pt(3, 4),
			}},
			want: `{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`,
		},
		{
			name: "multilinestring",
			g: &geom.Geometry{Kind: geom.MultiLineString, Members: []*geom.Geometry{
				{Kind: geom.LineString, Coords: []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}},
			}},
			want: `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]]]}`,
		},
		{
			name: "multipolygon",
			g: &geom.Geometry{Kind: geom.MultiPolygon, Members: []*geom.Geometry{
				{Kind: geom.Polygon, Rings: []geom.Ring{{Points: []geom.Coord{
					{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
				}}}},
			}},
			want: `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`,
		},
		{
			name: "geometrycollection",
			g: &geom.Geometry{Kind: geom.GeometryCollection, Members: []*geom.Geometry{
				pt(1, 2),
				{Kind: geom.LineString, Coords: []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}},
			}},
			want: `{"type":"GeometryCollection","geometries":[` +
				`{"type":"Point","coordinates":[1,2]},` +
				`{"type":"LineString","coordinates":[[0,0],[1,1]]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeJSON(t, tt.g, opts); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNonFiniteCoordinateFailsWrite(t *testing.T) {
	opts := defaults()
	tests := []struct {
		name string
		g    *geom.Geometry
	}{
		{"nan_point", pt(math.NaN(), 2)},
		{"inf_linestring", &geom.Geometry{Kind: geom.LineString, Coords: []geom.Coord{
			{X: 0, Y: 0}, {X: math.Inf(1), Y: 1},
		}}},
		{
			// The bad member poisons the whole parent.
			"multipoint_with_bad_member",
			&geom.Geometry{Kind: geom.MultiPoint, Members: []*geom.Geometry{
				pt(1, 2), pt(3, math.NaN()),
			}},
		},
		{
			"collection_with_bad_member",
			&geom.Geometry{Kind: geom.GeometryCollection, Members: []*geom.Geometry{
				pt(1, 2), pt(math.Inf(-1), 0),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := WriteGeometry(tt.g, &opts); v != nil {
				t.Errorf("Expected nil, got %s", v.String())
			}
		})
	}
}

func TestUnsupportedKindIsNull(t *testing.T) {
	opts := defaults()
	if v := WriteGeometry(&geom.Geometry{Kind: geom.Unknown}, &opts); v != nil {
		t.Errorf("Expected nil for unsupported kind, got %s", v.String())
	}
}

func TestWriteGeometryIdempotent(t *testing.T) {
	g := &geom.Geometry{Kind: geom.Polygon, Rings: []geom.Ring{{Points: []geom.Coord{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0},
	}}}}
	opts := defaults()
	opts.SetRFC7946Defaults()

	first := writeJSON(t, g, opts)
	second := writeJSON(t, g, opts)
	if first != second {
		t.Errorf("Writes differ:\n%s\n%s", first, second)
	}
}
