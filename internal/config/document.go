package config

import (
	"fmt"
	"math"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geo2json/internal/geojson"
	"github.com/woozymasta/geo2json/internal/geom"
)

// Document is the feature list read from an input file.
type Document struct {
	Features []Feature `yaml:"features" json:"features"`
}

// Feature describes one input feature.
type Feature struct {
	ID         *int64         `yaml:"id,omitempty" json:"id,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`
	Geometry   *Geometry      `yaml:"geometry,omitempty" json:"geometry,omitempty"`

	// Native is a raw GeoJSON fragment from a previous parse of this
	// feature, used for round-trip patching.
	Native string `yaml:"native,omitempty" json:"native,omitempty"`
}

// Geometry describes one input geometry. Coordinates nests per the GeoJSON
// convention for the given type.
type Geometry struct {
	Type        string     `yaml:"type" json:"type"`
	Coordinates any        `yaml:"coordinates,omitempty" json:"coordinates,omitempty"`
	Geometries  []Geometry `yaml:"geometries,omitempty" json:"geometries,omitempty"`
}

// ParseDocument decodes a feature document from JSON or YAML data.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if IsJSONDocument(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse feature document: %w", err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feature document: %w", err)
	}
	return &doc, nil
}

// Build converts the input feature into the writer's data model. Property
// fields are declared in name order so output is deterministic.
func (f *Feature) Build() (*geom.Feature, error) {
	feat := geom.NewFeature()
	if f.ID != nil {
		feat.ID = *f.ID
	}

	names := make([]string, 0, len(f.Properties))
	for name := range f.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fld, err := buildField(name, f.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		feat.Fields = append(feat.Fields, fld)
	}

	if f.Geometry != nil {
		g, err := f.Geometry.Build()
		if err != nil {
			return nil, err
		}
		feat.Geometry = g
	}

	if f.Native != "" {
		feat.NativeData = f.Native
		feat.NativeMediaType = geojson.GeoJSONMediaType
	}

	return feat, nil
}

func buildField(name string, value any) (geom.Field, error) {
	fld := geom.Field{Defn: geom.FieldDefn{Name: name}, Set: true}

	switch v := value.(type) {
	case nil:
		fld.Defn.Type = geom.FTString
		fld.Null = true
	case bool:
		fld.Defn.Type = geom.FTInteger
		fld.Defn.SubType = geom.SubBoolean
		if v {
			fld.Value = int64(1)
		} else {
			fld.Value = int64(0)
		}
	case int:
		fld.Defn.Type = geom.FTInteger64
		fld.Value = int64(v)
	case int64:
		fld.Defn.Type = geom.FTInteger64
		fld.Value = v
	case uint64:
		fld.Defn.Type = geom.FTInteger64
		fld.Value = int64(v)
	case float64:
		// JSON decoding yields float64 for every number; keep integral
		// values as integers.
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			fld.Defn.Type = geom.FTInteger64
			fld.Value = int64(v)
		} else {
			fld.Defn.Type = geom.FTReal
			fld.Value = v
		}
	case string:
		fld.Defn.Type = geom.FTString
		fld.Value = v
	case time.Time:
		fld.Defn.Type = geom.FTDateTime
		fld.Value = v
	case []any:
		return buildListField(name, v)
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fld, err
		}
		fld.Defn.Type = geom.FTString
		fld.Defn.SubType = geom.SubJSON
		fld.Value = string(raw)
	default:
		return fld, fmt.Errorf("unsupported value type %T", value)
	}

	return fld, nil
}

func buildListField(name string, list []any) (geom.Field, error) {
	fld := geom.Field{Defn: geom.FieldDefn{Name: name}, Set: true}

	allStrings := true
	allIntegers := true
	for _, item := range list {
		if _, ok := item.(string); !ok {
			allStrings = false
		}
		switch n := item.(type) {
		case bool, int, int64:
		case float64:
			if n != math.Trunc(n) {
				allIntegers = false
			}
		default:
			allIntegers = false
		}
	}

	switch {
	case len(list) > 0 && allStrings:
		out := make([]string, len(list))
		for i, item := range list {
			out[i] = item.(string)
		}
		fld.Defn.Type = geom.FTStringList
		fld.Value = out
	case allIntegers:
		out := make([]int64, len(list))
		for i, item := range list {
			switch n := item.(type) {
			case bool:
				if n {
					out[i] = 1
				}
			case int:
				out[i] = int64(n)
			case int64:
				out[i] = n
			case float64:
				out[i] = int64(n)
			}
		}
		fld.Defn.Type = geom.FTInteger64List
		fld.Value = out
	default:
		out := make([]float64, len(list))
		for i, item := range list {
			f, ok := asFloat(item)
			if !ok {
				return fld, fmt.Errorf("list element %d is not a number", i)
			}
			out[i] = f
		}
		fld.Defn.Type = geom.FTRealList
		fld.Value = out
	}

	return fld, nil
}

// Build converts the input geometry description into the model.
func (g *Geometry) Build() (*geom.Geometry, error) {
	switch g.Type {
	case "Point":
		if g.Coordinates == nil {
			return &geom.Geometry{Kind: geom.Point}, nil
		}
		c, hasZ, err := asCoord(g.Coordinates)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.Point, HasZ: hasZ, Coords: []geom.Coord{c}}, nil

	case "LineString":
		coords, hasZ, err := asCoordList(g.Coordinates)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.LineString, HasZ: hasZ, Coords: coords}, nil

	case "Polygon":
		rings, hasZ, err := asRingList(g.Coordinates)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.Polygon, HasZ: hasZ, Rings: rings}, nil

	case "MultiPoint", "MultiLineString", "MultiPolygon":
		return g.buildMulti()

	case "GeometryCollection":
		out := &geom.Geometry{Kind: geom.GeometryCollection}
		for i := range g.Geometries {
			child, err := g.Geometries[i].Build()
			if err != nil {
				return nil, err
			}
			out.HasZ = out.HasZ || child.HasZ
			out.Members = append(out.Members, child)
		}
		return out, nil
	}

	return nil, fmt.Errorf("unknown geometry type %q", g.Type)
}

func (g *Geometry) buildMulti() (*geom.Geometry, error) {
	items, ok := g.Coordinates.([]any)
	if !ok && g.Coordinates != nil {
		return nil, fmt.Errorf("%s coordinates are not an array", g.Type)
	}

	var kind, memberKind geom.Kind
	switch g.Type {
	case "MultiPoint":
		kind, memberKind = geom.MultiPoint, geom.Point
	case "MultiLineString":
		kind, memberKind = geom.MultiLineString, geom.LineString
	case "MultiPolygon":
		kind, memberKind = geom.MultiPolygon, geom.Polygon
	}

	out := &geom.Geometry{Kind: kind}
	for _, item := range items {
		member := &geom.Geometry{Kind: memberKind}
		var err error
		switch memberKind {
		case geom.Point:
			var c geom.Coord
			c, member.HasZ, err = asCoord(item)
			member.Coords = []geom.Coord{c}
		case geom.LineString:
			member.Coords, member.HasZ, err = asCoordList(item)
		case geom.Polygon:
			member.Rings, member.HasZ, err = asRingList(item)
		}
		if err != nil {
			return nil, err
		}
		out.HasZ = out.HasZ || member.HasZ
		out.Members = append(out.Members, member)
	}

	// Members of a 3D multi geometry all share the Z dimension.
	for _, m := range out.Members {
		m.HasZ = out.HasZ
	}

	return out, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func asCoord(v any) (geom.Coord, bool, error) {
	items, ok := v.([]any)
	if !ok || len(items) < 2 || len(items) > 3 {
		return geom.Coord{}, false, fmt.Errorf("position must be an array of 2 or 3 numbers, got %v", v)
	}
	var c geom.Coord
	x, okX := asFloat(items[0])
	y, okY := asFloat(items[1])
	if !okX || !okY {
		return geom.Coord{}, false, fmt.Errorf("position holds non-numeric values: %v", v)
	}
	c.X, c.Y = x, y
	if len(items) == 3 {
		z, okZ := asFloat(items[2])
		if !okZ {
			return geom.Coord{}, false, fmt.Errorf("position holds non-numeric values: %v", v)
		}
		c.Z = z
		return c, true, nil
	}
	return c, false, nil
}

func asCoordList(v any) ([]geom.Coord, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("coordinates are not an array: %v", v)
	}
	coords := make([]geom.Coord, 0, len(items))
	hasZ := false
	for _, item := range items {
		c, z, err := asCoord(item)
		if err != nil {
			return nil, false, err
		}
		hasZ = hasZ || z
		coords = append(coords, c)
	}
	return coords, hasZ, nil
}

func asRingList(v any) ([]geom.Ring, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("rings are not an array: %v", v)
	}
	rings := make([]geom.Ring, 0, len(items))
	hasZ := false
	for _, item := range items {
		points, z, err := asCoordList(item)
		if err != nil {
			return nil, false, err
		}
		hasZ = hasZ || z
		rings = append(rings, geom.Ring{Points: points})
	}
	return rings, hasZ, nil
}
