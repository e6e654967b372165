package geojson

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geo2json/internal/geom"
	"github.com/woozymasta/geo2json/internal/jtree"
)

// WriteGeometry converts a geometry into a GeoJSON geometry object. It
// returns nil for an empty point, for unsupported geometry kinds and when
// any coordinate is non-finite; callers emit a null geometry in that case.
func WriteGeometry(g *geom.Geometry, opts *Options) *jtree.Value {
	if g == nil {
		return nil
	}

	// An empty point has no representable "coordinates" member, the whole
	// geometry becomes null. Other empty kinds produce empty arrays.
	if g.Kind == geom.Point && g.Empty() {
		return nil
	}

	obj := jtree.NewObject()
	obj.Set("type", jtree.NewString(g.Kind.String()))

	if g.Kind == geom.GeometryCollection {
		geoms := writeGeometryCollection(g, opts)
		if geoms == nil {
			return nil
		}
		obj.Set("geometries", geoms)
		return obj
	}

	var coords *jtree.Value
	switch g.Kind {
	case geom.Point:
		coords = writePointCoords(g, opts)
	case geom.LineString:
		coords = writeLineCoords(g.Coords, g.HasZ, opts)
	case geom.Polygon:
		coords = writePolygonCoords(g, opts)
	case geom.MultiPoint:
		coords = writeMultiCoords(g, opts, writePointCoords)
	case geom.MultiLineString:
		coords = writeMultiCoords(g, opts, func(m *geom.Geometry, o *Options) *jtree.Value {
			return writeLineCoords(m.Coords, m.HasZ, o)
		})
	case geom.MultiPolygon:
		coords = writeMultiCoords(g, opts, writePolygonCoords)
	default:
		log.Error().
			Str("kind", g.Kind.String()).
			Msg("Geometry type unsupported as a GeoJSON geometry, feature gets null geometry assigned")
	}

	if coords == nil {
		return nil
	}
	obj.Set("coordinates", coords)
	return obj
}

// writeCoords builds a single [x, y] or [x, y, z] position array. It
// returns nil when any used dimension is NaN or infinite.
func writeCoords(c geom.Coord, hasZ bool, opts *Options) *jtree.Value {
	bad := math.IsNaN(c.X) || math.IsInf(c.X, 0) ||
		math.IsNaN(c.Y) || math.IsInf(c.Y, 0)
	if hasZ {
		bad = bad || math.IsNaN(c.Z) || math.IsInf(c.Z, 0)
	}
	if bad {
		log.Warn().Msg("Infinite or NaN coordinate encountered")
		return nil
	}

	arr := jtree.NewArray()
	arr.Append(coordValue(c.X, 1, opts))
	arr.Append(coordValue(c.Y, 2, opts))
	if hasZ {
		arr.Append(coordValue(c.Z, 3, opts))
	}
	return arr
}

func writePointCoords(g *geom.Geometry, opts *Options) *jtree.Value {
	if len(g.Coords) == 0 {
		return nil
	}
	return writeCoords(g.Coords[0], g.HasZ, opts)
}

func writeLineCoords(points []geom.Coord, hasZ bool, opts *Options) *jtree.Value {
	arr := jtree.NewArray()
	for _, c := range points {
		pos := writeCoords(c, hasZ, opts)
		if pos == nil {
			return nil
		}
		arr.Append(pos)
	}
	return arr
}

// writeRingCoords writes one polygon ring. When right-hand-rule
// normalization is on and the measured winding is wrong for the ring's
// role, the point order is reversed index-for-index.
func writeRingCoords(ring *geom.Ring, isExterior, hasZ bool, opts *Options) *jtree.Value {
	invert := opts.PolygonRightHandRule &&
		((isExterior && ring.Clockwise()) || (!isExterior && !ring.Clockwise()))

	arr := jtree.NewArray()
	n := len(ring.Points)
	for i := 0; i < n; i++ {
		idx := i
		if invert {
			idx = n - 1 - i
		}
		pos := writeCoords(ring.Points[idx], hasZ, opts)
		if pos == nil {
			return nil
		}
		arr.Append(pos)
	}
	return arr
}

func writePolygonCoords(g *geom.Geometry, opts *Options) *jtree.Value {
	arr := jtree.NewArray()

	// An absent or empty exterior ring yields an empty coordinates array,
	// not an error.
	if len(g.Rings) == 0 || len(g.Rings[0].Points) == 0 {
		return arr
	}

	for i := range g.Rings {
		ring := writeRingCoords(&g.Rings[i], i == 0, g.HasZ, opts)
		if ring == nil {
			return nil
		}
		arr.Append(ring)
	}
	return arr
}

// writeMultiCoords assembles the coordinates of a homogeneous multi-part
// geometry from its members. A failed member write fails the whole parent.
func writeMultiCoords(g *geom.Geometry, opts *Options, writeMember func(*geom.Geometry, *Options) *jtree.Value) *jtree.Value {
	arr := jtree.NewArray()
	for _, m := range g.Members {
		child := writeMember(m, opts)
		if child == nil {
			return nil
		}
		arr.Append(child)
	}
	return arr
}

func writeGeometryCollection(g *geom.Geometry, opts *Options) *jtree.Value {
	arr := jtree.NewArray()
	for _, m := range g.Members {
		child := WriteGeometry(m, opts)
		if child == nil {
			return nil
		}
		arr.Append(child)
	}
	return arr
}
