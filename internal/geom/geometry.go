// Package geom holds the vector geometry and feature model consumed by the
// GeoJSON writer. Geometries are a tagged union over the standard GeoJSON
// kinds; leaf kinds carry ordered coordinates, collection kinds carry child
// geometries.
package geom

import "math"

// Kind identifies the geometry variant.
type Kind uint8

const (
	Unknown Kind = iota
	Point
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
)

// String returns the canonical capitalized GeoJSON type name.
func (k Kind) String() string {
	switch k {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	case MultiPoint:
		return "MultiPoint"
	case MultiLineString:
		return "MultiLineString"
	case MultiPolygon:
		return "MultiPolygon"
	case GeometryCollection:
		return "GeometryCollection"
	}
	return "Unknown"
}

// Coord is a single position. Z is meaningful only when the owning
// geometry has its 3D flag set.
type Coord struct {
	X, Y, Z float64
}

// Ring is an ordered closed sequence of positions.
type Ring struct {
	Points []Coord
}

// Clockwise reports the winding direction of the ring in the XY plane,
// derived from the sign of its shoelace area.
func (r *Ring) Clockwise() bool {
	var sum float64
	n := len(r.Points)
	for i := 0; i < n; i++ {
		p := r.Points[i]
		q := r.Points[(i+1)%n]
		sum += (q.X - p.X) * (q.Y + p.Y)
	}
	return sum > 0
}

// Geometry is a tagged union over the GeoJSON geometry kinds.
//
//   - Point: Coords holds zero (empty point) or one position
//   - LineString: Coords holds the vertices
//   - Polygon: Rings holds the exterior ring first, then interior rings
//   - MultiPoint, MultiLineString, MultiPolygon, GeometryCollection:
//     Members holds the child geometries
type Geometry struct {
	Kind    Kind
	HasZ    bool
	Coords  []Coord
	Rings   []Ring
	Members []*Geometry
}

// Empty reports whether the geometry carries no coordinates at all.
func (g *Geometry) Empty() bool {
	switch g.Kind {
	case Point, LineString:
		return len(g.Coords) == 0
	case Polygon:
		return len(g.Rings) == 0 || len(g.Rings[0].Points) == 0
	case MultiPoint, MultiLineString, MultiPolygon, GeometryCollection:
		for _, m := range g.Members {
			if !m.Empty() {
				return false
			}
		}
		return true
	}
	return true
}

// SwapXY exchanges the X and Y values of every coordinate, recursively.
// Callers apply it before writing when the spatial reference system uses
// latitude/longitude axis order.
func (g *Geometry) SwapXY() {
	for i := range g.Coords {
		g.Coords[i].X, g.Coords[i].Y = g.Coords[i].Y, g.Coords[i].X
	}
	for ri := range g.Rings {
		pts := g.Rings[ri].Points
		for i := range pts {
			pts[i].X, pts[i].Y = pts[i].Y, pts[i].X
		}
	}
	for _, m := range g.Members {
		m.SwapXY()
	}
}

// Envelope is an axis-aligned 3D bounding box. Z bounds are meaningful
// only when the geometry has a Z dimension.
type Envelope struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Envelope computes the axis-aligned bounds of all coordinates. The second
// return value is false when the geometry is empty.
func (g *Geometry) Envelope() (Envelope, bool) {
	env := Envelope{
		MinX: math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}
	if !g.mergeEnvelope(&env) {
		return Envelope{}, false
	}
	return env, true
}

func (g *Geometry) mergeEnvelope(env *Envelope) bool {
	found := false
	merge := func(c Coord) {
		found = true
		env.MinX = math.Min(env.MinX, c.X)
		env.MaxX = math.Max(env.MaxX, c.X)
		env.MinY = math.Min(env.MinY, c.Y)
		env.MaxY = math.Max(env.MaxY, c.Y)
		if g.HasZ {
			env.MinZ = math.Min(env.MinZ, c.Z)
			env.MaxZ = math.Max(env.MaxZ, c.Z)
		}
	}
	for _, c := range g.Coords {
		merge(c)
	}
	for _, r := range g.Rings {
		for _, c := range r.Points {
			merge(c)
		}
	}
	for _, m := range g.Members {
		if m.mergeEnvelope(env) {
			found = true
		}
	}
	return found
}
