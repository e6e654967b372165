package geojson

import (
	"math"

	"github.com/woozymasta/geo2json/internal/geom"
)

// Tolerance for deciding that an envelope bound sits on the antimeridian.
const antimeridianEps = 1e-7

// Empirically tuned thresholds of the wide-span heuristic. They do not
// generalize, treat them as approximations.
const (
	wideSpanMemberLimit = 120.0
	wideSpanWrapLimit   = 180.0
)

// BBox computes the bounding envelope of a geometry. In RFC 7946 mode two
// antimeridian heuristics may replace the X bounds of multi-part
// geometries, producing an inverted (west > east) range that signals a
// 180° crossing.
func BBox(g *geom.Geometry, opts *Options) geom.Envelope {
	env, _ := g.Envelope()

	if !opts.BBoxRFC7946 {
		return env
	}

	multiPart := isCollectionKind(g.Kind) && len(g.Members) >= 2

	if multiPart && math.Abs(env.MinX-(-180.0)) < antimeridianEps &&
		math.Abs(env.MaxX-180.0) < antimeridianEps {
		// First heuristic, quite safe: the geometry looks to have been
		// really split at the dateline.
		westLimit := -180.0
		eastLimit := 180.0
		westInit := false
		eastInit := false
		for _, m := range g.Members {
			if m.Empty() {
				continue
			}
			part, _ := m.Envelope()
			touchesMinus180 := math.Abs(part.MinX-(-180.0)) < antimeridianEps
			touchesPlus180 := math.Abs(part.MaxX-180.0) < antimeridianEps
			switch {
			case touchesMinus180 && !touchesPlus180:
				if part.MaxX > eastLimit || !eastInit {
					eastInit = true
					eastLimit = part.MaxX
				}
			case touchesPlus180 && !touchesMinus180:
				if part.MinX < westLimit || !westInit {
					westInit = true
					westLimit = part.MinX
				}
			case !touchesMinus180 && !touchesPlus180:
				if part.MinX > 0 && (part.MinX < westLimit || !westInit) {
					westInit = true
					westLimit = part.MinX
				} else if part.MaxX < 0 && (part.MaxX > eastLimit || !eastInit) {
					eastInit = true
					eastLimit = part.MaxX
				}
			}
		}
		env.MinX = westLimit
		env.MaxX = eastLimit
	} else if multiPart && env.MaxX-env.MinX > wideSpanWrapLimit &&
		env.MinX >= -180 && env.MaxX <= 180 {
		// More fragile heuristic for a geometry that spans over the
		// antimeridian without touching it, e.g. Alaska.
		westLimit := math.Inf(1)
		eastLimit := math.Inf(-1)
		for _, m := range g.Members {
			if m.Empty() {
				continue
			}
			part, _ := m.Envelope()
			if part.MinX > -wideSpanMemberLimit && part.MaxX < wideSpanMemberLimit {
				// A member sitting away from both sides makes the split
				// ambiguous, give up.
				westLimit = math.Inf(1)
				eastLimit = math.Inf(-1)
				break
			}
			if part.MinX > 0 {
				westLimit = math.Min(westLimit, part.MinX)
			} else {
				eastLimit = math.Max(eastLimit, part.MaxX)
			}
		}
		if !math.IsInf(westLimit, 1) &&
			eastLimit+360-westLimit < wideSpanWrapLimit {
			env.MinX = westLimit
			env.MaxX = eastLimit
		}
	}

	return env
}

func isCollectionKind(k geom.Kind) bool {
	switch k {
	case geom.MultiPoint, geom.MultiLineString, geom.MultiPolygon, geom.GeometryCollection:
		return true
	}
	return false
}
