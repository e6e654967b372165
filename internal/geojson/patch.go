package geojson

import (
	"github.com/woozymasta/geo2json/internal/jtree"
)

// The patch engine splices extra information from a feature's native
// GeoJSON back into freshly generated geometry: coordinate dimensions
// beyond Z and top-level members the data model cannot represent.
//
// Coordinate trees nest at depth 0 (Point), 1 (LineString, MultiPoint),
// 2 (Polygon, MultiLineString) or 3 (MultiPolygon). All checks scan depths
// 0 through 3 and take the first depth at which the trees are structurally
// comparable.
const maxCoordinateDepth = 3

// isPatchablePosition reports whether a generated position can receive
// extra dimensions: both sides flat arrays, the generated one holding a 2D
// or 3D position and the native one at least four elements.
func isPatchablePosition(gen, native *jtree.Value) bool {
	return gen.IsArray() && native.IsArray() &&
		(gen.Len() == 2 || gen.Len() == 3) &&
		native.Len() >= 4 &&
		!firstItemIsArray(gen) && !firstItemIsArray(native)
}

// isCompatiblePosition reports structural identity of two flat positions:
// equal length, nothing to patch.
func isCompatiblePosition(gen, native *jtree.Value) bool {
	return gen.IsArray() && native.IsArray() &&
		gen.Len() == native.Len() &&
		!firstItemIsArray(gen) && !firstItemIsArray(native)
}

func firstItemIsArray(v *jtree.Value) bool {
	return v.Len() > 0 && v.Items[0].Kind == jtree.Array
}

// patchPosition appends the native elements from index 3 onward onto the
// generated position.
func patchPosition(gen, native *jtree.Value) {
	for i := 3; i < native.Len(); i++ {
		gen.Append(native.Items[i])
	}
}

// isPatchableArray re-checks structure down to the given depth before
// patching. Only the first child per level is inspected, the extensive
// check already happened in computePatchableOrCompatibleArray.
func isPatchableArray(gen, native *jtree.Value, depth int) bool {
	if depth == 0 {
		return isPatchablePosition(gen, native)
	}
	if gen.IsArray() && native.IsArray() && gen.Len() == native.Len() {
		if gen.Len() > 0 {
			if !isPatchableArray(gen.Items[0], native.Items[0], depth-1) {
				return false
			}
		}
		return true
	}
	return false
}

// computePatchableOrCompatibleArray determines whether two coordinate
// trees are comparable at the given depth, and if so whether every leaf
// position pair is patchable and/or compatible. Comparable means the
// array-length structure matches recursively and neither side nests one
// level deeper than expected.
func computePatchableOrCompatibleArray(gen, native *jtree.Value, depth int) (ok, patchable, compatible bool) {
	patchable = true
	compatible = true
	ok = walkPatchableOrCompatible(gen, native, depth, &patchable, &compatible)
	return ok, patchable, compatible
}

func walkPatchableOrCompatible(gen, native *jtree.Value, depth int, patchable, compatible *bool) bool {
	if depth == 0 {
		*patchable = *patchable && isPatchablePosition(gen, native)
		*compatible = *compatible && isCompatiblePosition(gen, native)
		return gen.IsArray() && native.IsArray() &&
			!firstItemIsArray(gen) && !firstItemIsArray(native)
	}

	if gen.IsArray() && native.IsArray() && gen.Len() == native.Len() {
		for i := 0; i < gen.Len(); i++ {
			if !walkPatchableOrCompatible(gen.Items[i], native.Items[i], depth-1, patchable, compatible) {
				return false
			}
			if !*patchable && !*compatible {
				break
			}
		}
		return true
	}

	*patchable = false
	*compatible = false
	return false
}

// patchArray applies patchPosition to every leaf position pair at the
// given depth.
func patchArray(gen, native *jtree.Value, depth int) {
	if depth == 0 {
		patchPosition(gen, native)
		return
	}
	for i := 0; i < gen.Len(); i++ {
		patchArray(gen.Items[i], native.Items[i], depth-1)
	}
}

// IsPatchableGeometry reports whether the native geometry can be merged
// into the generated one: both objects, matching "type" strings at every
// corresponding node and comparable coordinate trees. patchableCoords
// tells the caller whether coordinate patching applies.
func IsPatchableGeometry(gen, native *jtree.Value) (ok, patchableCoords bool) {
	var patchable, compatible bool
	ok = isPatchableGeometry(gen, native, &patchable, &compatible)
	return ok, patchable
}

func isPatchableGeometry(gen, native *jtree.Value, patchable, compatible *bool) bool {
	if gen == nil || native == nil ||
		gen.Kind != jtree.Object || native.Kind != jtree.Object {
		return false
	}

	genType := gen.Get("type")
	nativeType := native.Get("type")
	if genType == nil || nativeType == nil ||
		genType.Kind != jtree.String || nativeType.Kind != jtree.String ||
		genType.Str != nativeType.Str {
		return false
	}

	for _, m := range native.Members {
		if m.Key == "coordinates" {
			genCoords := gen.Get("coordinates")
			for depth := 0; depth <= maxCoordinateDepth; depth++ {
				ok, p, c := computePatchableOrCompatibleArray(genCoords, m.Value, depth)
				if ok {
					*patchable = p
					*compatible = c
					return p || c
				}
			}
			return false
		}
		if m.Key == "geometries" {
			genGeoms := gen.Get("geometries")
			nativeGeoms := m.Value
			if genGeoms.IsArray() && nativeGeoms.IsArray() &&
				genGeoms.Len() == nativeGeoms.Len() {
				for i := 0; i < genGeoms.Len(); i++ {
					if !isPatchableGeometry(genGeoms.Items[i], nativeGeoms.Items[i], patchable, compatible) {
						return false
					}
				}
				return true
			}
			return false
		}
	}
	return false
}

// PatchGeometry merges the native geometry's members into the generated
// geometry object. "type" and "bbox" are never touched, coordinates are
// patched per the depth scan, geometry collections recurse pairwise,
// reserved structural members are filtered in RFC 7946 mode and every
// other member is copied verbatim, overwriting same-named keys.
func PatchGeometry(gen, native *jtree.Value, patchableCoords bool, opts *Options) {
	for _, m := range native.Members {
		if m.Key == "type" || m.Key == "bbox" {
			continue
		}
		if m.Key == "coordinates" {
			if !patchableCoords && !opts.CanPatchCoordinatesWithNativeData {
				continue
			}
			genCoords := gen.Get("coordinates")
			for depth := 0; depth <= maxCoordinateDepth; depth++ {
				if isPatchableArray(genCoords, m.Value, depth) {
					patchArray(genCoords, m.Value, depth)
					break
				}
			}
			continue
		}
		if m.Key == "geometries" {
			genGeoms := gen.Get("geometries")
			for i := 0; i < genGeoms.Len() && i < m.Value.Len(); i++ {
				PatchGeometry(genGeoms.Items[i], m.Value.Items[i], patchableCoords, opts)
			}
			continue
		}

		// https://tools.ietf.org/html/rfc7946#section-7.1
		if opts.HonourReservedRFC7946Members &&
			(m.Key == "geometry" || m.Key == "properties" || m.Key == "features") {
			continue
		}

		gen.Set(m.Key, m.Value)
	}
}
