package geojson

import (
	"strconv"
	"strings"

	"github.com/woozymasta/geo2json/internal/geom"
	"github.com/woozymasta/geo2json/internal/jtree"
)

// GeoJSONMediaType tags native-data blobs that hold a GeoJSON fragment.
const GeoJSONMediaType = "application/vnd.geo+json"

func isGeoJSONMediaType(mediaType string) bool {
	return strings.EqualFold(mediaType, GeoJSONMediaType)
}

// WriteFeature assembles one GeoJSON Feature object: native top-level
// members first, then id, properties, bbox and geometry. The geometry
// member is always present, null when the feature has no representable
// geometry.
func WriteFeature(f *geom.Feature, opts *Options) *jtree.Value {
	writeBBox := opts.WriteBBox

	obj := jtree.NewObject()
	obj.Set("type", jtree.NewString("Feature"))

	idAlreadyWritten := false
	hasProperties := true
	writeIDIfFound := true
	var nativeGeom *jtree.Value

	if isGeoJSONMediaType(f.NativeMediaType) && f.NativeData != "" {
		if root, err := jtree.Parse([]byte(f.NativeData)); err == nil && root.Kind == jtree.Object {
			hasProperties = false
			for _, m := range root.Members {
				if m.Key == "type" {
					continue
				}
				if m.Key == "properties" {
					hasProperties = true
					continue
				}
				if m.Key == "bbox" {
					writeBBox = true
					continue
				}
				if m.Key == "geometry" {
					nativeGeom = m.Value
					continue
				}
				if m.Key == "id" {
					kind := m.Value.Kind
					// https://tools.ietf.org/html/rfc7946#section-3.2
					if opts.HonourReservedRFC7946Members && !opts.ForceIDFieldType &&
						kind != jtree.String && kind != jtree.Int && kind != jtree.Double {
						continue
					}

					idAlreadyWritten = true

					if opts.ForceIDFieldType && opts.ForcedIDFieldType == geom.FTInteger64 {
						if kind != jtree.Int {
							obj.Set("id", jtree.NewInt(parseInt64(m.Value.Text())))
							writeIDIfFound = false
							continue
						}
					} else if opts.ForceIDFieldType && opts.ForcedIDFieldType == geom.FTString {
						if kind != jtree.String {
							obj.Set("id", jtree.NewString(m.Value.Text()))
							writeIDIfFound = false
							continue
						}
					}

					// A native id that matches an "id" attribute by type and
					// value suppresses the duplicate in properties.
					if idx := f.FieldIndex("id"); idx >= 0 {
						fld := &f.Fields[idx]
						switch {
						case kind == jtree.String && fld.Defn.Type == geom.FTString &&
							m.Value.Str == fld.AsString():
							writeIDIfFound = false
						case kind == jtree.Int &&
							(fld.Defn.Type == geom.FTInteger || fld.Defn.Type == geom.FTInteger64) &&
							m.Value.Int == fld.AsInt64():
							writeIDIfFound = false
						}
					}
				}

				// https://tools.ietf.org/html/rfc7946#section-7.1
				if opts.HonourReservedRFC7946Members &&
					(m.Key == "coordinates" || m.Key == "geometries" || m.Key == "features") {
					continue
				}

				obj.Set(m.Key, m.Value)
			}
		}
	}

	WriteID(f, obj, idAlreadyWritten, opts)

	if hasProperties {
		obj.Set("properties", WriteAttributes(f, writeIDIfFound, opts))
	}

	var objGeom *jtree.Value
	if f.Geometry != nil {
		objGeom = WriteGeometry(f.Geometry, opts)

		if writeBBox && !f.Geometry.Empty() {
			env := BBox(f.Geometry, opts)
			bbox := jtree.NewArray()
			bbox.Append(coordValue(env.MinX, 1, opts))
			bbox.Append(coordValue(env.MinY, 2, opts))
			if f.Geometry.HasZ {
				bbox.Append(coordValue(env.MinZ, 3, opts))
			}
			bbox.Append(coordValue(env.MaxX, 1, opts))
			bbox.Append(coordValue(env.MaxY, 2, opts))
			if f.Geometry.HasZ {
				bbox.Append(coordValue(env.MaxZ, 3, opts))
			}
			obj.Set("bbox", bbox)
		}

		if ok, patchable := IsPatchableGeometry(objGeom, nativeGeom); ok {
			PatchGeometry(objGeom, nativeGeom, patchable, opts)
		}
	}

	if objGeom == nil {
		objGeom = jtree.NewNull()
	}
	obj.Set("geometry", objGeom)

	return obj
}

func parseInt64(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
