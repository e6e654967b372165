package geojson

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geo2json/internal/geom"
	"github.com/woozymasta/geo2json/internal/jtree"
)

var nonFiniteWarnOnce sync.Once

func warnNonFiniteSkipped() {
	nonFiniteWarnOnce.Do(func() {
		log.Warn().Msg("NaN or Infinity value found, skipped")
	})
}

// WriteAttributes maps the set attribute fields of a feature to a GeoJSON
// "properties" object, in declared field order. writeIDIfFound controls
// whether a field named "id" is emitted when the feature id was already
// written elsewhere.
func WriteAttributes(f *geom.Feature, writeIDIfFound bool, opts *Options) *jtree.Value {
	props := jtree.NewObject()

	idField := -1
	if opts.IDField != "" {
		idField = f.FieldIndex(opts.IDField)
	}

	float32Figures := float32SignificantFigures(opts)

	// When a JSON-subtype field exists and the feature still carries its
	// native GeoJSON blob, prefer the original property nodes over
	// reparsing the string values.
	var nativeProps *jtree.Value
	if isGeoJSONMediaType(f.NativeMediaType) && f.NativeData != "" {
		for i := range f.Fields {
			if f.Fields[i].Defn.SubType != geom.SubJSON {
				continue
			}
			if root, err := jtree.Parse([]byte(f.NativeData)); err == nil {
				nativeProps = root.Get("properties")
			}
			break
		}
	}

	for i := range f.Fields {
		fld := &f.Fields[i]
		if !fld.Set || i == idField {
			continue
		}
		if !writeIDIfFound && fld.Defn.Name == "id" {
			continue
		}

		var prop *jtree.Value
		if fld.Null {
			prop = jtree.NewNull()
		} else {
			prop = attributeValue(fld, nativeProps, float32Figures, opts)
			if prop == nil {
				continue
			}
		}
		props.Set(fld.Defn.Name, prop)
	}

	return props
}

// attributeValue maps one non-null field value by its declared type. It
// returns nil when the value must be skipped (non-finite real without
// tolerance).
func attributeValue(fld *geom.Field, nativeProps *jtree.Value, float32Figures int, opts *Options) *jtree.Value {
	switch fld.Defn.Type {
	case geom.FTInteger, geom.FTInteger64:
		if fld.Defn.SubType == geom.SubBoolean {
			return jtree.NewBool(fld.AsInt64() != 0)
		}
		return jtree.NewInt(fld.AsInt64())

	case geom.FTReal:
		val := fld.AsFloat64()
		if math.IsNaN(val) || math.IsInf(val, 0) {
			if !opts.AllowNonFiniteValues {
				warnNonFiniteSkipped()
				return nil
			}
		}
		if fld.Defn.SubType == geom.SubFloat32 {
			return jtree.NewNumberLiteral(val, formatFloat32(val, float32Figures))
		}
		return jtree.NewNumberLiteral(val, formatDoubleSignificant(val, opts.SignificantFigures))

	case geom.FTString:
		return stringAttribute(fld, nativeProps, opts)

	case geom.FTIntegerList, geom.FTInteger64List:
		arr := jtree.NewArray()
		for _, n := range listInt64(fld.Value) {
			if fld.Defn.SubType == geom.SubBoolean {
				arr.Append(jtree.NewBool(n != 0))
			} else {
				arr.Append(jtree.NewInt(n))
			}
		}
		return arr

	case geom.FTRealList:
		arr := jtree.NewArray()
		for _, v := range listFloat64(fld.Value) {
			if fld.Defn.SubType == geom.SubFloat32 {
				arr.Append(jtree.NewNumberLiteral(v, formatFloat32(v, float32Figures)))
			} else {
				arr.Append(jtree.NewNumberLiteral(v, formatDoubleSignificant(v, opts.SignificantFigures)))
			}
		}
		return arr

	case geom.FTStringList:
		arr := jtree.NewArray()
		if list, ok := fld.Value.([]string); ok {
			for _, s := range list {
				arr.Append(jtree.NewString(s))
			}
		}
		return arr

	case geom.FTDate, geom.FTDateTime:
		s := fld.AsTime().Format(time.RFC3339)
		if fld.Defn.Type == geom.FTDate {
			if idx := strings.IndexByte(s, 'T'); idx >= 0 {
				s = s[:idx]
			}
		}
		return jtree.NewString(s)
	}

	// Any other declared type falls back to its decimal string form.
	return jtree.NewString(fld.AsString())
}

// stringAttribute inlines embedded JSON content when the subtype marks it,
// or when autodetection is on and the string is bracket or brace delimited.
// When the raw text exactly matches the native property, the original
// native node is reused instead of reparsing.
func stringAttribute(fld *geom.Field, nativeProps *jtree.Value, opts *Options) *jtree.Value {
	str := fld.AsString()
	delimited := len(str) >= 2 &&
		((str[0] == '{' && str[len(str)-1] == '}') ||
			(str[0] == '[' && str[len(str)-1] == ']'))

	if fld.Defn.SubType == geom.SubJSON || (opts.AutodetectJSONStrings && delimited) {
		if nativeProps != nil {
			if prop := nativeProps.Get(fld.Defn.Name); prop != nil && prop.Text() == str {
				return prop
			}
		}
		if delimited {
			if parsed, err := jtree.Parse([]byte(str)); err == nil {
				return parsed
			}
		}
	}

	return jtree.NewString(str)
}

func listInt64(v any) []int64 {
	if list, ok := v.([]int64); ok {
		return list
	}
	return nil
}

func listFloat64(v any) []float64 {
	if list, ok := v.([]float64); ok {
		return list
	}
	return nil
}
