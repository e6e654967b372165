package geojson

import (
	"strconv"

	"github.com/woozymasta/geo2json/internal/geom"
	"github.com/woozymasta/geo2json/internal/jtree"
)

// WriteID decides the top-level "id" member of a feature object. A
// configured id field wins; otherwise the feature's internal numeric
// identifier is used unless native data already supplied an id.
func WriteID(f *geom.Feature, obj *jtree.Value, idAlreadyWritten bool, opts *Options) {
	if opts.IDField != "" {
		idx := f.FieldIndex(opts.IDField)
		if idx < 0 {
			return
		}
		fld := &f.Fields[idx]
		fieldIsInteger := fld.Defn.Type == geom.FTInteger || fld.Defn.Type == geom.FTInteger64
		forcedInteger := opts.ForceIDFieldType && opts.ForcedIDFieldType == geom.FTInteger64
		if forcedInteger || (!opts.ForceIDFieldType && fieldIsInteger) {
			obj.Set("id", jtree.NewInt(fld.AsInt64()))
		} else {
			obj.Set("id", jtree.NewString(fld.AsString()))
		}
		return
	}

	if f.ID != geom.NullID && !idAlreadyWritten {
		if opts.ForceIDFieldType && opts.ForcedIDFieldType == geom.FTString {
			obj.Set("id", jtree.NewString(strconv.FormatInt(f.ID, 10)))
		} else {
			obj.Set("id", jtree.NewInt(f.ID))
		}
	}
}
