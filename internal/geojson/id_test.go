package geojson

import (
	"testing"

	"github.com/woozymasta/geo2json/internal/geom"
	"github.com/woozymasta/geo2json/internal/jtree"
)

func idMember(t *testing.T, f *geom.Feature, idAlreadyWritten bool, opts Options) string {
	t.Helper()
	obj := jtree.NewObject()
	WriteID(f, obj, idAlreadyWritten, &opts)
	return obj.String()
}

func TestWriteIDFromFeature(t *testing.T) {
	opts := defaults()
	f := geom.NewFeature()
	f.ID = 12

	got := idMember(t, f, false, opts)
	want := `{"id":12}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWriteIDUnset(t *testing.T) {
	opts := defaults()
	f := geom.NewFeature()

	got := idMember(t, f, false, opts)
	if got != `{}` {
		t.Errorf("Expected no id member, got %s", got)
	}
}

func TestWriteIDAlreadyWritten(t *testing.T) {
	// Native data supplied the id, the internal identifier stays out.
	opts := defaults()
	f := geom.NewFeature()
	f.ID = 12

	got := idMember(t, f, true, opts)
	if got != `{}` {
		t.Errorf("Expected no id member, got %s", got)
	}
}

func TestWriteIDForcedString(t *testing.T) {
	opts := defaults()
	opts.SetIDOptions("", "String")
	f := geom.NewFeature()
	f.ID = 12

	got := idMember(t, f, false, opts)
	want := `{"id":"12"}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestWriteIDFromField(t *testing.T) {
	tests := []struct {
		name    string
		fld     geom.Field
		idType  string
		already bool
		want    string
	}{
		{
			"integer_field",
			field("code", geom.FTInteger64, geom.SubNone, int64(77)),
			"",
			false,
			`{"id":77}`,
		},
		{
			"string_field",
			field("code", geom.FTString, geom.SubNone, "A7"),
			"",
			false,
			`{"id":"A7"}`,
		},
		{
			"integer_forced_string",
			field("code", geom.FTInteger64, geom.SubNone, int64(77)),
			"String",
			false,
			`{"id":"77"}`,
		},
		{
			"string_forced_integer",
			field("code", geom.FTString, geom.SubNone, "77"),
			"Integer",
			false,
			`{"id":77}`,
		},
		{
			// The configured field wins even over a native-data id.
			"field_beats_native",
			field("code", geom.FTInteger64, geom.SubNone, int64(77)),
			"",
			true,
			`{"id":77}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaults()
			opts.SetIDOptions("code", tt.idType)
			f := geom.NewFeature()
			f.ID = 5
			f.Fields = []geom.Field{tt.fld}

			got := idMember(t, f, tt.already, opts)
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWriteIDFieldMissing(t *testing.T) {
	opts := defaults()
	opts.SetIDOptions("missing", "")
	f := geom.NewFeature()
	f.ID = 5

	got := idMember(t, f, false, opts)
	if got != `{}` {
		t.Errorf("Expected no id member, got %s", got)
	}
}
