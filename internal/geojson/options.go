// Package geojson converts the internal feature/geometry model into GeoJSON
// document trees. All writers are pure functions of their inputs: they build
// and return jtree values and report failure with a nil result.
package geojson

import "github.com/woozymasta/geo2json/internal/geom"

// Options configures GeoJSON output. The zero value is not usable, start
// from DefaultOptions.
type Options struct {
	// Decimal digits for X/Y and Z coordinates. Negative means unset.
	XYCoordPrecision int
	ZCoordPrecision  int

	// Maximum significant figures for coordinates and real attributes.
	// Negative means unset. A set XY/Z precision takes precedence.
	SignificantFigures int

	// Reverse polygon rings that violate the RFC 7946 right-hand rule.
	PolygonRightHandRule bool

	// Allow native coordinates to be spliced over generated ones even when
	// the coordinate trees were not determined patchable.
	CanPatchCoordinatesWithNativeData bool

	// Filter reserved GeoJSON structural members when copying native data.
	HonourReservedRFC7946Members bool

	// Apply the RFC 7946 antimeridian heuristics when computing bboxes.
	BBoxRFC7946 bool

	// Attach a "bbox" member to written features.
	WriteBBox bool

	// Name of the attribute field used as the feature id.
	IDField string

	// Force the id representation to ForcedIDFieldType.
	ForceIDFieldType  bool
	ForcedIDFieldType geom.FieldType

	// Emit NaN and Infinity attribute values instead of skipping them.
	AllowNonFiniteValues bool

	// Try to inline bracket or brace delimited strings as JSON values.
	AutodetectJSONStrings bool
}

// DefaultOptions returns the writer defaults: unset precision, native-data
// coordinate patching allowed, JSON string autodetection on.
func DefaultOptions() Options {
	return Options{
		XYCoordPrecision:                  -1,
		ZCoordPrecision:                   -1,
		SignificantFigures:                -1,
		CanPatchCoordinatesWithNativeData: true,
		AutodetectJSONStrings:             true,
	}
}

// SetRFC7946Defaults switches the options into RFC 7946 compliance mode:
// 7 digits for X/Y, 3 for Z, right-hand-rule rings, antimeridian-aware
// bboxes, reserved-member filtering and no coordinate patching.
func (o *Options) SetRFC7946Defaults() {
	o.BBoxRFC7946 = true
	if o.XYCoordPrecision < 0 {
		o.XYCoordPrecision = 7
	}
	if o.ZCoordPrecision < 0 {
		o.ZCoordPrecision = 3
	}
	o.PolygonRightHandRule = true
	o.CanPatchCoordinatesWithNativeData = false
	o.HonourReservedRFC7946Members = true
}

// SetIDOptions configures the id field and an optional forced type, where
// idType is "String", "Integer" or empty.
func (o *Options) SetIDOptions(idField, idType string) {
	o.IDField = idField
	switch idType {
	case "String":
		o.ForceIDFieldType = true
		o.ForcedIDFieldType = geom.FTString
	case "Integer":
		o.ForceIDFieldType = true
		o.ForcedIDFieldType = geom.FTInteger64
	}
}
