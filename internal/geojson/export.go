package geojson

import (
	"errors"
	"strconv"

	"github.com/woozymasta/geo2json/internal/geom"
)

// Option names recognized by ExportGeometry.
const (
	OptCoordinatePrecision = "COORDINATE_PRECISION"
	OptXYCoordPrecision    = "XY_COORD_PRECISION"
	OptZCoordPrecision     = "Z_COORD_PRECISION"
	OptSignificantFigures  = "SIGNIFICANT_FIGURES"
)

// ErrUnsupportedGeometry is returned when a geometry cannot be represented
// as GeoJSON, either by kind or because it contains non-finite coordinates.
var ErrUnsupportedGeometry = errors.New("geometry cannot be converted to GeoJSON")

// ExportGeometry is the standalone geometry-only entry point: it converts
// a geometry to serialized GeoJSON text under a flat option set.
//
// XY_COORD_PRECISION and Z_COORD_PRECISION override COORDINATE_PRECISION,
// which overrides SIGNIFICANT_FIGURES. With none set, coordinates use the
// default of 15 decimal digits.
func ExportGeometry(g *geom.Geometry, exportOpts map[string]string) (string, error) {
	coordPrecision := fetchInt(exportOpts, OptCoordinatePrecision, -1)

	opts := DefaultOptions()
	opts.XYCoordPrecision = fetchInt(exportOpts, OptXYCoordPrecision, coordPrecision)
	opts.ZCoordPrecision = fetchInt(exportOpts, OptZCoordPrecision, coordPrecision)
	opts.SignificantFigures = fetchInt(exportOpts, OptSignificantFigures, -1)

	v := WriteGeometry(g, &opts)
	if v == nil {
		return "", ErrUnsupportedGeometry
	}
	return v.String(), nil
}

func fetchInt(m map[string]string, key string, def int) int {
	s, ok := m[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
