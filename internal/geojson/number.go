package geojson

import (
	"math"
	"strconv"
	"strings"

	"github.com/woozymasta/geo2json/internal/jtree"
)

// Default decimal digits when neither a precision nor a significant-figures
// limit is configured.
const defaultCoordPrecision = 15

// float32 values carry at most 8 meaningful decimal digits.
const maxFloat32SignificantFigures = 8

// formatDouble renders a value with fixed decimal precision, trimming
// trailing zeros. Non-finite values map to the conventional NaN and
// Infinity tokens.
func formatDouble(v float64, precision int) string {
	if s, ok := nonFiniteToken(v); ok {
		return s
	}
	if precision < 0 {
		precision = defaultCoordPrecision
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// formatDoubleSignificant renders a value with the given number of
// significant digits in 'g' notation. A negative count yields the shortest
// representation that round-trips.
func formatDoubleSignificant(v float64, figures int) string {
	if s, ok := nonFiniteToken(v); ok {
		return s
	}
	if figures < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', figures, 64)
}

// formatFloat32 renders a single-precision value, capping the significant
// figures at 8 regardless of the configured limit.
func formatFloat32(v float64, figures int) string {
	f := float64(float32(v))
	if s, ok := nonFiniteToken(f); ok {
		return s
	}
	if figures < 0 || figures > maxFloat32SignificantFigures {
		figures = maxFloat32SignificantFigures
	}
	return strconv.FormatFloat(f, 'g', figures, 32)
}

func nonFiniteToken(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

// coordValue builds the numeric node for one coordinate. dim is 1 for X,
// 2 for Y and 3 for Z. A configured axis precision, or the absence of a
// significant-figures limit, selects fixed-precision formatting.
func coordValue(v float64, dim int, opts *Options) *jtree.Value {
	if dim <= 2 {
		if opts.XYCoordPrecision >= 0 || opts.SignificantFigures < 0 {
			return jtree.NewNumberLiteral(v, formatDouble(v, opts.XYCoordPrecision))
		}
	} else {
		if opts.ZCoordPrecision >= 0 || opts.SignificantFigures < 0 {
			return jtree.NewNumberLiteral(v, formatDouble(v, opts.ZCoordPrecision))
		}
	}
	return jtree.NewNumberLiteral(v, formatDoubleSignificant(v, opts.SignificantFigures))
}

// float32SignificantFigures resolves the per-feature significant-figure cap
// for single-precision attribute values.
func float32SignificantFigures(opts *Options) int {
	if opts.SignificantFigures >= 0 && opts.SignificantFigures < maxFloat32SignificantFigures {
		return opts.SignificantFigures
	}
	return maxFloat32SignificantFigures
}
