package geojson

import (
	"math"
	"testing"
)

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		expected  string
	}{
		{"trim_trailing_zeros", 1.5, 7, "1.5"},
		{"trim_to_integer", 3.0, 7, "3"},
		{"round", 1.23456789, 3, "1.235"},
		{"zero", 0, 7, "0"},
		{"negative", -122.4194155, 7, "-122.4194155"},
		{"default_precision", 0.1, -1, "0.1"},
		{"nan", math.NaN(), 7, "NaN"},
		{"pos_inf", math.Inf(1), 7, "Infinity"},
		{"neg_inf", math.Inf(-1), 7, "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDouble(tt.value, tt.precision); got != tt.expected {
				t.Errorf("formatDouble(%v, %d) = %q, expected %q", tt.value, tt.precision, got, tt.expected)
			}
		})
	}
}

func TestFormatDoubleSignificant(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		figures  int
		expected string
	}{
		// Significant figures are magnitude independent.
		{"small_magnitude", 0.000123456, 3, "0.000123"},
		{"unit_magnitude", 1.23456, 3, "1.23"},
		{"large_magnitude", 123456.0, 3, "1.23e+05"},
		{"exact", 2.5, 5, "2.5"},
		{"nan", math.NaN(), 3, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDoubleSignificant(tt.value, tt.figures); got != tt.expected {
				t.Errorf("formatDoubleSignificant(%v, %d) = %q, expected %q", tt.value, tt.figures, got, tt.expected)
			}
		})
	}
}

func TestFormatFloat32(t *testing.T) {
	// The float32 path caps at 8 significant figures no matter how many
	// are configured.
	if got := formatFloat32(1.0/3.0, 20); got != "0.33333334" {
		t.Errorf("Expected 0.33333334, got %q", got)
	}
	// A smaller configured cap is honored.
	if got := formatFloat32(1.0/3.0, 3); got != "0.333" {
		t.Errorf("Expected 0.333, got %q", got)
	}
	if got := formatFloat32(math.Inf(-1), -1); got != "-Infinity" {
		t.Errorf("Expected -Infinity, got %q", got)
	}
	if got := formatFloat32(math.NaN(), -1); got != "NaN" {
		t.Errorf("Expected NaN, got %q", got)
	}
}

func TestCoordValuePolicySelection(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		value    float64
		dim      int
		expected string
	}{
		{
			name:     "xy_precision_wins_over_figures",
			opts:     Options{XYCoordPrecision: 2, ZCoordPrecision: -1, SignificantFigures: 3},
			value:    123.456,
			dim:      1,
			expected: "123.46",
		},
		{
			name:     "figures_used_without_precision",
			opts:     Options{XYCoordPrecision: -1, ZCoordPrecision: -1, SignificantFigures: 3},
			value:    123.456,
			dim:      2,
			expected: "123",
		},
		{
			name:     "default_fixed_precision",
			opts:     Options{XYCoordPrecision: -1, ZCoordPrecision: -1, SignificantFigures: -1},
			value:    0.5,
			dim:      1,
			expected: "0.5",
		},
		{
			name:     "z_precision_independent",
			opts:     Options{XYCoordPrecision: 7, ZCoordPrecision: 1, SignificantFigures: -1},
			value:    10.26,
			dim:      3,
			expected: "10.3",
		},
		{
			name:     "z_falls_back_to_figures",
			opts:     Options{XYCoordPrecision: 7, ZCoordPrecision: -1, SignificantFigures: 2},
			value:    10.26,
			dim:      3,
			expected: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := coordValue(tt.value, tt.dim, &tt.opts)
			if v.Raw != tt.expected {
				t.Errorf("coordValue(%v, %d) = %q, expected %q", tt.value, tt.dim, v.Raw, tt.expected)
			}
		})
	}
}
