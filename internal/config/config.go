// Package config handles configuration loading and the feature document
// schema the CLI converts from.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geo2json/internal/geojson"
)

// Config represents the root configuration file structure. Flag values on
// the command line override it.
type Config struct {
	Precision          *int   `yaml:"precision,omitempty" json:"precision,omitempty"`
	ZPrecision         *int   `yaml:"z_precision,omitempty" json:"z_precision,omitempty"`
	SignificantFigures *int   `yaml:"significant_figures,omitempty" json:"significant_figures,omitempty"`
	RFC7946            bool   `yaml:"rfc7946,omitempty" json:"rfc7946,omitempty"`
	BBox               bool   `yaml:"bbox,omitempty" json:"bbox,omitempty"`
	IDField            string `yaml:"id_field,omitempty" json:"id_field,omitempty"`
	IDType             string `yaml:"id_type,omitempty" json:"id_type,omitempty"`
	AllowNonFinite     bool   `yaml:"allow_non_finite,omitempty" json:"allow_non_finite,omitempty"`

	// defining the input features directly in config.yaml
	Features []Feature `yaml:"features,omitempty" json:"features,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.IDType != "" && cfg.IDType != "String" && cfg.IDType != "Integer" {
		return nil, fmt.Errorf("invalid id_type %q, expected String or Integer", cfg.IDType)
	}

	return &cfg, nil
}

// WriterOptions converts the configuration into GeoJSON write options.
func (c *Config) WriterOptions() geojson.Options {
	opts := geojson.DefaultOptions()
	if c.Precision != nil {
		opts.XYCoordPrecision = *c.Precision
		opts.ZCoordPrecision = *c.Precision
	}
	if c.ZPrecision != nil {
		opts.ZCoordPrecision = *c.ZPrecision
	}
	if c.SignificantFigures != nil {
		opts.SignificantFigures = *c.SignificantFigures
	}
	opts.WriteBBox = c.BBox
	opts.AllowNonFiniteValues = c.AllowNonFinite
	opts.SetIDOptions(c.IDField, c.IDType)
	if c.RFC7946 {
		opts.SetRFC7946Defaults()
	}
	return opts
}

// IsJSONDocument guesses whether raw input data is JSON rather than YAML
// by its first non-blank byte.
func IsJSONDocument(data []byte) bool {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
