package main

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"

	"github.com/woozymasta/geo2json/internal/config"
	"github.com/woozymasta/geo2json/internal/geojson"
	"github.com/woozymasta/geo2json/internal/jtree"
	"github.com/woozymasta/geo2json/internal/logger"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file"`
	Input      string `short:"i" long:"in"     description:"Input feature document (JSON or YAML). Reads from stdin if empty"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`

	Precision          int    `short:"p" long:"precision"           default:"-1" description:"Decimal digits for X/Y coordinates"`
	ZPrecision         int    `short:"z" long:"z-precision"         default:"-1" description:"Decimal digits for Z coordinates"`
	SignificantFigures int    `short:"s" long:"significant-figures" default:"-1" description:"Maximum significant figures for numbers"`
	IDField            string `long:"id-field" description:"Attribute field used as the feature id"`
	IDType             string `long:"id-type"  description:"Forced id representation" choice:"String" choice:"Integer"`

	RFC7946        bool `short:"r" long:"rfc7946" description:"RFC 7946 compliance mode"`
	BBox           bool `short:"b" long:"bbox"    description:"Attach bounding boxes to features"`
	AllowNonFinite bool `long:"allow-non-finite"  description:"Emit NaN and Infinity attribute values"`

	GeometryOnly bool `short:"g" long:"geometry-only" description:"Emit bare geometry JSON for the first feature"`
	Compact      bool `short:"m" long:"compact"       description:"Minify output JSON"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := &config.Config{}
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		cfg = loaded
	}

	writeOpts := writerOptions(cfg, &opts)
	features := collectFeatures(cfg, &opts)

	var out []byte
	if opts.GeometryOnly {
		out = exportFirstGeometry(features, &opts)
	} else {
		out = exportCollection(features, &writeOpts)
	}

	if opts.Compact {
		m := minify.New()
		m.AddFunc("application/json", mjson.Minify)
		compacted, err := m.Bytes("application/json", out)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to minify output")
		}
		out = compacted
	}
	out = append(out, '\n')

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, out, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
		log.Info().
			Int("features", len(features)).
			Str("path", opts.Output).
			Msg("Conversion finished")
	} else {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
	}
}

// writerOptions merges config file defaults with command line flags, flags
// winning.
func writerOptions(cfg *config.Config, opts *Options) geojson.Options {
	writeOpts := cfg.WriterOptions()
	if opts.Precision >= 0 {
		writeOpts.XYCoordPrecision = opts.Precision
		writeOpts.ZCoordPrecision = opts.Precision
	}
	if opts.ZPrecision >= 0 {
		writeOpts.ZCoordPrecision = opts.ZPrecision
	}
	if opts.SignificantFigures >= 0 {
		writeOpts.SignificantFigures = opts.SignificantFigures
	}
	if opts.BBox {
		writeOpts.WriteBBox = true
	}
	if opts.AllowNonFinite {
		writeOpts.AllowNonFiniteValues = true
	}
	if opts.IDField != "" || opts.IDType != "" {
		writeOpts.SetIDOptions(opts.IDField, opts.IDType)
	}
	if opts.RFC7946 {
		writeOpts.SetRFC7946Defaults()
	}
	return writeOpts
}

// collectFeatures gathers inline config features and the input document.
func collectFeatures(cfg *config.Config, opts *Options) []config.Feature {
	features := cfg.Features

	var data []byte
	var err error
	if opts.Input != "" {
		data, err = os.ReadFile(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input file")
		}
	} else if len(features) == 0 {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
	}

	if len(bytes.TrimSpace(data)) > 0 {
		doc, err := config.ParseDocument(data)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to parse feature document")
		}
		features = append(features, doc.Features...)
	}

	if len(features) == 0 {
		log.Fatal().Msg("No features to convert")
	}

	return features
}

func exportFirstGeometry(features []config.Feature, opts *Options) []byte {
	feat, err := features[0].Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build feature")
	}
	if feat.Geometry == nil {
		log.Fatal().Msg("First feature has no geometry")
	}

	exportOpts := make(map[string]string)
	if opts.Precision >= 0 {
		exportOpts[geojson.OptXYCoordPrecision] = strconv.Itoa(opts.Precision)
	}
	if opts.ZPrecision >= 0 {
		exportOpts[geojson.OptZCoordPrecision] = strconv.Itoa(opts.ZPrecision)
	}
	if opts.SignificantFigures >= 0 {
		exportOpts[geojson.OptSignificantFigures] = strconv.Itoa(opts.SignificantFigures)
	}

	text, err := geojson.ExportGeometry(feat.Geometry, exportOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to convert geometry")
	}
	return []byte(text)
}

func exportCollection(features []config.Feature, writeOpts *geojson.Options) []byte {
	fc := jtree.NewObject()
	fc.Set("type", jtree.NewString("FeatureCollection"))
	arr := jtree.NewArray()

	for i := range features {
		feat, err := features[i].Build()
		if err != nil {
			log.Fatal().Err(err).Int("feature", i).Msg("Failed to build feature")
		}
		arr.Append(geojson.WriteFeature(feat, writeOpts))
	}

	fc.Set("features", arr)
	return fc.Pretty()
}
