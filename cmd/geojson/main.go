// Command geojson reads a GeoJSON document, applies the library's
// serialization options to it and writes the result.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v2"

	"github.com/juju/geojson"
)

type options struct {
	Input     string `short:"i" long:"in" description:"Input file path. Reads from stdin if empty"`
	Output    string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Config    string `short:"c" long:"config" description:"YAML file with serialization options"`
	Rewind    bool   `long:"rewind" description:"Enforce polygon ring winding"`
	Cut       bool   `long:"cut" description:"Split geometries crossing the antimeridian"`
	BBox      bool   `long:"bbox" description:"Write bbox members"`
	CRS       bool   `long:"crs" description:"Write crs members"`
	Precision int    `short:"p" long:"precision" default:"-1" description:"Decimal digits to round coordinates to. Negative disables rounding"`
	Strict    bool   `long:"strict" description:"Reject open polygon rings instead of closing them"`
	Verbose   bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

// fileOptions is the YAML form of geojson.Options plus the deserializer's
// ring policy. Flags override anything set here.
type fileOptions struct {
	EnforcePolyWinding  bool `yaml:"enforce_poly_winding"`
	AntimeridianCutting bool `yaml:"antimeridian_cutting"`
	WriteBBox           bool `yaml:"write_bbox"`
	WriteCRS            bool `yaml:"write_crs"`
	Precision           *int `yaml:"precision"`
	StrictRings         bool `yaml:"strict_rings"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Verbose {
		if err := loggo.ConfigureLoggers("geojson=DEBUG"); err != nil {
			fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
			os.Exit(1)
		}
	}

	serializerOpts := geojson.Options{}
	strict := false
	if opts.Config != "" {
		data, err := os.ReadFile(opts.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
		var cfg fileOptions
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %v\n", err)
			os.Exit(1)
		}
		serializerOpts = geojson.Options{
			EnforcePolyWinding:  cfg.EnforcePolyWinding,
			AntimeridianCutting: cfg.AntimeridianCutting,
			WriteBBox:           cfg.WriteBBox,
			WriteCRS:            cfg.WriteCRS,
			Precision:           cfg.Precision,
		}
		strict = cfg.StrictRings
	}
	if opts.Rewind {
		serializerOpts.EnforcePolyWinding = true
	}
	if opts.Cut {
		serializerOpts.AntimeridianCutting = true
	}
	if opts.BBox {
		serializerOpts.WriteBBox = true
	}
	if opts.CRS {
		serializerOpts.WriteCRS = true
	}
	if opts.Precision >= 0 {
		serializerOpts.Precision = &opts.Precision
	}
	if opts.Strict {
		strict = true
	}

	var inputData []byte
	var err error
	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	deserializer := geojson.Deserializer{StrictRings: strict}
	obj, err := deserializer.Unmarshal(inputData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing GeoJSON: %v\n", err)
		os.Exit(1)
	}

	outputData, err := geojson.NewSerializer(serializerOpts).Marshal(obj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing GeoJSON: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(outputData))
	}
}
