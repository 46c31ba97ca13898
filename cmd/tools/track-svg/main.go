// track-svg renders an LFDL track file to SVG or PNG.
//
// Usage:
//
//	track-svg -in track.lfdl -out track.svg [-labels=false] [-rules rules.json]
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/pista-data/trackgen/internal/config"
	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/render"
	"github.com/pista-data/trackgen/internal/rules"
	"github.com/pista-data/trackgen/internal/track"
)

func main() {
	in := flag.String("in", "", "input LFDL file")
	out := flag.String("out", "", "output image file (.svg or .png); defaults to the input name with .svg")
	labels := flag.Bool("labels", true, "draw segment line-number labels")
	rulesFile := flag.String("rules", "", "optional JSON file overriding the RoboCore rule defaults")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, ".lfdl") + ".svg"
	}

	limits := rules.DefaultLimits()
	if *rulesFile != "" {
		cfg, err := config.LoadRulesConfig(*rulesFile)
		if err != nil {
			log.Fatalf("failed to load rules config: %v", err)
		}
		limits = cfg.Apply(limits)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *in, err)
	}

	parsed := lfdl.Parse(string(data))
	for _, d := range parsed.Diagnostics {
		log.Printf("linha %d: %s", d.Line, d.Message)
	}
	if !parsed.Valid {
		log.Fatalf("%s has no drawable commands", *in)
	}

	path := track.Build(parsed.Config, parsed.Commands)
	opts := render.Options{ShowLabels: *labels, LineWidthMM: limits.LineWidth}
	if err := render.SaveFile(*out, path, opts); err != nil {
		log.Fatalf("failed to render %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d segments)", *out, len(path.Segments))
}
