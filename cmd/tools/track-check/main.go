// track-check validates an LFDL track file against the RoboCore rules
// and prints errors, warnings, and summary statistics. The exit code is
// 1 when the track is invalid.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pista-data/trackgen/internal/config"
	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/rules"
)

func main() {
	in := flag.String("in", "", "input LFDL file")
	rulesFile := flag.String("rules", "", "optional JSON file overriding the RoboCore rule defaults")
	units := flag.String("units", "mm", "display units for lengths (mm, cm, m)")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
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
		fmt.Printf("parse: linha %d: %s\n", d.Line, d.Message)
	}

	result := rules.ValidateWith(limits, parsed)
	for _, e := range result.Errors {
		fmt.Printf("erro: %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Printf("aviso: %s\n", w)
	}

	stats := rules.ConvertStats(result.Stats, *units)
	fmt.Printf("comandos: %d (retas %d, arcos %d)\n",
		stats.TotalCommands, stats.StraightSegments, stats.ArcSegments)
	fmt.Printf("comprimento total: %.1f %s (retas %.1f, arcos %.1f)\n",
		stats.TotalLength, *units, stats.StraightLength, stats.ArcLength)
	fmt.Printf("categoria: junior=%v pro=%v\n", stats.Category.Junior, stats.Category.Pro)

	if !result.Valid {
		os.Exit(1)
	}
}
