// Package rules checks a parsed track against the RoboCore line-follower
// competition constraints and derives summary statistics. Validation is
// a pure function: it never mutates the parse result and never throws;
// all violations are collected rather than short-circuited.
package rules

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/units"
)

// Limits holds the competition constraints. All lengths are millimetres.
type Limits struct {
	MinArcRadius    float64 `json:"min_arc_radius_mm"`
	SmallArcRadius  float64 `json:"small_arc_radius_mm"`
	MaxStraight     float64 `json:"max_straight_mm"`
	LongStraight    float64 `json:"long_straight_mm"`
	JuniorMaxLength float64 `json:"junior_max_length_mm"`
	ProMaxLength    float64 `json:"pro_max_length_mm"`
	LineWidth       float64 `json:"line_width_mm"`
	MinCommands     int     `json:"min_commands"`
}

// DefaultLimits returns the RoboCore rule set.
func DefaultLimits() Limits {
	return Limits{
		MinArcRadius:    100,
		SmallArcRadius:  150,
		MaxStraight:     5000,
		LongStraight:    1000,
		JuniorMaxLength: 20000,
		ProMaxLength:    60000,
		LineWidth:       19,
		MinCommands:     4,
	}
}

// Category flags whether the track length fits each competition class.
// These are feasibility flags derived from total length alone; a track
// can fail validation for other reasons and still be Junior-feasible.
type Category struct {
	Junior bool `json:"junior"`
	Pro    bool `json:"pro"`
}

// TrackStats summarises the track independently of validity.
type TrackStats struct {
	TotalCommands    int      `json:"total_commands"`
	StraightSegments int      `json:"straight_segments"`
	ArcSegments      int      `json:"arc_segments"`
	TotalLength      float64  `json:"total_length_mm"`
	StraightLength   float64  `json:"straight_length_mm"`
	ArcLength        float64  `json:"arc_length_mm"`
	Category         Category `json:"category"`
}

// ValidationResult carries every violation found plus the stats.
// Warnings are advisory and never affect Valid.
type ValidationResult struct {
	Valid    bool       `json:"is_valid"`
	Errors   []string   `json:"errors"`
	Warnings []string   `json:"warnings"`
	Stats    TrackStats `json:"stats"`
}

// Validate applies the default RoboCore limits.
func Validate(res *lfdl.ParseResult) ValidationResult {
	return ValidateWith(DefaultLimits(), res)
}

// ValidateWith checks every command and the track-level constraints
// against the given limits. Error messages carry the 1-based source line
// of the offending command.
func ValidateWith(lim Limits, res *lfdl.ParseResult) ValidationResult {
	out := ValidationResult{Errors: []string{}, Warnings: []string{}}

	var straights, arcs int
	var straightLen, arcLen float64
	lengths := make([]float64, 0, len(res.Commands))

	for _, cmd := range res.Commands {
		switch c := cmd.(type) {
		case lfdl.Straight:
			straights++
			// A NaN distance fails the > 0 comparison and is reported
			// as non-positive; the parser normally rejects it earlier.
			if !(c.Distance > 0) {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: distância deve ser positiva", c.Line))
			}
			if c.Distance > lim.MaxStraight {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: reta excede %.0f mm", c.Line, lim.MaxStraight))
			}
			if c.Distance > lim.LongStraight {
				out.Warnings = append(out.Warnings,
					fmt.Sprintf("linha %d: reta longa (%.0f mm)", c.Line, c.Distance))
			}
			d := math.Abs(c.Distance)
			straightLen += d
			lengths = append(lengths, d)

		case lfdl.Arc:
			arcs++
			r := math.Abs(c.Radius)
			if r < lim.MinArcRadius {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: raio mínimo é %.0f mm", c.Line, lim.MinArcRadius))
			} else if r < lim.SmallArcRadius {
				out.Warnings = append(out.Warnings,
					fmt.Sprintf("linha %d: raio pequeno (%.0f mm)", c.Line, r))
			}
			if math.Abs(c.Angle) > 360 {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: ângulo máximo é 360°", c.Line))
			}
			if c.Angle == 0 {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: ângulo não pode ser zero", c.Line))
			}
			if c.Side != lfdl.SideLeft && c.Side != lfdl.SideRight {
				out.Errors = append(out.Errors,
					fmt.Sprintf("linha %d: lado do arco deve ser 'l' ou 'r'", c.Line))
			}
			l := units.ArcLength(c.Radius, c.Angle)
			arcLen += l
			lengths = append(lengths, l)
		}
	}

	cfg := res.Config
	if cfg.Size.Width <= 0 || cfg.Size.Height <= 0 {
		out.Errors = append(out.Errors, "dimensões da pista devem ser positivas")
	}
	if cfg.Start.X < 0 || cfg.Start.X > cfg.Size.Width ||
		cfg.Start.Y < 0 || cfg.Start.Y > cfg.Size.Height {
		out.Errors = append(out.Errors, "posição inicial fora da pista")
	}

	total := floats.Sum(lengths)
	if total > lim.JuniorMaxLength {
		out.Errors = append(out.Errors,
			fmt.Sprintf("comprimento total %.0f mm excede o limite Junior (%.0f mm)", total, lim.JuniorMaxLength))
	}
	if total > lim.ProMaxLength {
		out.Errors = append(out.Errors,
			fmt.Sprintf("comprimento total %.0f mm excede o limite Pro (%.0f mm)", total, lim.ProMaxLength))
	}

	if n := len(res.Commands); n > 0 {
		if n < lim.MinCommands {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("pista muito simples (menos de %d comandos)", lim.MinCommands))
		}
		if arcs == 0 {
			out.Warnings = append(out.Warnings, "pista sem curvas")
		}
		if straights == 0 {
			out.Warnings = append(out.Warnings, "pista sem retas")
		}
	}

	out.Stats = TrackStats{
		TotalCommands:    len(res.Commands),
		StraightSegments: straights,
		ArcSegments:      arcs,
		TotalLength:      math.Round(total),
		StraightLength:   straightLen,
		ArcLength:        arcLen,
		Category: Category{
			Junior: total <= lim.JuniorMaxLength,
			Pro:    total <= lim.ProMaxLength,
		},
	}
	out.Valid = len(out.Errors) == 0
	return out
}

// ConvertStats returns a copy of stats with the length fields converted
// to the target display unit.
func ConvertStats(stats TrackStats, targetUnits string) TrackStats {
	stats.TotalLength = units.ConvertLength(stats.TotalLength, targetUnits)
	stats.StraightLength = units.ConvertLength(stats.StraightLength, targetUnits)
	stats.ArcLength = units.ConvertLength(stats.ArcLength, targetUnits)
	return stats
}
