// Package config loads competition-rule overrides from a JSON file.
// Fields omitted from the file keep the default RoboCore values, so
// partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pista-data/trackgen/internal/rules"
)

// RulesConfig mirrors rules.Limits with pointer fields so that the same
// JSON schema works for both startup configuration and the /api/config
// endpoint: nil means "keep the default".
type RulesConfig struct {
	MinArcRadiusMM    *float64 `json:"min_arc_radius_mm,omitempty"`
	SmallArcRadiusMM  *float64 `json:"small_arc_radius_mm,omitempty"`
	MaxStraightMM     *float64 `json:"max_straight_mm,omitempty"`
	LongStraightMM    *float64 `json:"long_straight_mm,omitempty"`
	JuniorMaxLengthMM *float64 `json:"junior_max_length_mm,omitempty"`
	ProMaxLengthMM    *float64 `json:"pro_max_length_mm,omitempty"`
	LineWidthMM       *float64 `json:"line_width_mm,omitempty"`
	MinCommands       *int     `json:"min_commands,omitempty"`
}

// LoadRulesConfig reads a RulesConfig from a JSON file. The path must
// have a .json extension and the file is capped at 1MB.
func LoadRulesConfig(path string) (*RulesConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg RulesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Apply overlays the non-nil fields onto the given limits.
func (c *RulesConfig) Apply(lim rules.Limits) rules.Limits {
	if c == nil {
		return lim
	}
	if c.MinArcRadiusMM != nil {
		lim.MinArcRadius = *c.MinArcRadiusMM
	}
	if c.SmallArcRadiusMM != nil {
		lim.SmallArcRadius = *c.SmallArcRadiusMM
	}
	if c.MaxStraightMM != nil {
		lim.MaxStraight = *c.MaxStraightMM
	}
	if c.LongStraightMM != nil {
		lim.LongStraight = *c.LongStraightMM
	}
	if c.JuniorMaxLengthMM != nil {
		lim.JuniorMaxLength = *c.JuniorMaxLengthMM
	}
	if c.ProMaxLengthMM != nil {
		lim.ProMaxLength = *c.ProMaxLengthMM
	}
	if c.LineWidthMM != nil {
		lim.LineWidth = *c.LineWidthMM
	}
	if c.MinCommands != nil {
		lim.MinCommands = *c.MinCommands
	}
	return lim
}
