package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pista-data/trackgen/internal/rules"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadRulesConfigPartial(t *testing.T) {
	path := writeConfig(t, "rules.json", `{"min_arc_radius_mm": 80, "junior_max_length_mm": 15000}`)

	cfg, err := LoadRulesConfig(path)
	if err != nil {
		t.Fatalf("LoadRulesConfig: %v", err)
	}

	lim := cfg.Apply(rules.DefaultLimits())
	if lim.MinArcRadius != 80 {
		t.Errorf("MinArcRadius = %v, want 80", lim.MinArcRadius)
	}
	if lim.JuniorMaxLength != 15000 {
		t.Errorf("JuniorMaxLength = %v, want 15000", lim.JuniorMaxLength)
	}
	// Omitted fields keep their defaults.
	if lim.ProMaxLength != 60000 {
		t.Errorf("ProMaxLength = %v, want default 60000", lim.ProMaxLength)
	}
	if lim.LineWidth != 19 {
		t.Errorf("LineWidth = %v, want default 19", lim.LineWidth)
	}
}

func TestLoadRulesConfigRejectsNonJSON(t *testing.T) {
	path := writeConfig(t, "rules.yaml", "min_arc_radius_mm: 80")
	if _, err := LoadRulesConfig(path); err == nil {
		t.Fatal("expected error for non-json extension")
	}
}

func TestLoadRulesConfigMissingFile(t *testing.T) {
	if _, err := LoadRulesConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRulesConfigMalformedJSON(t *testing.T) {
	path := writeConfig(t, "rules.json", `{"min_arc_radius_mm": `)
	if _, err := LoadRulesConfig(path); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestApplyNilKeepsDefaults(t *testing.T) {
	var cfg *RulesConfig
	lim := cfg.Apply(rules.DefaultLimits())
	if lim != rules.DefaultLimits() {
		t.Errorf("nil config changed limits: %+v", lim)
	}
}
