package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseShadow(GetDefaultYAML())
	if err != nil {
		t.Fatalf("ParseShadow(embedded) error = %v", err)
	}
	if cfg != DefaultShadowConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultShadowConfig())
	}
}

func TestParseShadowKeepsMissingDefaults(t *testing.T) {
	cfg, err := ParseShadow([]byte("stealth:\n  damage_rate: 50\n"))
	if err != nil {
		t.Fatalf("ParseShadow() error = %v", err)
	}
	if cfg.Stealth.DamageRate != 50 {
		t.Errorf("DamageRate = %g, expected 50", cfg.Stealth.DamageRate)
	}
	if cfg.Stealth.MaxVisibility != 0.05 {
		t.Errorf("MaxVisibility = %g, expected default 0.05", cfg.Stealth.MaxVisibility)
	}
	if cfg.Player.MaxSpeed != 5 {
		t.Errorf("MaxSpeed = %g, expected default 5", cfg.Player.MaxSpeed)
	}
}

func TestLoadShadowSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := LoadShadow("")
	if err != nil {
		t.Fatalf("LoadShadow() error = %v", err)
	}
	if cfg.Stealth.DamageRate != 200 {
		t.Errorf("DamageRate = %g, expected 200", cfg.Stealth.DamageRate)
	}

	writeFile(t, filepath.Join(work, "configs", ConfigFile), "stealth:\n  damage_rate: 10\n")
	cfg, _ = LoadShadow("")
	if cfg.Stealth.DamageRate != 10 {
		t.Errorf("local config: DamageRate = %g, expected 10", cfg.Stealth.DamageRate)
	}

	writeFile(t, filepath.Join(home, ".shadow", "configs", ConfigFile), "stealth:\n  damage_rate: 20\n")
	cfg, _ = LoadShadow("")
	if cfg.Stealth.DamageRate != 20 {
		t.Errorf("user config: DamageRate = %g, expected 20", cfg.Stealth.DamageRate)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "stealth:\n  damage_rate: 30\n")
	cfg, err = LoadShadow(custom)
	if err != nil {
		t.Fatalf("LoadShadow(custom) error = %v", err)
	}
	if cfg.Stealth.DamageRate != 30 {
		t.Errorf("custom config: DamageRate = %g, expected 30", cfg.Stealth.DamageRate)
	}
}

func TestLoadShadowCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadShadow(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadShadow with a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "stealth: [")
	cfg, err := LoadShadow(bad)
	if err == nil {
		t.Error("LoadShadow with malformed yaml should fail")
	}
	if cfg != DefaultShadowConfig() {
		t.Error("failed load should still return defaults")
	}
}

func TestLoadShadowRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero health", "player:\n  max_health: 0\n"},
		{"negative health", "player:\n  max_health: -5\n"},
		{"flat car", "player:\n  half_height: 0\n"},
		{"negative damage", "stealth:\n  damage_rate: -1\n"},
		{"waypoint window", "spawning:\n  waypoint_min_distance: 30\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shadow.yaml")
			writeFile(t, path, tt.content)
			cfg, err := LoadShadow(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadShadow() error = %v, expected ErrInvalidConfig", err)
			}
			if cfg != DefaultShadowConfig() {
				t.Error("rejected config should return defaults")
			}
		})
	}

	if err := DefaultShadowConfig().Validate(); err != nil {
		t.Errorf("DefaultShadowConfig().Validate() = %v, expected nil", err)
	}
}

func TestApplyShadowPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		expected float64
	}{
		{DifficultyEasy, 120},
		{DifficultyNormal, 200},
		{DifficultyHard, 280},
		{DifficultyFixed, 77},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultShadowConfig()
			cfg.Stealth.DamageRate = 77
			ApplyShadowPreset(&cfg, tt.preset)
			if cfg.Stealth.DamageRate != tt.expected {
				t.Errorf("DamageRate = %g, expected %g", cfg.Stealth.DamageRate, tt.expected)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if p, ok := ParsePreset(name); !ok || string(p) != name {
			t.Errorf("ParsePreset(%q) = %q, %v", name, p, ok)
		}
	}
	for _, name := range []string{"", "insane"} {
		if _, ok := ParsePreset(name); ok {
			t.Errorf("ParsePreset(%q) should fail", name)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
