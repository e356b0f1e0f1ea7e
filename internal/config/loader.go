package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the tuning file name looked up in config directories.
const ConfigFile = "shadow.yaml"

// LoadShadow loads the game configuration. Fields missing from a file
// keep their default values.
// Search order: customPath -> ~/.shadow/configs/shadow.yaml -> ./configs/shadow.yaml -> embedded default
func LoadShadow(customPath string) (ShadowConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultShadowConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseShadow(data)
		if err != nil {
			return DefaultShadowConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseShadow(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := ParseShadow(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseShadow(defaultShadowYAML)
	if err != nil {
		return DefaultShadowConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseShadow decodes a YAML tuning file on top of the defaults and
// validates the result.
func ParseShadow(data []byte) (ShadowConfig, error) {
	cfg := DefaultShadowConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultShadowConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultShadowConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shadow", "configs", filename)
}

// ApplyShadowPreset modifies the config based on a difficulty preset.
// Presets only change how fast light drains health.
func ApplyShadowPreset(cfg *ShadowConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}
	if rate, ok := DamageRateForPreset(preset); ok {
		cfg.Stealth.DamageRate = rate
	}
}
