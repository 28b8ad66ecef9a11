package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "wires.yaml"

// LoadWires loads the Wires configuration.
// Search order: customPath -> ~/.wires/configs/wires.yaml -> ./configs/wires.yaml -> embedded default
func LoadWires(customPath string) (WiresConfig, error) {
	var cfg WiresConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultWiresYAML, &cfg); err != nil {
		return DefaultWiresConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Resolve loads the configuration and applies preset on top of it.
func Resolve(customPath string, preset DifficultyPreset) (WiresConfig, error) {
	cfg, err := LoadWires(customPath)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// ParseWires parses a YAML document.
func ParseWires(data []byte) (WiresConfig, error) {
	var cfg WiresConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg WiresConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// UserConfigPath returns ~/.wires/configs/wires.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	return userConfigPath(ConfigFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wires", "configs", filename)
}
