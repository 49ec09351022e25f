package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocks loads the configuration named name ("blocks", "blocks_mini").
// Search order: customPath -> ~/.blocks/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. A custom path that cannot be read or parsed is an error; the
// other locations are skipped when unusable.
func LoadBlocks(name, customPath string) (BlocksConfig, error) {
	filename := name + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(name, data)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBlocks(name, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := parseBlocks(name, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data, ok := embedded[name]; ok {
		if cfg, err := parseBlocks(name, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultFor(name), nil // Fallback to hardcoded if embed fails
}

func parseBlocks(name string, data []byte) (BlocksConfig, error) {
	cfg := DefaultFor(name)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", filename)
}
