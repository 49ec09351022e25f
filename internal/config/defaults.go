package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

//go:embed defaults/blocks_mini.yaml
var defaultBlocksMiniYAML []byte

// embedded maps a config name to its built-in YAML.
var embedded = map[string][]byte{
	"blocks":      defaultBlocksYAML,
	"blocks_mini": defaultBlocksMiniYAML,
}

// DefaultBlocksConfig returns the default 12x20 configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Arena:   BlocksArena{Width: 12, Height: 20},
		Timing:  BlocksTiming{DropIntervalMS: 1000},
		Scoring: BlocksScoring{LinePoints: 10},
		Palette: BlocksPalette{
			Pieces: []string{"magenta", "yellow", "orange", "blue", "cyan", "green", "red"},
			Shadow: "gray",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultBlocksMiniConfig returns the default 8x16 configuration.
func DefaultBlocksMiniConfig() BlocksConfig {
	cfg := DefaultBlocksConfig()
	cfg.Arena = BlocksArena{Width: 8, Height: 16}
	cfg.Timing.DropIntervalMS = 800
	cfg.Palette.Pieces = []string{
		"bright_magenta", "bright_yellow", "orange", "bright_blue",
		"bright_cyan", "bright_green", "bright_red",
	}
	return cfg
}

// DefaultFor returns the hardcoded defaults for a config name.
func DefaultFor(name string) BlocksConfig {
	if name == "blocks_mini" {
		return DefaultBlocksMiniConfig()
	}
	return DefaultBlocksConfig()
}
