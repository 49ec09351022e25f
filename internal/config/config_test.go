package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestDefaultsAreValid(t *testing.T) {
	for _, name := range []string{"blocks", "blocks_mini"} {
		if err := DefaultFor(name).Validate(); err != nil {
			t.Errorf("DefaultFor(%q).Validate() = %v", name, err)
		}
	}
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	for name := range embedded {
		cfg, err := parseBlocks(name, embedded[name])
		if err != nil {
			t.Fatalf("parse embedded %s: %v", name, err)
		}
		def := DefaultFor(name)
		if cfg.Arena != def.Arena || cfg.Timing != def.Timing || cfg.Scoring != def.Scoring {
			t.Errorf("%s: embedded %+v differs from defaults %+v", name, cfg, def)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestLoadBlocksCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("arena:\n  width: 10\ntiming:\n  drop_interval_ms: 500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks("blocks", path)
	if err != nil {
		t.Fatalf("LoadBlocks: %v", err)
	}
	if cfg.Arena.Width != 10 {
		t.Errorf("width = %d, want 10", cfg.Arena.Width)
	}
	if cfg.Arena.Height != 20 {
		t.Errorf("height = %d, want default 20", cfg.Arena.Height)
	}
	if cfg.DropInterval() != 500*time.Millisecond {
		t.Errorf("DropInterval() = %v, want 500ms", cfg.DropInterval())
	}
	if len(cfg.Palette.Pieces) != PieceColors {
		t.Errorf("palette = %v, want defaults", cfg.Palette.Pieces)
	}
}

func TestLoadBlocksMissingCustomPath(t *testing.T) {
	_, err := LoadBlocks("blocks", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadBlocksBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("arena: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlocks("blocks", path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlocksConfig)
		want   error
	}{
		{"narrow arena", func(c *BlocksConfig) { c.Arena.Width = 3 }, ErrInvalidArena},
		{"short arena", func(c *BlocksConfig) { c.Arena.Height = 0 }, ErrInvalidArena},
		{"zero interval", func(c *BlocksConfig) { c.Timing.DropIntervalMS = 0 }, ErrInvalidInterval},
		{"negative points", func(c *BlocksConfig) { c.Scoring.LinePoints = -1 }, ErrInvalidPoints},
		{"short palette", func(c *BlocksConfig) { c.Palette.Pieces = c.Palette.Pieces[:3] }, ErrEmptyPalette},
		{"bad piece color", func(c *BlocksConfig) { c.Palette.Pieces[2] = "plaid" }, ErrUnknownColor},
		{"bad shadow color", func(c *BlocksConfig) { c.Palette.Shadow = "plaid" }, ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestColors(t *testing.T) {
	cfg := DefaultBlocksConfig()
	colors, err := cfg.Colors()
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != PieceColors+2 {
		t.Fatalf("len = %d, want %d", len(colors), PieceColors+2)
	}
	if colors[1] != core.ColorMagenta {
		t.Errorf("T color = %v, want magenta", colors[1])
	}
	if colors[PieceColors+1] != core.ColorGray {
		t.Errorf("shadow color = %v, want gray", colors[PieceColors+1])
	}

	cfg.Palette.Shadow = ""
	colors, err = cfg.Colors()
	if err != nil {
		t.Fatal(err)
	}
	if colors[PieceColors+1] != core.ColorGray {
		t.Errorf("empty shadow should fall back to gray, got %v", colors[PieceColors+1])
	}
}

func TestDifficultyApplyPreset(t *testing.T) {
	cfg := DefaultBlocksConfig()
	cfg.Difficulty.Enabled = false

	d := NewDifficultyManager(cfg.Difficulty)
	d.ApplyPreset(DifficultyHard)
	if !d.IsEnabled() || d.Level() != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", d.IsEnabled(), d.Level())
	}

	d.ApplyPreset(DifficultyFixed)
	if d.IsEnabled() || d.Level() != 0 {
		t.Error("fixed preset should disable scaling")
	}
	if got := d.DropInterval(time.Second); got != time.Second {
		t.Errorf("fixed preset: DropInterval = %v, want 1s", got)
	}

	d = NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 0.5})
	d.ApplyPreset("")
	if !d.IsEnabled() || d.Level() != 0.5 {
		t.Error("empty preset should keep the configured difficulty")
	}

	if cfg.Difficulty.Enabled {
		t.Error("ApplyPreset must not modify the loaded config")
	}
}

func TestIsFixedPreset(t *testing.T) {
	if !IsFixedPreset(DifficultyFixed) {
		t.Error("fixed should be a fixed preset")
	}
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, ""} {
		if IsFixedPreset(p) {
			t.Errorf("IsFixedPreset(%q) = true", p)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"insane": "",
		"":       "",
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDifficultyDropInterval(t *testing.T) {
	base := time.Second

	d := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 1, Scaling: ScalingConfig{SpeedMultiplier: 1}})
	if got := d.DropInterval(base); got != base {
		t.Errorf("disabled: DropInterval = %v, want %v", got, base)
	}

	d = NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 1, Scaling: ScalingConfig{SpeedMultiplier: 1}})
	if got := d.DropInterval(base); got != 500*time.Millisecond {
		t.Errorf("max level: DropInterval = %v, want 500ms", got)
	}

	d.SetInitialLevel(5)
	if d.Level() != 1 {
		t.Errorf("level should clamp to 1, got %v", d.Level())
	}

	d.SetEnabled(false)
	if d.IsEnabled() || d.Level() != 0 {
		t.Error("SetEnabled(false) should zero the level")
	}

	if got := NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 1, Scaling: ScalingConfig{SpeedMultiplier: 1e9}}).DropInterval(base); got != time.Millisecond {
		t.Errorf("floor: DropInterval = %v, want 1ms", got)
	}
}
