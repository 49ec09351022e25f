package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game variant",
	Long: `Start playing the specified variant (default: blocks).

Controls:
  Left/Right, h/l  - Move
  Down, j          - Soft drop
  Up, k            - Rotate counter-clockwise
  z                - Rotate clockwise
  Space            - Hard drop
  P                - Pause
  R                - Restart
  Q/Ctrl+C         - Quit
  ?                - Toggle full help

Difficulty options:
  easy   - Base drop speed
  normal - Drop interval shortened by the 30% preset level
  hard   - Drop interval shortened by the 70% preset level
  fixed  - Use the config's own difficulty settings unchanged

Examples:
  blocks play
  blocks play blocks_mini
  blocks play --difficulty hard
  blocks play --seed 42
  blocks play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// prepareGame checks the game config and hands flags to the game package.
// A config that fails to load or validate is fatal here; the game itself
// would fall back to built-in defaults.
func prepareGame(gameID string) error {
	cfg, err := config.LoadBlocks(gameID, flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config for %s: %w", gameID, err)
	}
	if _, err := cfg.Colors(); err != nil {
		return fmt.Errorf("config for %s: %w", gameID, err)
	}

	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(flagDifficulty)
	logger.Debug("Game config loaded",
		"game", gameID,
		"arena", fmt.Sprintf("%dx%d", cfg.Arena.Width, cfg.Arena.Height),
		"drop_interval", cfg.DropInterval(),
		"difficulty", flagDifficulty,
	)
	return nil
}

// openStore opens the score database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		logger.Error("Unknown game", "game", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available games.")
		os.Exit(1)
	}

	if err := prepareGame(gameID); err != nil {
		logger.Error("Invalid game config", "err", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Error("Cannot create game", "err", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("Game exited with error", "err", runErr)
		os.Exit(1)
	}
}
