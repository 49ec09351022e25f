package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Tab opens the scoreboard. Quitting a game returns to the menu.

Examples:
  blocks menu
  blocks menu --fps 30
  blocks menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("Menu failed", "err", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("Scoreboard failed", "err", err)
			}
			if goBack {
				continue
			}
			return
		}

		if result.GameID == "" {
			return
		}

		if err := prepareGame(result.GameID); err != nil {
			logger.Error("Invalid game config", "game", result.GameID, "err", err)
			return
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("Cannot create game", "err", err)
			continue
		}

		// Fresh piece order for every game unless a seed was pinned.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			logger.Error("Game exited with error", "err", err)
		}
	}
}
