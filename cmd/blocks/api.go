package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/httpapi"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the scoreboard over HTTP",
	Long: `Start a read-only JSON API over the scores database.

Endpoints:
  GET /health
  GET /api/games
  GET /api/scores/{game}?limit=N
  GET /api/stats/{game}
  GET /api/runs/{id}

Examples:
  blocks api
  blocks api --http :9090 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("Cannot open scores database", "path", flagDBPath, "err", err)
	}
	defer store.Close()

	server := httpapi.New(store, logger.WithPrefix("blocks-api"))
	if err := server.ListenAndServe(flagHTTPAddr); err != nil {
		logger.Error("HTTP server failed", "err", err)
	}
}
