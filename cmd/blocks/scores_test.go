package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func openScoresStore(t *testing.T, scores ...int) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, s := range scores {
		if _, err := store.SaveRun(storage.Run{GameID: "blocks", Score: s}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

func TestLoadScoresLimit(t *testing.T) {
	store := openScoresStore(t, 10, 50, 30, 40, 20)

	scores, err := loadScores(store, "blocks", false, 3)
	if err != nil {
		t.Fatalf("loadScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[2].Score != 30 {
		t.Errorf("unexpected order: %d, %d", scores[0].Score, scores[2].Score)
	}
}

func TestLoadScoresAllIgnoresLimit(t *testing.T) {
	store := openScoresStore(t, 10, 50, 30, 40, 20)

	scores, err := loadScores(store, "blocks", true, 3)
	if err != nil {
		t.Fatalf("loadScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("expected all 5 scores, got %d", len(scores))
	}
	if scores[4].Score != 10 {
		t.Errorf("lowest score should be last, got %d", scores[4].Score)
	}
}

func TestScoresClearFlagEmptiesBoard(t *testing.T) {
	store := openScoresStore(t, 100, 200)

	if err := store.ClearScores("blocks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	scores, err := loadScores(store, "blocks", true, 0)
	if err != nil {
		t.Fatalf("loadScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
}

func TestScoresFlagsRegistered(t *testing.T) {
	for _, name := range []string{"limit", "all", "clear"} {
		if scoresCmd.Flags().Lookup(name) == nil {
			t.Errorf("scores command is missing --%s", name)
		}
	}
}
