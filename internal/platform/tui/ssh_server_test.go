package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func TestHostKeyFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyFile(path)
	if err != nil {
		t.Fatalf("hostKeyFile() error = %v", err)
	}
	if got != path {
		t.Errorf("hostKeyFile() = %q, want %q", got, path)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("key directory not created: %v", err)
	}
}

func TestNewSSHServerDoesNotListen(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.store == nil {
		t.Error("score store should be open")
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() before serving = %v", err)
	}
}

func TestShutdownClosesStoreAfterServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}

	// Handlers still holding the store must see a closed store, not a nil one.
	if srv.store == nil {
		t.Fatal("Shutdown() should keep the store reference")
	}
	if _, err := srv.store.SaveRun(storage.Run{GameID: "blocks", Score: 10}); err == nil {
		t.Error("SaveRun() after Shutdown() should fail on a closed store")
	}
}
