package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
editor_host = "editor.lan"
tracks = ["cam.fov", "flash"]
rows_per_second = 16.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EditorHost != "editor.lan" {
		t.Fatalf("editor_host: %q", cfg.EditorHost)
	}
	if cfg.EditorPort != 1338 {
		t.Fatalf("default editor_port: %d", cfg.EditorPort)
	}
	if cfg.Mode != "live" {
		t.Fatalf("default mode: %q", cfg.Mode)
	}
	if len(cfg.Tracks) != 2 || cfg.Tracks[1] != "flash" {
		t.Fatalf("tracks: %v", cfg.Tracks)
	}
	if cfg.RowsPerSecond != 16 {
		t.Fatalf("rows_per_second: %v", cfg.RowsPerSecond)
	}
}

func TestLoadRejectsBadMode(t *testing.T) {
	path := writeConfig(t, `mode = "streaming"`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected mode validation error")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, `editor_port = 0`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected port validation error")
	}
}

func TestLoadRejectsEmptyTrackName(t *testing.T) {
	path := writeConfig(t, `tracks = ["ok", " "]`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected track name validation error")
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
