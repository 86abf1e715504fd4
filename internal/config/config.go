// Package config loads the tracksyncd player configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/soundtoys/tracksync/internal/protocol"
)

// Player is the runtime configuration for one player session.
type Player struct {
	// Mode is "live" (editor connection) or "offline" (track files).
	Mode string

	EditorHost string
	EditorPort int

	// TrackBase is the persistence base identifier; files are named
	// <base>_<track>.track under TrackDir.
	TrackBase string
	TrackDir  string
	Tracks    []string

	// RowsPerSecond converts wall clock to rows for the demo loop.
	RowsPerSecond float64

	StatusAddr  string
	CorsOrigins []string
}

func Default() Player {
	return Player{
		Mode:          "live",
		EditorHost:    "localhost",
		EditorPort:    protocol.DefaultPort,
		TrackBase:     "sync",
		TrackDir:      ".",
		RowsPerSecond: 8,
		StatusAddr:    ":9333",
	}
}

type filePlayer struct {
	Mode          string   `toml:"mode"`
	EditorHost    string   `toml:"editor_host"`
	EditorPort    int      `toml:"editor_port"`
	TrackBase     string   `toml:"track_base"`
	TrackDir      string   `toml:"track_dir"`
	Tracks        []string `toml:"tracks"`
	RowsPerSecond float64  `toml:"rows_per_second"`
	StatusAddr    string   `toml:"status_addr"`
	CorsOrigins   []string `toml:"cors_origins"`
}

// Load reads path as TOML over the defaults: only keys present in the
// file override.
func Load(path string) (Player, error) {
	cfg := Default()

	var raw filePlayer
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Player{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.TrimSpace(raw.Mode)
	}
	if meta.IsDefined("editor_host") {
		cfg.EditorHost = strings.TrimSpace(raw.EditorHost)
	}
	if meta.IsDefined("editor_port") {
		cfg.EditorPort = raw.EditorPort
	}
	if meta.IsDefined("track_base") {
		cfg.TrackBase = strings.TrimSpace(raw.TrackBase)
	}
	if meta.IsDefined("track_dir") {
		cfg.TrackDir = strings.TrimSpace(raw.TrackDir)
	}
	if meta.IsDefined("tracks") {
		cfg.Tracks = raw.Tracks
	}
	if meta.IsDefined("rows_per_second") {
		cfg.RowsPerSecond = raw.RowsPerSecond
	}
	if meta.IsDefined("status_addr") {
		cfg.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}

	if err := Validate(cfg); err != nil {
		return Player{}, err
	}
	return cfg, nil
}

func Validate(cfg Player) error {
	switch cfg.Mode {
	case "live", "offline":
	default:
		return fmt.Errorf("config: mode must be live or offline, got %q", cfg.Mode)
	}
	if cfg.Mode == "live" && strings.TrimSpace(cfg.EditorHost) == "" {
		return fmt.Errorf("config: live mode requires editor_host")
	}
	if cfg.EditorPort <= 0 || cfg.EditorPort > 65535 {
		return fmt.Errorf("config: invalid editor_port %d", cfg.EditorPort)
	}
	if strings.TrimSpace(cfg.TrackBase) == "" {
		return fmt.Errorf("config: track_base required")
	}
	if cfg.RowsPerSecond <= 0 {
		return fmt.Errorf("config: rows_per_second must be positive")
	}
	for i, name := range cfg.Tracks {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: tracks[%d] is empty", i)
		}
	}
	return nil
}
