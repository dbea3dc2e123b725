// Package config loads engine identity, search defaults and the log level from an
// optional TOML file, falling back to built-in defaults when the file is
// absent. It is a convenience layer the engine binary reads once at
// startup; nothing in position/movegen/search/uci depends on it.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything cmd/enginecli needs before it opens the UCI
// stdin loop.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
}

// EngineConfig is the identity reported to "uci".
type EngineConfig struct {
	Name   string `toml:"name"`
	Author string `toml:"author"`
}

// SearchConfig carries the defaults applied when a "go" command omits a
// field entirely (no depth, no time control).
type SearchConfig struct {
	DefaultMaxDepth  int `toml:"default_max_depth"`
	DefaultMovesToGo int `toml:"default_moves_to_go"`
}

// LogConfig controls internal/log's verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration used when no file is given
// or the file does not exist.
func Default() Config {
	return Config{
		Engine: EngineConfig{Name: "dafughes-chess", Author: "dafughes"},
		Search: SearchConfig{DefaultMaxDepth: 64, DefaultMovesToGo: 30},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path as TOML and overlays it onto Default(). An empty path
// or a path naming a file that does not exist returns the defaults
// unchanged; a file that exists but can't be read or parsed returns an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
