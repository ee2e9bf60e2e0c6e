// Package config loads tracker configuration from the environment.
//
// Every setting has an APPTRACK_* environment variable. The store location
// has no default: the serve command fails fast when it is absent instead of
// falling back to a placeholder path.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Client  ClientConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	// DataDir is where the SQLite database lives. Required for serving;
	// there is deliberately no default.
	DataDir string
}

type ClientConfig struct {
	// BaseURL is the API endpoint the CLI and TUI talk to.
	BaseURL string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4500,
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:4500",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the environment on top of the defaults.
func Load() (Config, error) {
	return loadWith(os.Getenv)
}

func loadWith(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if v := getenv("APPTRACK_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid APPTRACK_SERVER_PORT %q", v)
		}
		cfg.Server.Port = port
	}
	if v := getenv("APPTRACK_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := getenv("APPTRACK_API_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := getenv("APPTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// RequireDataDir returns an error when no store location is configured.
// Serving without an explicit data directory is not allowed.
func (c Config) RequireDataDir() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("missing required config: data directory. Set it via environment variable APPTRACK_DATA_DIR")
	}
	return nil
}
