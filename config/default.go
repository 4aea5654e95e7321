// Package config holds the client configuration: which node to talk to and
// where local state (logs, imported backups) lives.
package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	DefaultNodeURL  = "wss://node2.private.deexnet.com/ws"
	DefaultLogLevel = "info"
)

// Config contains all client settings.
type Config struct {
	DataDir       string
	NodeURL       string
	Autoreconnect bool
	FeeSymbol     string
	Log           LogConfig
}

type LogConfig struct {
	Level      string
	MaxAgeDays int
}

// DefaultConfig contains reasonable default settings.
var DefaultConfig = Config{
	DataDir:       DefaultDataDir(),
	NodeURL:       DefaultNodeURL,
	Autoreconnect: true,
	Log: LogConfig{
		Level:      DefaultLogLevel,
		MaxAgeDays: 7,
	},
}

func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".deex")
}
