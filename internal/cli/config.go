package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileName is the optional per-user or per-project config file.
const configFileName = ".flowgrid.toml"

// Config holds defaults loaded from the config file. Flag values override
// config values; config values override built-in defaults.
type Config struct {
	// Layout defaults
	Direction string  `toml:"direction"`
	LayerGap  float64 `toml:"layer_gap"`
	NodeGap   float64 `toml:"node_gap"`

	// Routing defaults
	Padding     float64 `toml:"padding"`
	BendPenalty float64 `toml:"bend_penalty"`

	// Server defaults
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// LoadConfig reads the config file from the working directory, falling back
// to the home directory, falling back to a zero config. A malformed file is
// ignored rather than fatal; the CLI stays usable without one.
func LoadConfig() Config {
	var cfg Config
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err == nil {
			break
		}
	}
	return cfg
}

func configPaths() []string {
	paths := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configFileName))
	}
	return paths
}
