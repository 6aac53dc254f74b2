package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Extensions []string `toml:"extensions"`
	Exclude    Exclude  `toml:"exclude"`
	Journal    Journal  `toml:"journal"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Journal struct {
	Path string `toml:"path"`
}

// Default returns the built-in configuration used when no config file is
// present. The tool must work in a bare checkout with zero setup.
func Default() *Config {
	return &Config{
		Extensions: []string{".py", ".pyw"},
		Exclude: Exclude{
			Dirs: []string{".git", "__pycache__", ".venv", "venv", "node_modules", "*.egg-info"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = Default().Extensions
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = Default().Exclude.Dirs
	}

	return &cfg, nil
}
