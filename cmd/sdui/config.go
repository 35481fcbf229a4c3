package main

import (
	"github.com/BurntSushi/toml"
)

type config struct {
	BaseURL  string `toml:"base_url"`
	PagesDir string `toml:"pages_dir"`
}

func loadConfig(path string) (config, error) {
	cfg := config{
		PagesDir: "./pages",
	}

	if path == "" {
		return cfg, nil
	}

	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
