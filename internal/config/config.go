package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config.example.yaml
var DefaultConfigYAML []byte

type Config struct {
	Commands CommandsConfig `yaml:"commands"`
	Storage  StorageConfig  `yaml:"storage"`
}

type CommandsConfig struct {
	Prefix string `yaml:"prefix"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		Commands: CommandsConfig{Prefix: "~"},
		Storage:  StorageConfig{Path: "selectors.json"},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Commands.Prefix) == "" {
		cfg.Commands.Prefix = Default().Commands.Prefix
	}
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		cfg.Storage.Path = Default().Storage.Path
	}
	return cfg, nil
}
