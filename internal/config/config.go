// Package config loads interpreter settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GC   GC   `yaml:"gc"`
	Log  Log  `yaml:"log"`
	REPL REPL `yaml:"repl"`
}

type GC struct {
	// Threshold is the number of executed statements between collections.
	Threshold int `yaml:"threshold"`
}

type Log struct {
	Level string `yaml:"level"`
}

type REPL struct {
	Prompt string `yaml:"prompt"`
	Banner bool   `yaml:"banner"`
}

func Default() Config {
	return Config{
		GC:   GC{Threshold: 100},
		Log:  Log{Level: "info"},
		REPL: REPL{Prompt: ">> ", Banner: true},
	}
}

// Load reads path on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	log.LogVf("config loaded from %s: %+v", abs, cfg)
	return cfg, nil
}

// Decode reads YAML from r on top of Default and validates the result.
// An empty document yields the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.GC.Threshold < 1 {
		return fmt.Errorf("gc.threshold must be at least 1, got %d", c.GC.Threshold)
	}
	if _, err := log.ValidateLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
