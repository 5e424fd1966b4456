// Package config loads terrace settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Steps    StepsConfig  `yaml:"steps"`
	Kernel   KernelConfig `yaml:"kernel"`
	Output   OutputConfig `yaml:"output"`
}

// StepsConfig holds defaults for the steps and columns generators.
type StepsConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Step      float64 `yaml:"step"`
	MaxHeight float64 `yaml:"max_height"`
	Seed      uint64  `yaml:"seed"`
}

// KernelConfig selects the boolean backend.
type KernelConfig struct {
	Name  string `yaml:"name"`
	Cells int    `yaml:"cells"`
}

// OutputConfig selects the presenter.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Shading string `yaml:"shading"`
	Path    string `yaml:"path"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Steps:    StepsConfig{Width: 20, Height: 20, Step: 1, MaxHeight: 0.4},
		Kernel:   KernelConfig{Name: "sdfx", Cells: 200},
		Output:   OutputConfig{Format: "summary", Shading: "face"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first setting no component can act on.
func (c Config) Validate() error {
	switch c.Kernel.Name {
	case "sdfx", "manifold":
	default:
		return fmt.Errorf("kernel.name %q: want sdfx or manifold", c.Kernel.Name)
	}
	if c.Kernel.Cells < 0 {
		return fmt.Errorf("kernel.cells %d: must not be negative", c.Kernel.Cells)
	}
	switch c.Output.Format {
	case "stl", "json", "summary":
	default:
		return fmt.Errorf("output.format %q: want stl, json or summary", c.Output.Format)
	}
	switch c.Output.Shading {
	case "face", "vertex":
	default:
		return fmt.Errorf("output.shading %q: want face or vertex", c.Output.Shading)
	}
	if c.Output.Format == "stl" && c.Output.Path == "" {
		return errors.New("output.path is required for stl output")
	}
	if c.Steps.Step <= 0 {
		return fmt.Errorf("steps.step %g: must be positive", c.Steps.Step)
	}
	return nil
}
