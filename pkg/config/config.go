// Package config provides configuration loading and validation for
// pano2pinhole. The required run parameters come from the command line;
// an optional YAML file supplies the tuning knobs most runs never touch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the full run configuration. It is validated once at startup
// and treated as immutable afterwards, so it is safe to share across
// worker goroutines.
type Config struct {
	// Command-line parameters (not part of the YAML file).

	// InputDir holds the source panoramic images.
	InputDir string `yaml:"-"`

	// OutputDir receives the rectilinear views and sidecar files; created
	// if absent.
	OutputDir string `yaml:"-"`

	// ImageResolution is the width and height of each output view in
	// pixels. Must be positive.
	ImageResolution int `yaml:"-"`

	// NbSplit is the number of virtual cameras in the ring. Must be
	// positive.
	NbSplit int `yaml:"-"`

	// FOV is the vertical field of view of each camera in degrees; must
	// lie strictly between 0 and 180.
	FOV float64 `yaml:"-"`

	// DemoMode selects the diagnostic SVG output instead of conversion.
	DemoMode bool `yaml:"-"`

	// Processing parameters
	Processing struct {
		// Workers bounds how many source images are converted
		// concurrently.
		Workers int `yaml:"workers"`

		// Pattern selects source files by basename, non-recursively.
		Pattern string `yaml:"pattern"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// JPEGQuality is the encode quality for JPEG views, 1-100.
		JPEGQuality int `yaml:"jpegQuality"`

		// FocalFile is the name of the focal-length sidecar written to
		// the output directory.
		FocalFile string `yaml:"focalFile"`
	} `yaml:"output"`

	// Demo parameters for the diagnostic mode
	Demo struct {
		// PanoWidth is the diagnostic canvas width; height is half of it.
		PanoWidth int `yaml:"panoWidth"`

		// Step is the number of intervals sampled along each view border.
		Step int `yaml:"step"`

		// MarkerRadius is the projected border marker radius in pixels.
		MarkerRadius int `yaml:"markerRadius"`

		// Filename is the SVG document name in the output directory.
		Filename string `yaml:"filename"`
	} `yaml:"demo"`
}

// DefaultConfig returns a configuration with default values. The
// command-line defaults match the reference tool: 1024 pixel views, a ring
// of 5 cameras, 60 degree field of view.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.ImageResolution = 1024
	cfg.NbSplit = 5
	cfg.FOV = 60.0

	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.Pattern = "*.jpg"

	cfg.Output.JPEGQuality = 95
	cfg.Output.FocalFile = "focal.txt"

	cfg.Demo.PanoWidth = 4096
	cfg.Demo.Step = 10
	cfg.Demo.MarkerRadius = 4
	cfg.Demo.Filename = "test.svg"

	return cfg
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks the configuration once at startup. Any error here is
// fatal: no processing starts and no partial output is written.
func (cfg *Config) Validate() error {
	if cfg.InputDir == "" || cfg.OutputDir == "" {
		return fmt.Errorf("input_dir and output_dir must not be empty")
	}
	if cfg.ImageResolution <= 0 {
		return fmt.Errorf("image_resolution must be larger than 0, got %d", cfg.ImageResolution)
	}
	if cfg.NbSplit <= 0 {
		return fmt.Errorf("nb_split must be larger than 0, got %d", cfg.NbSplit)
	}
	if cfg.FOV <= 0 || cfg.FOV >= 180 {
		return fmt.Errorf("fov must lie strictly between 0 and 180 degrees, got %g", cfg.FOV)
	}
	if cfg.Processing.Workers <= 0 {
		return fmt.Errorf("processing.workers must be larger than 0, got %d", cfg.Processing.Workers)
	}
	if cfg.Output.JPEGQuality < 1 || cfg.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpegQuality must lie in [1, 100], got %d", cfg.Output.JPEGQuality)
	}
	return nil
}
