// Package config holds the adjuster options: the pivot anchoring strategy and
// the canvas the avatar is calibrated against.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WebGAL stage size in pixels
const (
	DefaultCanvasWidth  = 2560
	DefaultCanvasHeight = 1440
)

// Options configure one ModelAdjuster
type Options struct {
	// UsePivotOffset makes the pivot sit on the main sub-model instead of the
	// declared model origin, so rotation and scale turn around the main body
	UsePivotOffset bool `yaml:"usePivotOffset"`

	CanvasWidth  float64 `yaml:"canvasWidth"`
	CanvasHeight float64 `yaml:"canvasHeight"`
}

// Default returns legacy anchoring on the WebGAL stage size
func Default() Options {
	return Options{
		UsePivotOffset: false,
		CanvasWidth:    DefaultCanvasWidth,
		CanvasHeight:   DefaultCanvasHeight,
	}
}

// Load reads options from a YAML file; missing keys keep their defaults
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Default(), fmt.Errorf("failed to parse options: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid options %s: %w", path, err)
	}

	return opts, nil
}

// Validate rejects a canvas without area
func (o Options) Validate() error {
	if o.CanvasWidth <= 0 {
		return errors.New("canvasWidth must be positive")
	}
	if o.CanvasHeight <= 0 {
		return errors.New("canvasHeight must be positive")
	}

	return nil
}
