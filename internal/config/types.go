// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ContainerEngineAuto probes for docker, then podman.
	ContainerEngineAuto ContainerEngine = ""
	// ContainerEngineDocker uses Docker.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman.
	ContainerEnginePodman ContainerEngine = "podman"

	defaultRegistry   = "ghcr.io/exein-io/cross-llvm"
	defaultRecipesDir = "containers"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container engine to use.
	// Defined locally to avoid coupling config to internal/container.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the effective cross-llvm configuration.
	Config struct {
		// ContainerEngine is the engine to drive; empty means autodetect.
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine" toml:"container_engine"`
		// Image controls image naming and recipe lookup.
		Image ImageConfig `json:"image" mapstructure:"image" toml:"image"`
		// UI controls output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// ImageConfig controls how image tags and recipe paths are derived.
	ImageConfig struct {
		// Registry is the repository prefix, e.g. "ghcr.io/exein-io/cross-llvm".
		Registry string `json:"registry" mapstructure:"registry" toml:"registry"`
		// RecipesDir is the directory holding the Dockerfiles, relative to the working directory.
		RecipesDir string `json:"recipes_dir" mapstructure:"recipes_dir" toml:"recipes_dir"`
	}

	// UIConfig controls output.
	UIConfig struct {
		// Verbose enables debug logging and troubleshooting guides.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman, or empty for autodetect)", e.Value)
}

// Unwrap returns ErrInvalidContainerEngine for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// Validate returns an error if the engine is not recognized.
func (c ContainerEngine) Validate() error {
	switch c {
	case ContainerEngineAuto, ContainerEngineDocker, ContainerEnginePodman:
		return nil
	default:
		return &InvalidContainerEngineError{Value: c}
	}
}

// String returns the engine name.
func (c ContainerEngine) String() string { return string(c) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineAuto,
		Image: ImageConfig{
			Registry:   defaultRegistry,
			RecipesDir: defaultRecipesDir,
		},
	}
}

// Validate checks the fields that CUE validation cannot cover, namely values
// coming from environment variables.
func (c *Config) Validate() error {
	var errs []error
	if err := c.ContainerEngine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Image.Registry) == "" {
		errs = append(errs, errors.New("image.registry must not be empty"))
	}
	if strings.TrimSpace(c.Image.RecipesDir) == "" {
		errs = append(errs, errors.New("image.recipes_dir must not be empty"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
