// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"os/exec"
)

const (
	// EngineTypeDocker is the Docker CLI.
	EngineTypeDocker EngineType = "docker"
	// EngineTypePodman is the Podman CLI.
	EngineTypePodman EngineType = "podman"
)

var (
	// ErrEngineNotFound is returned when no engine was requested and none is installed.
	ErrEngineNotFound = errors.New("no supported container engine (docker, podman) was found")

	// ErrInvalidEngineType is the sentinel error wrapped by InvalidEngineTypeError.
	ErrInvalidEngineType = errors.New("invalid container engine")

	// detectionOrder is the probing priority used when no engine is requested.
	detectionOrder = []EngineType{EngineTypeDocker, EngineTypePodman}
)

type (
	// EngineType identifies a container engine. The zero value means "autodetect".
	EngineType string

	// InvalidEngineTypeError is returned when an EngineType is not recognized.
	InvalidEngineTypeError struct {
		Value EngineType
	}

	// LookPathFunc reports the location of an executable on the search path.
	// exec.LookPath is the production implementation.
	LookPathFunc func(file string) (string, error)

	// Selector resolves which engine to drive.
	Selector struct {
		lookPath LookPathFunc
	}
)

// Error implements the error interface.
func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidEngineType for errors.Is() compatibility.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }

// ParseEngineType converts a user-supplied name into an EngineType.
// Names are case-sensitive. The empty string yields the zero value (autodetect).
func ParseEngineType(s string) (EngineType, error) {
	t := EngineType(s)
	if err := t.Validate(); err != nil {
		return "", &InvalidEngineTypeError{Value: EngineType(s)}
	}
	return t, nil
}

// Validate returns an error if t is neither empty nor a known engine.
func (t EngineType) Validate() error {
	switch t {
	case "", EngineTypeDocker, EngineTypePodman:
		return nil
	default:
		return &InvalidEngineTypeError{Value: t}
	}
}

// String returns the engine binary name.
func (t EngineType) String() string { return string(t) }

// Set implements pflag.Value.
func (t *EngineType) Set(v string) error {
	parsed, err := ParseEngineType(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t *EngineType) Type() string { return "docker|podman" }

// NewSelector creates a Selector. A nil lookPath uses exec.LookPath.
func NewSelector(lookPath LookPathFunc) *Selector {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Selector{lookPath: lookPath}
}

// Select returns explicit unchanged when it is set, without checking that the
// engine is installed; a missing binary surfaces later as a spawn error.
// Otherwise docker and then podman are probed on the search path.
func (s *Selector) Select(explicit EngineType) (EngineType, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, candidate := range detectionOrder {
		if s.exists(string(candidate)) {
			return candidate, nil
		}
	}
	return "", ErrEngineNotFound
}

func (s *Selector) exists(name string) bool {
	_, err := s.lookPath(name)
	return err == nil
}
