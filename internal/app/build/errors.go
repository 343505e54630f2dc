// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"

	"github.com/exein-io/cross-llvm/internal/target"
)

var (
	// ErrUnsupportedTarget means the target has no recipe on disk.
	ErrUnsupportedTarget = errors.New("containerized builds are not supported for target")
	// ErrContainerImageBuild means the engine exited non-zero while building.
	ErrContainerImageBuild = errors.New("failed to build a container image")
	// ErrContainerImagePush means the engine exited non-zero while pushing.
	ErrContainerImagePush = errors.New("failed to push a container image")
)

type (
	// UnsupportedTargetError is returned before any engine is resolved when
	// the recipe for Triple is missing.
	UnsupportedTargetError struct {
		Triple target.Triple
		// Recipe is the path that was looked up.
		Recipe string
	}

	// PushError reports the first tag whose push failed.
	PushError struct {
		Tag   string
		Cause error
	}
)

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("containerized builds are not supported for target %s", e.Triple)
}

// Unwrap returns ErrUnsupportedTarget for errors.Is() compatibility.
func (e *UnsupportedTargetError) Unwrap() error { return ErrUnsupportedTarget }

func (e *PushError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrContainerImagePush, e.Tag, e.Cause)
}

// Unwrap exposes ErrContainerImagePush and the engine failure.
func (e *PushError) Unwrap() []error { return []error{ErrContainerImagePush, e.Cause} }
