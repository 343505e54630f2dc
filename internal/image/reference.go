// SPDX-License-Identifier: MPL-2.0

package image

import (
	"errors"
	"fmt"

	"github.com/distribution/reference"
)

// ErrInvalidReference is the sentinel error wrapped by InvalidReferenceError.
var ErrInvalidReference = errors.New("invalid image reference")

// InvalidReferenceError is returned when a user-supplied image reference does not parse.
type InvalidReferenceError struct {
	Value string
	Cause error
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid image reference %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidReference for errors.Is() compatibility.
func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

// ValidateReference checks that ref is a well-formed image reference such as
// "ghcr.io/org/name:tag" or "ubuntu", or a full 64-character image ID.
// The value is handed to the engine unchanged.
func ValidateReference(ref string) error {
	if len(ref) == 64 && reference.IdentifierRegexp.MatchString(ref) {
		return nil
	}
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		return &InvalidReferenceError{Value: ref, Cause: err}
	}
	return nil
}
