// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// formatCUEError reports every CUE problem as "<key>: <message>", prefixed
// with the file path, e.g. "config.cue: image.recipes_dir: invalid value".
func formatCUEError(err error, path string) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		key := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if key == "" {
			lines = append(lines, msg)
			continue
		}
		// CUE repeats the path at the start of some messages.
		msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, key), ":"))
		lines = append(lines, key+": "+msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", path, lines[0])
	}
	return fmt.Errorf("%s: invalid config:\n  %s", path, strings.Join(lines, "\n  "))
}
