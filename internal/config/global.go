// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to bypass the xdg lookup, which is
// resolved once at process start.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
