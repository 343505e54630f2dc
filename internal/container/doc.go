// SPDX-License-Identifier: MPL-2.0

// Package container drives an external container engine (Docker or Podman) through its CLI.
//
// Selector picks the engine: an explicit choice is returned as-is, otherwise the
// executable search path is probed for docker and then podman. Engine composes
// the argument lists for `run`, `buildx build` and `push`, logs the full command
// line, and spawns exactly one child process per call.
//
// Process creation goes through an ExecCommandFunc and path probing through a
// LookPathFunc so tests can substitute both.
package container
