// SPDX-License-Identifier: MPL-2.0

// Package run executes a user command inside the toolchain container for a
// target triple, with the working directory bind-mounted at /src and standard
// streams passed straight through to the container engine.
package run
