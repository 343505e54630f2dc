// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cross-llvm CLI commands.
//
// The command tree is built from an App, which carries the injectable
// process boundaries (configuration, executable lookup, process spawning,
// working directory and standard streams) so handlers can be exercised
// without a real container engine.
package cmd
