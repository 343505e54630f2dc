// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from --config when given, otherwise from
// $XDG_CONFIG_HOME/cross-llvm/config.cue, falling back to ./cross-llvm.cue. Files are
// validated against the embedded config_schema.cue before being merged into Viper, and
// CROSS_LLVM_* environment variables override file values.
package config
