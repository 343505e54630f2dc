// SPDX-License-Identifier: MPL-2.0

// Package target models the platform triples cross-llvm knows how to build for.
//
// A Triple is a structured descriptor (architecture, vendor, operating system,
// environment, binary format). The set of triples accepted from users is closed:
// SupportedTriple enumerates it and ParseSupportedTriple rejects anything else.
// Host returns the descriptor of the machine running the tool, which decides
// whether a target is native or cross.
package target
