// SPDX-License-Identifier: MPL-2.0

// Package build builds the toolchain image for a target triple from its
// recipe and optionally pushes every resulting tag.
//
// A build moves through the states
//
//	Idle → Resolving → Unsupported
//	                 → Building → BuildFailed
//	                            → Built → Done
//	                                    → Pushing → PushFailed
//	                                              → Done
//
// and never retries a transition.
package build
