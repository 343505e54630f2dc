// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds a Markdown troubleshooting guide for the
// failure classes users hit most often (no container engine, missing
// Dockerfile, failed build or push); guides are rendered with glamour.
package issue
