// SPDX-License-Identifier: MPL-2.0

// Package launcher implements the bootstrap sequence of the Sales Management
// System: interpreter discovery, version floor, working-directory anchoring,
// entry-point and module checks, data-directory provisioning and the
// invocation of the application with its exit status propagated.
//
// The sequence stops at the first failing step. Failures are typed errors
// wrapping package sentinels so callers can classify them with errors.Is
// and errors.As.
package launcher
