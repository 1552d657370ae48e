// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes the host OS names the launcher branches on and the
// per-OS executable naming rules used when probing for interpreters.
package platform
