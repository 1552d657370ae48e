// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the filesystem and environment helpers (MustChdir, MustMkdirAll,
// MustWriteFile, PrependPath), it can install fake Python interpreters on a
// temporary PATH so launcher tests never depend on the host toolchain.
package testutil
