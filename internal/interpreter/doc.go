// SPDX-License-Identifier: MPL-2.0

// Package interpreter finds a usable Python interpreter on the host.
//
// Discovery is an ordered linear probe over candidate command names: each
// candidate is resolved on PATH and asked for its version, and the first one
// that answers is returned as an immutable Interpreter value. Versions are
// ordered with golang.org/x/mod/semver rather than compared as strings, so
// "3.10" correctly sorts after "3.9".
package interpreter
