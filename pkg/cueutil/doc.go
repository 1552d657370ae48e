// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the small CUE helpers shared by configuration loading:
// bounded file reads and error formatting with JSON-path prefixes.
package cueutil
