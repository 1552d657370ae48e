// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher configuration.
//
// Defaults live in Viper. An optional CUE file is validated against the
// embedded #Config schema and merged on top, and SMSBOOT_* environment
// variables override both. The resolved file is, in order: an explicit
// path, "smsboot.cue" in the project directory, then "config.cue" in the
// user configuration directory.
package config
