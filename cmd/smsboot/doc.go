// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the smsboot CLI.
//
// Running smsboot with no subcommand bootstraps and starts the Sales
// Management System. The subcommands scaffold a new project, diagnose an
// installation and manage the launcher configuration.
package cmd
