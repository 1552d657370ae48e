// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what the launcher was doing, which path or tool was
// involved and how to fix it. The Issue catalogue holds longer Markdown
// guidance for each launch failure class, rendered with glamour.
package issue
