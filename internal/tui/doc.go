// Package tui provides the terminal user interface for shipit.
//
// It handles:
//   - Interactive confirmation and bump selection (using survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - The stage spinner and the release tag table
package tui
