// Package ui holds the terminal color themes shared by the CLI presenter and
// the TUI dashboard.
package ui
