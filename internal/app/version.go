package app

import (
	"fmt"
	"io"
)

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/agbru/mtcollatz/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args contain a version flag.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "mt-collatz %s\n", Version)
}
