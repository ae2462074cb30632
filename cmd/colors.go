package cmd

import (
	"os"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen)
	colorError   = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
	colorHeader  = color.New(color.Bold)
)

// isColorEnabled is false when stdout is not a terminal, NO_COLOR is set or
// TERM is dumb.
func isColorEnabled() bool {
	stat, err := os.Stdout.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

func disableColors() {
	color.NoColor = true
}
