package cli

import (
	"github.com/fatih/color"
)

// Colour labels for text output. fatih/color disables colour on its own
// when stdout is not a terminal or NO_COLOR is set, so build logs stay
// plain.

func successLabel(s string) string {
	return color.New(color.FgGreen, color.Bold).Sprint(s)
}

func warningLabel() string {
	return color.New(color.FgYellow).Sprint("Warning:")
}

func errorLabel() string {
	return color.New(color.FgRed, color.Bold).Sprint("Error:")
}
