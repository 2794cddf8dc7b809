// Package cli renders speedr's command-line surface: styled help,
// version and error output.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// appTitle is the banner shown in help and version output.
const appTitle = "SpeeDR 📊"

// Palette shared by the help printer and status output.
var (
	accentColor = lipgloss.Color("#005F87") // SpeeDR blue
	alertColor  = lipgloss.Color("#A40000")
	mutedColor  = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(alertColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// PrintVersion prints the banner and version on one line.
func PrintVersion(version string) {
	fmt.Printf("%s %s\n", titleStyle.Render(appTitle), mutedStyle.Render("v"+version))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}
