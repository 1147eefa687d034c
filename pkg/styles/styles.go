// Package styles holds the terminal styles used outside of log output.
//
// Colors are adaptive so they read on both light and dark terminals.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorColor = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}

	// Error renders fatal messages printed by main
	Error = lipgloss.NewStyle().Foreground(errorColor)
)

// RenderError formats err as "[tag] Error: <err>" in the error style. An
// empty tag drops the bracketed prefix.
func RenderError(tag string, err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if tag != "" {
		msg = "[" + tag + "] " + msg
	}
	return Error.Render(msg)
}
