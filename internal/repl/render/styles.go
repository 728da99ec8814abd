// Package render draws the REPL's informational screens.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorYellow = lipgloss.Color("11") // accent
	ColorGray   = lipgloss.Color("8")  // dim/secondary
	ColorRed    = lipgloss.Color("9")  // errors
)

var (
	// AccentStyle highlights titles and values.
	AccentStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// DimStyle is used for secondary information like tips.
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
)
