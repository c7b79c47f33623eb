package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gesturelab/gesture-arcade/internal/core"
)

var screenStyle = lipgloss.NewStyle()

// RenderScreen converts a Screen buffer to a string for display.
func RenderScreen(s *core.Screen) string {
	return screenStyle.Render(s.String())
}
