package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a double-border frame, centering vertically and
// horizontally within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card renders a bordered card at content width cw. A selected card takes
// the accent colour for its border.
func Card(content string, cw int, accent color.Color, selected bool) string {
	border := theme.Border
	if selected {
		border = accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}
