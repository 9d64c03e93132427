package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

const (
	gaugeFilled = "█"
	gaugeEmpty  = "░"
)

// RingGauge draws a text ring of the given radius (in rows) whose filled
// share runs clockwise from twelve o'clock. The percentage is printed in
// the centre.
func RingGauge(pct, radius int) string {
	pct = max(0, min(pct, 100))
	radius = max(radius, 2)

	fill := lipgloss.NewStyle().Foreground(GaugeColor(pct))
	track := lipgloss.NewStyle().Foreground(theme.Border)
	bold := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	r := float64(radius)
	sweep := 2 * math.Pi * float64(pct) / 100
	cols := 4*radius + 1

	label := fmt.Sprintf("%d%%", pct)
	labelStart := (cols - len(label)) / 2

	rows := make([]string, 0, 2*radius+1)
	for row := -radius; row <= radius; row++ {
		var line strings.Builder
		for col := 0; col < cols; col++ {
			if row == 0 && col == labelStart {
				line.WriteString(bold.Render(label))
				col += len(label) - 1
				continue
			}
			// Terminal cells are about twice as tall as wide.
			x := float64(col-2*radius) / 2
			y := float64(row)
			if math.Abs(math.Hypot(x, y)-r) > 0.5 {
				line.WriteString(" ")
				continue
			}
			angle := math.Atan2(x, -y)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if angle < sweep {
				line.WriteString(fill.Render(gaugeFilled))
			} else {
				line.WriteString(track.Render(gaugeEmpty))
			}
		}
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

// GaugeColor moves from red through amber to green as the score rises.
func GaugeColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
