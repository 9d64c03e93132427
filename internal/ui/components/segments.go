package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

// SegmentPickedMsg reports the segment chosen in a SegmentPicker.
type SegmentPickedMsg struct{ Index int }

// SegmentPicker renders a message as consecutive segments and lets the
// player move a highlight across them with ←/→.
type SegmentPicker struct {
	Segments []string
	Cursor   int
}

// NewSegmentPicker creates a picker over the given segment texts.
func NewSegmentPicker(segments []string) SegmentPicker {
	return SegmentPicker{Segments: segments}
}

// Update handles the highlight keys.
func (p SegmentPicker) Update(msg tea.Msg) (SegmentPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(p.Segments) == 0 {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h", "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "right", "l", "down", "j", "tab":
		if p.Cursor < len(p.Segments)-1 {
			p.Cursor++
		}
	case "enter":
		return p, emit(SegmentPickedMsg{Index: p.Cursor})
	}
	return p, nil
}

// View renders the segments wrapped to width with the highlighted one
// marked.
func (p SegmentPicker) View(width int) string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i == p.Cursor {
			b.WriteString(theme.Highlight.Render(seg))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(seg))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
