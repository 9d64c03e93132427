package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

// OptionChosenMsg reports a single-answer pick from an OptionList.
type OptionChosenMsg struct{ Index int }

// OptionToggledMsg reports a checkbox flip in a multi-select OptionList.
type OptionToggledMsg struct{ Index int }

// OptionsSubmittedMsg reports Enter on a multi-select OptionList.
type OptionsSubmittedMsg struct{}

// OptionList is a numbered list of answers. In single mode Enter or a
// number key picks; in multi mode Space or a number key toggles and Enter
// submits.
type OptionList struct {
	Options []string
	Multi   bool
	Cursor  int
}

// NewOptionList creates an option list.
func NewOptionList(options []string, multi bool) OptionList {
	return OptionList{Options: options, Multi: multi}
}

// Update handles keyboard navigation and selection.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.Options) == 0 {
		return l, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return l, nil
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
		return l, nil
	case "space", " ":
		if l.Multi {
			return l, emit(OptionToggledMsg{Index: l.Cursor})
		}
		return l, nil
	case "enter":
		if l.Multi {
			return l, emit(OptionsSubmittedMsg{})
		}
		return l, emit(OptionChosenMsg{Index: l.Cursor})
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(l.Options) {
		l.Cursor = n - 1
		if l.Multi {
			return l, emit(OptionToggledMsg{Index: l.Cursor})
		}
		return l, emit(OptionChosenMsg{Index: l.Cursor})
	}
	return l, nil
}

// View renders the list. checked reports the toggle state of each option
// in multi mode and may be nil otherwise.
func (l OptionList) View(checked func(i int) bool) string {
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Cursor {
			prefix = "▸ "
		}
		box := ""
		if l.Multi {
			box = "[ ] "
			if checked != nil && checked(i) {
				box = "[x] "
			}
		}
		line := fmt.Sprintf("%s%d) %s%s", prefix, i+1, box, opt)

		if i == l.Cursor {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
