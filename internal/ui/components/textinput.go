package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling.
type TextInput struct {
	Model    textinput.Model
	Prompt   string
	MaxWidth int
	errMsg   string
}

// NewTextInput creates a focused text input prefilled with value.
func NewTextInput(prompt, value string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Prompt:   prompt,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	t.errMsg = ""
	return t, cmd
}

// View renders the prompt, the field and any error.
func (t TextInput) View() string {
	view := lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Prompt) + " " + t.Model.View()
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	}
	return view
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetError shows msg under the field until the next edit.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}
