package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberhygiene/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show live
// status (round, score) on the right of the header.
type StatusProvider interface {
	Status() string
}

// InputCapturer is implemented by screens that sometimes own the keyboard,
// such as while a text field is focused. When CapturingInput is true the
// app forwards Esc and other global keys to the screen.
type InputCapturer interface {
	CapturingInput() bool
}

// Leaver is implemented by screens that must release work when they are
// removed from the stack.
type Leaver interface {
	Leave()
}
