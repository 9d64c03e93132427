package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/export"
	"github.com/abhisek/cyberhygiene/internal/router"
	"github.com/abhisek/cyberhygiene/internal/screen"
	"github.com/abhisek/cyberhygiene/internal/ui/components"
	"github.com/abhisek/cyberhygiene/internal/ui/layout"
	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

// RestartFunc restarts the finished challenge and returns the screen that
// plays it.
type RestartFunc func() (screen.Screen, error)

// exportDoneMsg reports the outcome of a PDF export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// SummaryScreen displays the result of a finished challenge.
type SummaryScreen struct {
	state   *challenge.Challenge
	restart RestartFunc

	exporting bool
	input     components.TextInput
	notice    string
	failed    bool

	// save writes the PDF; replaced in tests.
	save func(path string, r export.Report) error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.InputCapturer = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(state *challenge.Challenge, restart RestartFunc) *SummaryScreen {
	return &SummaryScreen{
		state:   state,
		restart: restart,
		save:    export.SavePDF,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.state.Category.Title()
}

// CapturingInput is true while the export filename is being edited.
func (s *SummaryScreen) CapturingInput() bool {
	return s.exporting
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.exporting {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save PDF"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Play again"},
		{Key: "E", Description: "Export PDF"},
		{Key: "Enter", Description: "Menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
			s.failed = true
		} else {
			s.notice = "Saved to " + msg.Path
			s.failed = false
		}
		return s, nil

	case tea.KeyMsg:
		if s.exporting {
			return s.handleExportKey(msg)
		}
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			return s.handleRestart()
		case "e":
			s.exporting = true
			s.notice = ""
			s.input = components.NewTextInput("File:", export.DefaultFilename, 120)
			return s, s.input.Init()
		}
		return s, nil
	}

	if s.exporting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) handleExportKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.exporting = false
		return s, nil
	case "enter":
		path := s.input.Value()
		if path == "" {
			s.input.SetError("enter a file name")
			return s, nil
		}
		s.exporting = false
		s.notice = "Saving..."
		s.failed = false
		report := export.NewReport(s.state, time.Now())
		save := s.save
		return s, func() tea.Msg {
			return exportDoneMsg{Path: path, Err: save(path, report)}
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) handleRestart() (screen.Screen, tea.Cmd) {
	if s.restart == nil {
		return s, nil
	}
	next, err := s.restart()
	if err != nil {
		s.notice = err.Error()
		s.failed = true
		return s, nil
	}
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SummaryScreen) View(width, height int) string {
	score := s.state.Score
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Challenge complete!"))
	b.WriteString("\n\n")

	radius := 5
	if layout.IsCompactHeight(height + 8) {
		radius = 3
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.RingGauge(score.Percentage(), radius)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("%d/%d correct", score.Correct, score.Total)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(components.GaugeColor(score.Percentage())), score.Message()))
	b.WriteString("\n\n")

	if s.exporting {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
		b.WriteString("\n")
	}
	if s.notice != "" {
		color := theme.Success
		if s.failed {
			color = theme.Error
		}
		b.WriteString(center(lipgloss.NewStyle().Foreground(color), s.notice))
	}
	return b.String()
}
