// Package menu is the category picker shown at startup.
package menu

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/router"
	"github.com/abhisek/cyberhygiene/internal/scenario"
	"github.com/abhisek/cyberhygiene/internal/screen"
	challengescreen "github.com/abhisek/cyberhygiene/internal/screens/challenge"
	"github.com/abhisek/cyberhygiene/internal/ui/components"
	"github.com/abhisek/cyberhygiene/internal/ui/layout"
	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

const banner = `  ╭─────╮
  │ ▣▣▣ │
  │  ◉  │
  ╰──┬──╯`

// MenuScreen lists the challenge categories.
type MenuScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the menu. Picking a category pushes a challenge screen
// driven by engine.
func New(engine *challenge.Engine) *MenuScreen {
	items := make([]components.MenuItem, 0, len(scenario.Categories)+1)
	for i, c := range scenario.Categories {
		items = append(items, components.MenuItem{
			Label:       c.Title(),
			Description: c.Description(),
			Hotkey:      fmt.Sprint(i + 1),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: challengescreen.New(c, engine)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &MenuScreen{menu: components.NewMenu(items)}
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Title() string {
	return "Choose a challenge"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Pick"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Primary).
			Render(banner))
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("How cyber-safe are you?"))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d AI-generated situations per challenge", challenge.Length)))

	var cards []string
	for i, item := range m.menu.Items {
		selected := i == m.menu.Selected
		if item.Hotkey == "" {
			cards = append(cards, renderQuit(selected, cw))
			continue
		}
		cards = append(cards, renderCard(item, accentFor(i), selected, compact, cw))
	}
	sections = append(sections, strings.Join(cards, "\n"))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderCard(item components.MenuItem, accent color.Color, selected, compact bool, cw int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if selected {
		titleStyle = titleStyle.Foreground(accent)
	}
	content := titleStyle.Render(item.Hotkey + ". " + item.Label)
	if !compact {
		content += "\n" + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw-6).
			Render(item.Description)
	}
	return components.Card(content, cw, accent, selected)
}

func renderQuit(selected bool, cw int) string {
	style := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim)
	label := "Quit"
	if selected {
		style = style.Foreground(theme.Error).Bold(true)
		label = "▸ Quit"
	}
	return style.Render(label)
}

// accentFor returns the card colour for the category at index i.
func accentFor(i int) color.Color {
	if i >= len(scenario.Categories) {
		return theme.Border
	}
	switch scenario.Categories[i] {
	case scenario.CategoryPhishing:
		return theme.Phishing
	case scenario.CategoryDaily:
		return theme.Daily
	case scenario.CategoryWork:
		return theme.Work
	case scenario.CategoryFakeNews:
		return theme.FakeNews
	}
	return theme.Border
}
