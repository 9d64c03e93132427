package challenge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/scenario"
	"github.com/abhisek/cyberhygiene/internal/ui/components"
	"github.com/abhisek/cyberhygiene/internal/ui/theme"
)

func (s *ChallengeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	switch s.state.Phase {
	case challenge.PhaseLoadingScenario:
		b.WriteString(s.renderSpinner(width, fmt.Sprintf("Generating task %d/%d...", s.state.Round(), challenge.Length)))
	case challenge.PhaseScenarioError:
		b.WriteString(renderError(width, "Could not generate the next situation.", s.state.Error,
			"Press R to try again or Esc to return to the menu."))
	case challenge.PhaseAwaitingAnswer:
		b.WriteString(s.renderQuestionView(width))
	case challenge.PhaseLoadingFeedback:
		b.WriteString(s.renderVerdict(width))
		b.WriteString("\n\n")
		b.WriteString(s.renderSpinner(width, "Checking your answer..."))
	case challenge.PhaseFeedbackError:
		b.WriteString(s.renderVerdict(width))
		b.WriteString("\n\n")
		b.WriteString(renderError(width, "Could not load the explanation.", s.state.Error,
			"Press R to try again or C to continue."))
	case challenge.PhaseShowingFeedback:
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

// renderProgress draws the round bar under the header.
func (s *ChallengeScreen) renderProgress(width int) string {
	bar := components.NewProgressBar("  Progress", s.state.Score.Total, challenge.Length, true, min(width-4, 70))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View())
}

func (s *ChallengeScreen) renderSpinner(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) + " " + text)
}

// renderQuestionView renders the scenario card, the question and the
// answer controls.
func (s *ChallengeScreen) renderQuestionView(width int) string {
	sc := s.state.Scenario
	cw := min(width-8, 76)

	var card strings.Builder
	if sc.Sender != "" {
		card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("From:    "))
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(sc.Sender))
		card.WriteString("\n")
	}
	if sc.Subject != "" {
		card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Subject: "))
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sc.Subject))
		card.WriteString("\n")
	}
	if card.Len() > 0 {
		card.WriteString("\n")
	}
	if sc.Type == scenario.TypeIdentifyElement {
		card.WriteString(s.picker.View(cw - 6))
	} else {
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(sc.Body))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw).Render(card.String())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(sc.Question))
	b.WriteString("\n\n")

	if sc.Type != scenario.TypeIdentifyElement {
		checked := func(i int) bool { return s.state.Selected(sc.Options[i]) }
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View(checked)))
	}

	hint := s.hint
	if hint == "" {
		hint = answerHint(sc.Type)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Inherit(theme.Hint).
		Render(hint))
	return b.String()
}

func answerHint(t scenario.QuestionType) string {
	switch t {
	case scenario.TypeMultipleSelect:
		return "Select every answer that applies, then press Enter"
	case scenario.TypeIdentifyElement:
		return "Move the highlight onto the suspicious part and press Enter"
	default:
		return "Pick a number or use the arrows and Enter"
	}
}

// renderVerdict shows whether the answer was right.
func (s *ChallengeScreen) renderVerdict(width int) string {
	if s.state.LastCorrect {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Correct).Render("Correct!")
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Incorrect).Render("Wrong!")
}

// renderFeedback renders the explanation modal.
func (s *ChallengeScreen) renderFeedback(width int) string {
	cw := min(width-8, 70)

	var m strings.Builder
	m.WriteString(s.renderVerdict(cw - 6))
	m.WriteString("\n\n")
	m.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Correct answer: "))
	m.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.state.Scenario.CorrectAnswerText()))
	if !s.state.LastCorrect && s.state.Answer != "" {
		m.WriteString("\n")
		m.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answer:    " + s.state.Answer))
	}
	m.WriteString("\n\n")
	m.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(s.state.Feedback))
	m.WriteString("\n\n")

	m.WriteString(lipgloss.PlaceHorizontal(cw-6, lipgloss.Center, s.next.View()))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Modal.Width(cw).Render(m.String()))
}

// renderError renders a failed request with its detail and next steps.
func renderError(width int, headline, detail, next string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render(headline))
	if detail != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(detail))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(next))
	return b.String()
}
