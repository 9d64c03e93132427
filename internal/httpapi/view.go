package httpapi

import (
	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

// CategoryView describes one selectable category.
type CategoryView struct {
	ID          scenario.Category `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
}

// SegmentView is a clickable body span. Correct is only filled in once the
// round has been answered.
type SegmentView struct {
	Text    string `json:"text"`
	Correct *bool  `json:"correct,omitempty"`
}

// ScenarioView is the client-facing form of a scenario.
type ScenarioView struct {
	Sender       string                `json:"sender,omitempty"`
	Subject      string                `json:"subject,omitempty"`
	Body         string                `json:"body,omitempty"`
	Segments     []SegmentView         `json:"segments,omitempty"`
	Question     string                `json:"question"`
	QuestionType scenario.QuestionType `json:"questionType"`
	Options      []string              `json:"options"`

	// CorrectAnswer is withheld until the round is answered.
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// ChallengeView is the state returned by every challenge endpoint.
type ChallengeView struct {
	ID            string            `json:"id"`
	Category      scenario.Category `json:"category"`
	CategoryTitle string            `json:"categoryTitle"`
	Phase         string            `json:"phase"`
	Round         int               `json:"round"`
	TotalRounds   int               `json:"totalRounds"`
	Score         challenge.Score   `json:"score"`
	Scenario      *ScenarioView     `json:"scenario,omitempty"`
	Selection     []string          `json:"selection,omitempty"`
	Answer        string            `json:"answer,omitempty"`
	Correct       *bool             `json:"correct,omitempty"`
	Feedback      string            `json:"feedback,omitempty"`
	Error         string            `json:"error,omitempty"`

	// Percentage and Message are set in the summary phase.
	Percentage *int   `json:"percentage,omitempty"`
	Message    string `json:"message,omitempty"`
}

func categoryViews() []CategoryView {
	out := make([]CategoryView, len(scenario.Categories))
	for i, c := range scenario.Categories {
		out[i] = CategoryView{ID: c, Title: c.Title(), Description: c.Description()}
	}
	return out
}

func newChallengeView(c *challenge.Challenge) ChallengeView {
	v := ChallengeView{
		ID:            c.ID,
		Category:      c.Category,
		CategoryTitle: c.Category.Title(),
		Phase:         c.Phase.String(),
		Round:         c.Round(),
		TotalRounds:   challenge.Length,
		Score:         c.Score,
		Feedback:      c.Feedback,
		Error:         c.Error,
	}

	if c.Scenario != nil {
		v.Scenario = newScenarioView(c.Scenario, c.Answered)
	}
	if c.Answered {
		correct := c.LastCorrect
		v.Answer = c.Answer
		v.Correct = &correct
	} else if c.Scenario != nil && c.Scenario.Type == scenario.TypeMultipleSelect {
		v.Selection = c.Selection()
	}

	if c.Phase == challenge.PhaseSummary {
		pct := c.Score.Percentage()
		v.Percentage = &pct
		v.Message = c.Score.Message()
	}
	return v
}

func newScenarioView(s *scenario.Scenario, reveal bool) *ScenarioView {
	v := &ScenarioView{
		Sender:       s.Sender,
		Subject:      s.Subject,
		Body:         s.Body,
		Question:     s.Question,
		QuestionType: s.Type,
		Options:      s.Options,
	}
	if v.Options == nil {
		v.Options = []string{}
	}
	for _, seg := range s.Segments {
		sv := SegmentView{Text: seg.Text}
		if reveal {
			correct := seg.IsCorrectPart
			sv.Correct = &correct
		}
		v.Segments = append(v.Segments, sv)
	}
	if reveal {
		v.CorrectAnswer = s.CorrectAnswerText()
	}
	return v
}
