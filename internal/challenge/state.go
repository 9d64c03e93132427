package challenge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/cyberhygiene/internal/scenario"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current phase. The challenge is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrEmptySelection is returned by Submit and SetSelection when nothing is selected.
	ErrEmptySelection = errors.New("empty selection")

	// ErrInvalidAnswer is returned for a toggle or pick that does not name
	// an element of the current scenario.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Phase is the current step of a challenge.
type Phase int

const (
	PhaseLoadingScenario Phase = iota // Waiting for the next scenario
	PhaseScenarioError                // Scenario fetch failed; manual retry offered
	PhaseAwaitingAnswer               // Scenario shown, no answer yet
	PhaseLoadingFeedback              // Answer graded, waiting for the explanation
	PhaseFeedbackError                // Explanation failed; retry or continue offered
	PhaseShowingFeedback              // Explanation shown
	PhaseSummary                      // All rounds answered
)

var phaseNames = [...]string{
	PhaseLoadingScenario: "loading_scenario",
	PhaseScenarioError:   "scenario_error",
	PhaseAwaitingAnswer:  "awaiting_answer",
	PhaseLoadingFeedback: "loading_feedback",
	PhaseFeedbackError:   "feedback_error",
	PhaseShowingFeedback: "showing_feedback",
	PhaseSummary:         "summary",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Challenge is the state of one fixed-length run through a category.
// It is not safe for concurrent use; callers serialize access.
type Challenge struct {
	ID       string
	Category scenario.Category
	Phase    Phase
	Score    Score

	// Scenario is the current round's item, nil while loading.
	Scenario *scenario.Scenario

	// Answer is the player's literal answer for this round ("" until set).
	Answer string

	// Answered is set once per round when a grade is recorded.
	Answered bool

	// LastCorrect is the grade of the current round's answer.
	LastCorrect bool

	// Feedback is the explanation text once it arrives.
	Feedback string

	// Error is the message shown in the error phases.
	Error string

	selection map[string]bool
	ticket    uint64
	started   bool
	abandoned bool
}

// New creates a challenge for the category. Call Start to begin.
func New(c scenario.Category) *Challenge {
	return &Challenge{
		ID:        uuid.NewString(),
		Category:  c,
		Phase:     PhaseLoadingScenario,
		selection: make(map[string]bool),
	}
}

// Ticket returns the identifier of the request the challenge is waiting on.
func (c *Challenge) Ticket() uint64 { return c.ticket }

// Round returns the 1-based number of the round being played.
func (c *Challenge) Round() int {
	r := c.Score.Total
	if !c.Answered {
		r++
	}
	return min(r, Length)
}

// IsLastRound reports whether the current round completes the challenge.
func (c *Challenge) IsLastRound() bool {
	return c.Score.Total >= Length
}

// Start enters the first round and returns the scenario request.
func (c *Challenge) Start() (*Request, error) {
	if c.started || c.abandoned {
		return nil, c.invalid("start")
	}
	c.started = true
	return c.loadScenario(), nil
}

// Apply installs the outcome of a request. Results whose ticket is stale or
// whose kind does not match the phase are dropped; Apply reports whether
// the result was used.
func (c *Challenge) Apply(res Result) bool {
	if c.abandoned || res.Ticket != c.ticket {
		return false
	}

	switch res.Kind {
	case RequestScenario:
		if c.Phase != PhaseLoadingScenario {
			return false
		}
		if res.Err == nil && res.Scenario == nil {
			res.Err = errors.New("no scenario returned")
		}
		if res.Err != nil {
			c.Phase = PhaseScenarioError
			c.Error = res.Err.Error()
			return true
		}
		c.Scenario = res.Scenario
		c.Answer = ""
		c.Answered = false
		c.LastCorrect = false
		c.Feedback = ""
		c.Error = ""
		clear(c.selection)
		c.Phase = PhaseAwaitingAnswer
		return true

	case RequestFeedback:
		if c.Phase != PhaseLoadingFeedback {
			return false
		}
		if res.Err != nil {
			c.Phase = PhaseFeedbackError
			c.Error = res.Err.Error()
			return true
		}
		c.Feedback = res.Feedback
		c.Error = ""
		c.Phase = PhaseShowingFeedback
		return true
	}
	return false
}

// Choose answers a binary or multiple_choice round.
func (c *Challenge) Choose(option string) (*Request, error) {
	if !c.awaiting(scenario.TypeBinary, scenario.TypeMultipleChoice) {
		return nil, c.invalid("choose")
	}
	return c.record(option, GradeChoice(c.Scenario, option)), nil
}

// Toggle adds or removes an option from the multiple_select selection.
func (c *Challenge) Toggle(option string) error {
	if !c.awaiting(scenario.TypeMultipleSelect) {
		return c.invalid("toggle")
	}
	if !containsOption(c.Scenario.Options, option) {
		return fmt.Errorf("%w: %q is not an option", ErrInvalidAnswer, option)
	}
	if c.selection[option] {
		delete(c.selection, option)
	} else {
		c.selection[option] = true
	}
	return nil
}

// SetSelection replaces the multiple_select selection with options.
// An empty list returns ErrEmptySelection and unknown options return
// ErrInvalidAnswer; both leave the selection unchanged.
func (c *Challenge) SetSelection(options []string) error {
	if !c.awaiting(scenario.TypeMultipleSelect) {
		return c.invalid("select")
	}
	if len(options) == 0 {
		return ErrEmptySelection
	}
	for _, o := range options {
		if !containsOption(c.Scenario.Options, o) {
			return fmt.Errorf("%w: %q is not an option", ErrInvalidAnswer, o)
		}
	}
	clear(c.selection)
	for _, o := range options {
		c.selection[o] = true
	}
	return nil
}

// Selected reports whether option is currently toggled on.
func (c *Challenge) Selected(option string) bool {
	return c.selection[option]
}

// Selection returns the toggled options in scenario order.
func (c *Challenge) Selection() []string {
	if c.Scenario == nil {
		return nil
	}
	var out []string
	for _, o := range c.Scenario.Options {
		if c.selection[o] {
			out = append(out, o)
		}
	}
	return out
}

// Submit answers a multiple_select round with the current selection.
// An empty selection returns ErrEmptySelection and changes nothing.
func (c *Challenge) Submit() (*Request, error) {
	if !c.awaiting(scenario.TypeMultipleSelect) {
		return nil, c.invalid("submit")
	}
	sel := c.Selection()
	if len(sel) == 0 {
		return nil, ErrEmptySelection
	}
	return c.record(strings.Join(sel, ", "), GradeSelection(c.Scenario, sel)), nil
}

// Pick answers an identify_element round with the segment at index.
func (c *Challenge) Pick(index int) (*Request, error) {
	if !c.awaiting(scenario.TypeIdentifyElement) {
		return nil, c.invalid("pick")
	}
	if index < 0 || index >= len(c.Scenario.Segments) {
		return nil, fmt.Errorf("%w: segment %d out of range", ErrInvalidAnswer, index)
	}
	answer := strings.TrimSpace(c.Scenario.Segments[index].Text)
	return c.record(answer, GradePick(c.Scenario, index)), nil
}

// Retry re-issues the failed request. A failed explanation is requested
// again for the same answer without re-grading.
func (c *Challenge) Retry() (*Request, error) {
	switch c.Phase {
	case PhaseScenarioError:
		if c.abandoned {
			break
		}
		return c.loadScenario(), nil
	case PhaseFeedbackError:
		if c.abandoned {
			break
		}
		return c.loadFeedback(), nil
	}
	return nil, c.invalid("retry")
}

// Skip continues past a failed explanation as if it had been dismissed.
func (c *Challenge) Skip() (*Request, error) {
	if c.abandoned || c.Phase != PhaseFeedbackError {
		return nil, c.invalid("skip")
	}
	return c.loadScenario(), nil
}

// Dismiss closes the explanation. After the last round it moves to the
// summary and returns no request.
func (c *Challenge) Dismiss() (*Request, error) {
	if c.abandoned || c.Phase != PhaseShowingFeedback {
		return nil, c.invalid("dismiss")
	}
	return c.loadScenario(), nil
}

// Restart clears the score and starts a new run in the same category.
func (c *Challenge) Restart() (*Request, error) {
	if c.abandoned || c.Phase != PhaseSummary {
		return nil, c.invalid("restart")
	}
	c.Score = Score{}
	return c.loadScenario(), nil
}

// Abandon invalidates any outstanding request. Every later operation fails
// and every later result is dropped.
func (c *Challenge) Abandon() {
	c.abandoned = true
	c.ticket++
}

// Abandoned reports whether Abandon was called.
func (c *Challenge) Abandoned() bool { return c.abandoned }

func (c *Challenge) loadScenario() *Request {
	c.Scenario = nil
	c.Answer = ""
	c.Answered = false
	c.LastCorrect = false
	c.Feedback = ""
	c.Error = ""
	clear(c.selection)

	if c.Score.Total >= Length {
		c.Phase = PhaseSummary
		c.ticket++
		return nil
	}

	c.Phase = PhaseLoadingScenario
	c.ticket++
	return &Request{
		Kind:        RequestScenario,
		Ticket:      c.ticket,
		ChallengeID: c.ID,
		Category:    c.Category,
	}
}

func (c *Challenge) loadFeedback() *Request {
	c.Phase = PhaseLoadingFeedback
	c.Error = ""
	c.ticket++
	return &Request{
		Kind:        RequestFeedback,
		Ticket:      c.ticket,
		ChallengeID: c.ID,
		Category:    c.Category,
		Scenario:    c.Scenario,
		Answer:      c.Answer,
	}
}

// record grades the round exactly once and moves to feedback loading.
func (c *Challenge) record(answer string, correct bool) *Request {
	c.Score.Total++
	if correct {
		c.Score.Correct++
	}
	c.Answer = answer
	c.Answered = true
	c.LastCorrect = correct
	return c.loadFeedback()
}

func (c *Challenge) awaiting(types ...scenario.QuestionType) bool {
	if c.abandoned || c.Phase != PhaseAwaitingAnswer || c.Answered || c.Scenario == nil {
		return false
	}
	for _, t := range types {
		if c.Scenario.Type == t {
			return true
		}
	}
	return false
}

func (c *Challenge) invalid(op string) error {
	return fmt.Errorf("%w: %s in phase %s", ErrInvalidTransition, op, c.Phase)
}

func containsOption(options []string, o string) bool {
	for _, v := range options {
		if v == o {
			return true
		}
	}
	return false
}
