// Package challenge is the screen that plays one fifteen-round challenge.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/router"
	"github.com/abhisek/cyberhygiene/internal/scenario"
	"github.com/abhisek/cyberhygiene/internal/screen"
	"github.com/abhisek/cyberhygiene/internal/screens/summary"
	"github.com/abhisek/cyberhygiene/internal/ui/components"
	"github.com/abhisek/cyberhygiene/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ChallengeScreen implements screen.Screen for an active challenge.
type ChallengeScreen struct {
	engine  *challenge.Engine
	state   *challenge.Challenge
	pending *challenge.Request

	options components.OptionList
	picker  components.SegmentPicker
	next    components.Button
	hint    string
	frame   int

	ctx    context.Context
	cancel context.CancelFunc
	left   bool
}

var _ screen.Screen = (*ChallengeScreen)(nil)
var _ screen.KeyHintProvider = (*ChallengeScreen)(nil)
var _ screen.StatusProvider = (*ChallengeScreen)(nil)
var _ screen.Leaver = (*ChallengeScreen)(nil)

// New creates a screen that starts a fresh challenge in category c.
func New(c scenario.Category, engine *challenge.Engine) *ChallengeScreen {
	s := newScreen(challenge.New(c), engine)
	req, err := s.state.Start()
	if err == nil {
		s.pending = req
	}
	return s
}

// resume wraps an existing challenge whose next request is req.
func resume(state *challenge.Challenge, req *challenge.Request, engine *challenge.Engine) *ChallengeScreen {
	s := newScreen(state, engine)
	s.pending = req
	return s
}

func newScreen(state *challenge.Challenge, engine *challenge.Engine) *ChallengeScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChallengeScreen{
		engine: engine,
		state:  state,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	req := s.pending
	s.pending = nil
	return tea.Batch(s.run(req), spinnerTick())
}

func (s *ChallengeScreen) Title() string {
	return s.state.Category.Title()
}

// Status shows the round counter and the running score.
func (s *ChallengeScreen) Status() string {
	return fmt.Sprintf("Round %d/%d   Score %d", s.state.Round(), challenge.Length, s.state.Score.Correct)
}

// Leave abandons an unfinished challenge so late results are dropped.
func (s *ChallengeScreen) Leave() {
	s.left = true
	s.cancel()
	if s.state.Phase != challenge.PhaseSummary {
		s.state.Abandon()
	}
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case challenge.PhaseScenarioError:
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Menu"},
		}
	case challenge.PhaseFeedbackError:
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "C", Description: "Continue"},
			{Key: "Esc", Description: "Menu"},
		}
	case challenge.PhaseShowingFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.continueLabel()},
			{Key: "Esc", Description: "Menu"},
		}
	case challenge.PhaseAwaitingAnswer:
		switch s.state.Scenario.Type {
		case scenario.TypeMultipleSelect:
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Move"},
				{Key: "Space", Description: "Toggle"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Menu"},
			}
		case scenario.TypeIdentifyElement:
			return []layout.KeyHint{
				{Key: "←→", Description: "Move highlight"},
				{Key: "Enter", Description: "Pick"},
				{Key: "Esc", Description: "Menu"},
			}
		default:
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Move"},
				{Key: fmt.Sprintf("1-%d", len(s.state.Scenario.Options)), Description: "Answer"},
				{Key: "Enter", Description: "Select"},
				{Key: "Esc", Description: "Menu"},
			}
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return s.handleResult(msg)

	case spinnerTickMsg:
		if s.left {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case components.OptionChosenMsg:
		if opt, ok := s.optionAt(msg.Index); ok {
			return s.answered(s.state.Choose(opt))
		}
		return s, nil

	case components.OptionToggledMsg:
		if opt, ok := s.optionAt(msg.Index); ok && s.state.Toggle(opt) == nil {
			s.hint = ""
		}
		return s, nil

	case components.OptionsSubmittedMsg:
		req, err := s.state.Submit()
		if errors.Is(err, challenge.ErrEmptySelection) {
			s.hint = "Select at least one option first."
			return s, nil
		}
		return s.answered(req, err)

	case components.SegmentPickedMsg:
		return s.answered(s.state.Pick(msg.Index))

	case continueMsg:
		return s.advance(s.state.Dismiss())

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ChallengeScreen) handleResult(msg resultMsg) (screen.Screen, tea.Cmd) {
	if msg.ChallengeID != s.state.ID || !s.state.Apply(msg.Result) {
		return s, nil
	}
	switch s.state.Phase {
	case challenge.PhaseAwaitingAnswer:
		s.setupAnswerWidgets()
	case challenge.PhaseShowingFeedback:
		s.next = components.NewButton(s.continueLabel(), true, func() tea.Cmd {
			return func() tea.Msg { return continueMsg{} }
		})
	}
	return s, nil
}

func (s *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.state.Phase {
	case challenge.PhaseScenarioError:
		if key == "r" {
			return s.follow(s.state.Retry())
		}

	case challenge.PhaseFeedbackError:
		switch key {
		case "r":
			return s.follow(s.state.Retry())
		case "c":
			return s.advance(s.state.Skip())
		}

	case challenge.PhaseShowingFeedback:
		var cmd tea.Cmd
		s.next, cmd = s.next.Update(msg)
		return s, cmd

	case challenge.PhaseAwaitingAnswer:
		var cmd tea.Cmd
		if s.state.Scenario.Type == scenario.TypeIdentifyElement {
			s.picker, cmd = s.picker.Update(msg)
		} else {
			s.options, cmd = s.options.Update(msg)
		}
		return s, cmd
	}
	return s, nil
}

// answered handles the request produced by grading an answer.
func (s *ChallengeScreen) answered(req *challenge.Request, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		return s, nil
	}
	s.hint = ""
	return s, s.run(req)
}

// follow runs the request returned by a retry.
func (s *ChallengeScreen) follow(req *challenge.Request, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		return s, nil
	}
	return s, s.run(req)
}

// advance moves to the next round, or to the summary after the last one.
func (s *ChallengeScreen) advance(req *challenge.Request, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		return s, nil
	}
	if s.state.Phase == challenge.PhaseSummary {
		return s, s.showSummary()
	}
	return s, s.run(req)
}

func (s *ChallengeScreen) showSummary() tea.Cmd {
	state, engine := s.state, s.engine
	restart := func() (screen.Screen, error) {
		req, err := state.Restart()
		if err != nil {
			return nil, err
		}
		return resume(state, req, engine), nil
	}
	next := summary.New(state, restart)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *ChallengeScreen) setupAnswerWidgets() {
	sc := s.state.Scenario
	s.hint = ""
	switch sc.Type {
	case scenario.TypeIdentifyElement:
		texts := make([]string, len(sc.Segments))
		for i, seg := range sc.Segments {
			texts[i] = seg.Text
		}
		s.picker = components.NewSegmentPicker(texts)
	default:
		s.options = components.NewOptionList(sc.Options, sc.Type == scenario.TypeMultipleSelect)
	}
}

// run executes req off the UI goroutine.
func (s *ChallengeScreen) run(req *challenge.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	ctx, engine := s.ctx, s.engine
	return func() tea.Msg {
		return resultMsg{ChallengeID: r.ChallengeID, Result: engine.Execute(ctx, r)}
	}
}

func (s *ChallengeScreen) optionAt(i int) (string, bool) {
	sc := s.state.Scenario
	if sc == nil || i < 0 || i >= len(sc.Options) {
		return "", false
	}
	return sc.Options[i], true
}

func (s *ChallengeScreen) continueLabel() string {
	if s.state.IsLastRound() {
		return "See results"
	}
	return "Continue"
}

// spinnerTick returns a short tick for the loading animation.
func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
