package challenge

import (
	"errors"
	"testing"

	"github.com/abhisek/cyberhygiene/internal/scenario"
)

func binaryScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Category:      scenario.CategoryPhishing,
		Body:          "Verify your account now or lose access.",
		Question:      "Safe or suspicious?",
		Type:          scenario.TypeBinary,
		Options:       []string{"Safe", "Suspicious"},
		CorrectAnswer: "Suspicious",
	}
}

func multiSelectScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Body:           "Pick every red flag.",
		Question:       "Which are red flags?",
		Type:           scenario.TypeMultipleSelect,
		Options:        []string{"A", "B", "C"},
		CorrectAnswers: []string{"A", "C"},
	}
}

func identifyScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Question: "Click the suspicious part.",
		Type:     scenario.TypeIdentifyElement,
		Segments: []scenario.BodySegment{
			{Text: "Hello, "},
			{Text: "reset your password at bit.ly/x9", IsCorrectPart: true},
			{Text: " Thanks."},
		},
	}
}

// started returns a challenge waiting on its first scenario.
func started(t *testing.T) (*Challenge, *Request) {
	t.Helper()
	c := New(scenario.CategoryPhishing)
	req, err := c.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, req
}

// deliver applies a successful scenario result for req.
func deliver(t *testing.T, c *Challenge, req *Request, s *scenario.Scenario) {
	t.Helper()
	if req == nil || req.Kind != RequestScenario {
		t.Fatalf("expected scenario request, got %+v", req)
	}
	if !c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket, Scenario: s}) {
		t.Fatal("scenario result was not applied")
	}
}

// explain applies a successful feedback result for req.
func explain(t *testing.T, c *Challenge, req *Request) {
	t.Helper()
	if req == nil || req.Kind != RequestFeedback {
		t.Fatalf("expected feedback request, got %+v", req)
	}
	if !c.Apply(Result{Kind: RequestFeedback, Ticket: req.Ticket, Feedback: "Nice."}) {
		t.Fatal("feedback result was not applied")
	}
}

func TestStart(t *testing.T) {
	c, req := started(t)
	if c.Phase != PhaseLoadingScenario {
		t.Fatalf("phase = %s, want loading_scenario", c.Phase)
	}
	if req.Category != scenario.CategoryPhishing || req.ChallengeID != c.ID {
		t.Fatalf("unexpected request %+v", req)
	}
	if c.Round() != 1 {
		t.Errorf("round = %d, want 1", c.Round())
	}
	if _, err := c.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Start should fail, got %v", err)
	}
}

func TestChoose_ExactMatchGrading(t *testing.T) {
	tests := []struct {
		answer  string
		correct bool
	}{
		{"Suspicious", true},
		{"Safe", false},
		{"suspicious", false},
		{"Suspicious ", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			c, req := started(t)
			deliver(t, c, req, binaryScenario())

			fb, err := c.Choose(tt.answer)
			if err != nil {
				t.Fatalf("Choose: %v", err)
			}
			if c.LastCorrect != tt.correct {
				t.Errorf("LastCorrect = %v, want %v", c.LastCorrect, tt.correct)
			}
			want := Score{Total: 1}
			if tt.correct {
				want.Correct = 1
			}
			if c.Score != want {
				t.Errorf("score = %+v, want %+v", c.Score, want)
			}
			if c.Phase != PhaseLoadingFeedback {
				t.Errorf("phase = %s, want loading_feedback", c.Phase)
			}
			if fb.Answer != tt.answer || fb.Scenario == nil {
				t.Errorf("unexpected feedback request %+v", fb)
			}
		})
	}
}

func TestSecondSubmissionRejected(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, binaryScenario())

	if _, err := c.Choose("Suspicious"); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if _, err := c.Choose("Safe"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if c.Score.Total != 1 || c.Score.Correct != 1 {
		t.Fatalf("score changed by rejected submission: %+v", c.Score)
	}
}

func TestWrongOperationForType(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, binaryScenario())

	if err := c.Toggle("Safe"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Toggle on binary: %v", err)
	}
	if _, err := c.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit on binary: %v", err)
	}
	if _, err := c.Pick(0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Pick on binary: %v", err)
	}
}

func TestMultipleSelect(t *testing.T) {
	tests := []struct {
		name    string
		toggles []string
		correct bool
		answer  string
	}{
		{"reverse order", []string{"C", "A"}, true, "A, C"},
		{"subset", []string{"A"}, false, "A"},
		{"superset", []string{"A", "B", "C"}, false, "A, B, C"},
		{"toggle off", []string{"A", "B", "C", "B"}, true, "A, C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, req := started(t)
			deliver(t, c, req, multiSelectScenario())

			for _, o := range tt.toggles {
				if err := c.Toggle(o); err != nil {
					t.Fatalf("Toggle(%q): %v", o, err)
				}
			}
			if _, err := c.Submit(); err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if c.LastCorrect != tt.correct {
				t.Errorf("LastCorrect = %v, want %v", c.LastCorrect, tt.correct)
			}
			if c.Answer != tt.answer {
				t.Errorf("Answer = %q, want %q", c.Answer, tt.answer)
			}
		})
	}
}

func TestSubmit_EmptySelectionIgnored(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, multiSelectScenario())

	if _, err := c.Submit(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if c.Phase != PhaseAwaitingAnswer || c.Score.Total != 0 {
		t.Fatalf("empty submit changed state: phase %s, score %+v", c.Phase, c.Score)
	}

	// Toggling on and off again leaves the selection empty.
	c.Toggle("B")
	c.Toggle("B")
	if _, err := c.Submit(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection after toggling off, got %v", err)
	}
}

func TestToggle_UnknownOption(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, multiSelectScenario())

	if err := c.Toggle("D"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
}

func TestSetSelection(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, multiSelectScenario())

	c.Toggle("B")
	if err := c.SetSelection([]string{"C", "A"}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if got := c.Selection(); len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Fatalf("selection = %v, want [A C]", got)
	}

	if err := c.SetSelection([]string{"A", "Z"}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if len(c.Selection()) != 2 {
		t.Fatal("rejected selection must not change the current one")
	}
}

func TestSetSelectionEmptyKeepsToggles(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, multiSelectScenario())

	c.Toggle("A")
	if err := c.SetSelection(nil); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if err := c.SetSelection([]string{}); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if got := c.Selection(); len(got) != 1 || got[0] != "A" {
		t.Fatalf("selection = %v, want [A]", got)
	}
	if c.Phase != PhaseAwaitingAnswer || c.Score.Total != 0 {
		t.Fatalf("empty selection must not grade: phase %s, score %+v", c.Phase, c.Score)
	}
}

func TestPick(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, identifyScenario())

	if _, err := c.Pick(5); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if _, err := c.Pick(1); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if !c.LastCorrect || c.Answer != "reset your password at bit.ly/x9" {
		t.Fatalf("unexpected grade %v / answer %q", c.LastCorrect, c.Answer)
	}

	c2, req2 := started(t)
	deliver(t, c2, req2, identifyScenario())
	c2.Pick(0)
	if c2.LastCorrect {
		t.Fatal("picking a plain segment should be wrong")
	}
}

func TestScenarioNotInstalledBeforeAnswer(t *testing.T) {
	c, _ := started(t)
	if _, err := c.Choose("Safe"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("answering while loading should fail, got %v", err)
	}
}

func TestStaleResultsIgnored(t *testing.T) {
	c, req := started(t)

	// Wrong ticket.
	if c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket + 1, Scenario: binaryScenario()}) {
		t.Fatal("result with a future ticket was applied")
	}
	// Wrong kind for the phase.
	if c.Apply(Result{Kind: RequestFeedback, Ticket: req.Ticket, Feedback: "x"}) {
		t.Fatal("feedback result was applied while loading a scenario")
	}

	deliver(t, c, req, binaryScenario())

	// Replaying the same result after it was consumed is dropped.
	if c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket, Scenario: identifyScenario()}) {
		t.Fatal("replayed scenario result was applied")
	}
	if c.Scenario.Type != scenario.TypeBinary {
		t.Fatal("replayed result replaced the scenario")
	}
}

func TestAbandonDropsLateResults(t *testing.T) {
	c, req := started(t)
	c.Abandon()

	if c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket, Scenario: binaryScenario()}) {
		t.Fatal("late result applied after abandon")
	}
	if _, err := c.Retry(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after abandon, got %v", err)
	}
}

func TestScenarioErrorRetry(t *testing.T) {
	c, req := started(t)
	c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket, Err: errors.New("boom")})

	if c.Phase != PhaseScenarioError || c.Error != "boom" {
		t.Fatalf("phase = %s, error = %q", c.Phase, c.Error)
	}

	retry, err := c.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if retry.Ticket == req.Ticket {
		t.Fatal("retry must issue a fresh ticket")
	}
	if c.Phase != PhaseLoadingScenario || c.Error != "" {
		t.Fatalf("phase = %s, error = %q", c.Phase, c.Error)
	}
	deliver(t, c, retry, binaryScenario())
}

func TestNilScenarioResultIsAnError(t *testing.T) {
	c, req := started(t)
	c.Apply(Result{Kind: RequestScenario, Ticket: req.Ticket})
	if c.Phase != PhaseScenarioError {
		t.Fatalf("phase = %s, want scenario_error", c.Phase)
	}
}

func TestFeedbackErrorRetryDoesNotRegrade(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, binaryScenario())
	fb, _ := c.Choose("Suspicious")

	c.Apply(Result{Kind: RequestFeedback, Ticket: fb.Ticket, Err: errors.New("timeout")})
	if c.Phase != PhaseFeedbackError {
		t.Fatalf("phase = %s, want feedback_error", c.Phase)
	}
	if c.Score != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("score rolled back: %+v", c.Score)
	}

	again, err := c.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if again.Kind != RequestFeedback || again.Answer != "Suspicious" {
		t.Fatalf("unexpected retry request %+v", again)
	}
	if c.Score != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("retry re-graded: %+v", c.Score)
	}
	explain(t, c, again)
	if c.Phase != PhaseShowingFeedback || c.Feedback != "Nice." {
		t.Fatalf("phase = %s, feedback = %q", c.Phase, c.Feedback)
	}
}

func TestSkipFeedbackError(t *testing.T) {
	c, req := started(t)
	deliver(t, c, req, binaryScenario())
	fb, _ := c.Choose("Safe")
	c.Apply(Result{Kind: RequestFeedback, Ticket: fb.Ticket, Err: errors.New("timeout")})

	next, err := c.Skip()
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if next.Kind != RequestScenario || c.Phase != PhaseLoadingScenario {
		t.Fatalf("unexpected skip result %+v / %s", next, c.Phase)
	}
	if c.Round() != 2 {
		t.Errorf("round = %d, want 2", c.Round())
	}
}

func TestFullChallengeReachesSummary(t *testing.T) {
	c, req := started(t)

	for i := 0; i < Length; i++ {
		deliver(t, c, req, binaryScenario())
		if c.Round() != i+1 {
			t.Fatalf("round = %d, want %d", c.Round(), i+1)
		}

		answer := "Safe"
		if i%2 == 0 {
			answer = "Suspicious"
		}
		fb, err := c.Choose(answer)
		if err != nil {
			t.Fatalf("round %d Choose: %v", i+1, err)
		}
		if c.Score.Total != i+1 {
			t.Fatalf("total = %d after %d answers", c.Score.Total, i+1)
		}
		explain(t, c, fb)

		if got, want := c.IsLastRound(), i == Length-1; got != want {
			t.Fatalf("round %d IsLastRound = %v", i+1, got)
		}
		req, err = c.Dismiss()
		if err != nil {
			t.Fatalf("round %d Dismiss: %v", i+1, err)
		}
	}

	if req != nil {
		t.Fatalf("dismissing the last round must not fetch, got %+v", req)
	}
	if c.Phase != PhaseSummary {
		t.Fatalf("phase = %s, want summary", c.Phase)
	}
	if c.Score != (Score{Correct: 8, Total: 15}) {
		t.Fatalf("score = %+v, want 8/15", c.Score)
	}
	if _, err := c.Dismiss(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Dismiss in summary: %v", err)
	}

	restart, err := c.Restart()
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if c.Score != (Score{}) || c.Phase != PhaseLoadingScenario || restart == nil {
		t.Fatalf("restart left score %+v, phase %s", c.Score, c.Phase)
	}
	if c.Round() != 1 {
		t.Fatalf("round after restart = %d", c.Round())
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseShowingFeedback.String() != "showing_feedback" {
		t.Errorf("unexpected name %q", PhaseShowingFeedback.String())
	}
	if Phase(42).String() != "phase(42)" {
		t.Errorf("unexpected name %q", Phase(42).String())
	}
}
