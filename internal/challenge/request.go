package challenge

import "github.com/abhisek/cyberhygiene/internal/scenario"

// RequestKind distinguishes the two outbound calls a challenge makes.
type RequestKind int

const (
	RequestScenario RequestKind = iota
	RequestFeedback
)

func (k RequestKind) String() string {
	if k == RequestFeedback {
		return "feedback"
	}
	return "scenario"
}

// Request is an outbound call requested by a state transition. It carries
// everything the call needs so it can run off the owning goroutine.
type Request struct {
	Kind        RequestKind
	Ticket      uint64
	ChallengeID string
	Category    scenario.Category

	// Scenario and Answer are set for feedback requests.
	Scenario *scenario.Scenario
	Answer   string
}

// Result is the outcome of a Request, fed back through Challenge.Apply.
type Result struct {
	Kind     RequestKind
	Ticket   uint64
	Scenario *scenario.Scenario
	Feedback string
	Err      error
}
