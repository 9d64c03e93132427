package challenge

import (
	"context"
	"log/slog"

	"github.com/abhisek/cyberhygiene/internal/feedback"
	"github.com/abhisek/cyberhygiene/internal/llm"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

// Engine executes challenge requests against the scenario and feedback
// clients.
type Engine struct {
	scenarios scenario.Generator
	explainer feedback.Explainer
}

// NewEngine creates an Engine.
func NewEngine(scenarios scenario.Generator, explainer feedback.Explainer) *Engine {
	return &Engine{scenarios: scenarios, explainer: explainer}
}

// Execute runs one request. It never touches the Challenge, so it may run
// on any goroutine.
func (e *Engine) Execute(ctx context.Context, req Request) Result {
	ctx = llm.WithSession(ctx, req.ChallengeID)
	res := Result{Kind: req.Kind, Ticket: req.Ticket}

	switch req.Kind {
	case RequestScenario:
		res.Scenario, res.Err = e.scenarios.Generate(ctx, req.Category)
	case RequestFeedback:
		res.Feedback, res.Err = e.explainer.Explain(ctx, req.Scenario, req.Answer)
	}

	if res.Err != nil {
		slog.Warn("challenge request failed",
			"challenge", req.ChallengeID,
			"kind", req.Kind.String(),
			"error", res.Err,
		)
	}
	return res
}

// Resolve executes req and applies its result to c. A nil req is a no-op.
func (e *Engine) Resolve(ctx context.Context, c *Challenge, req *Request) {
	if req == nil {
		return
	}
	c.Apply(e.Execute(ctx, *req))
}
