package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/cyberhygiene/internal/llm"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

// ErrEmptyFeedback is wrapped in FeedbackError when the model returns no
// usable text.
var ErrEmptyFeedback = errors.New("empty feedback")

// FeedbackError reports a failed explanation request.
type FeedbackError struct {
	Err error
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("generate feedback: %v", e.Err)
}

func (e *FeedbackError) Unwrap() error { return e.Err }

// Explainer produces a short natural-language explanation of a graded answer.
type Explainer interface {
	Explain(ctx context.Context, s *scenario.Scenario, userAnswer string) (string, error)
}

// Config controls the LLMExplainer request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended request settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// LLMExplainer implements Explainer using an LLM provider.
type LLMExplainer struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMExplainer.
func New(provider llm.Provider, cfg Config) *LLMExplainer {
	return &LLMExplainer{provider: provider, config: cfg}
}

// Explain asks the model to explain userAnswer against the scenario's key.
// Failures are *FeedbackError.
func (e *LLMExplainer) Explain(ctx context.Context, s *scenario.Scenario, userAnswer string) (string, error) {
	if s == nil {
		return "", &FeedbackError{Err: errors.New("no scenario")}
	}

	userMsg, err := buildUserMessage(s, userAnswer)
	if err != nil {
		return "", &FeedbackError{Err: fmt.Errorf("render prompt: %w", err)}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)
	resp, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return "", &FeedbackError{Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	text, err := resp.Text()
	if err != nil {
		return "", &FeedbackError{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &FeedbackError{Err: ErrEmptyFeedback}
	}
	return text, nil
}
