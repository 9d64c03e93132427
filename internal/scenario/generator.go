package scenario

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/cyberhygiene/internal/llm"
)

// Generator produces cyber-hygiene scenarios.
type Generator interface {
	// Generate produces one validated scenario for the category.
	// Failures are *GenerationError.
	Generate(ctx context.Context, c Category) (*Scenario, error)
}

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order after decoding; the first failure stops the
	// pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature is kept high so consecutive rounds differ.
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&ContentValidator{},
			&AnswerKeyValidator{},
		},
		MaxTokens:   2048,
		Temperature: 1.2,
	}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// scenarioOutput is the raw LLM response before post-processing.
type scenarioOutput struct {
	Sender         string   `json:"sender"`
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	Question       string   `json:"question"`
	QuestionType   string   `json:"questionType"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correctAnswer"`
	CorrectAnswers []string `json:"correctAnswers"`
}

// Generate fetches, decodes and validates one scenario.
func (g *LLMGenerator) Generate(ctx context.Context, c Category) (*Scenario, error) {
	userMsg, err := buildUserMessage(c)
	if err != nil {
		return nil, &GenerationError{Category: c, Err: err}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeScenario)
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ScenarioSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Category: c, Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	var raw scenarioOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Category: c, Err: fmt.Errorf("failed to parse LLM response: %w", err)}
	}

	s, err := decode(c, raw)
	if err != nil {
		return nil, &GenerationError{Category: c, Err: err}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(s); verr != nil {
			return nil, &GenerationError{Category: c, Err: verr}
		}
	}

	return s, nil
}

// decode maps the wire payload onto a Scenario, unpacking identify_element
// segments.
func decode(c Category, raw scenarioOutput) (*Scenario, error) {
	s := &Scenario{
		Category:       c,
		Sender:         raw.Sender,
		Subject:        raw.Subject,
		Question:       raw.Question,
		Type:           QuestionType(raw.QuestionType),
		Options:        raw.Options,
		CorrectAnswer:  raw.CorrectAnswer,
		CorrectAnswers: raw.CorrectAnswers,
	}
	if !s.Type.Valid() {
		return nil, fmt.Errorf("unknown question type %q", raw.QuestionType)
	}

	if s.Type != TypeIdentifyElement {
		s.Body = raw.Body
		return s, nil
	}

	segments, err := decodeSegments(raw.Body)
	if err != nil {
		return nil, err
	}
	s.Segments = segments
	return s, nil
}

func decodeSegments(body string) ([]BodySegment, error) {
	var segments []BodySegment
	if err := json.Unmarshal([]byte(body), &segments); err != nil {
		return nil, &MalformedInteractivePayload{Reason: "body is not a segment array", Err: err}
	}
	if len(segments) == 0 {
		return nil, &MalformedInteractivePayload{Reason: "no segments"}
	}
	correct := false
	for _, seg := range segments {
		if seg.IsCorrectPart {
			correct = true
			break
		}
	}
	if !correct {
		return nil, &MalformedInteractivePayload{Reason: "no segment is marked correct"}
	}
	return segments, nil
}
