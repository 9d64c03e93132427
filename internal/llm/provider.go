package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM. When the request carries a Schema
	// the response Content is JSON validated against it. Otherwise Content
	// is the model's plain text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Scenario and feedback
	// generation are single-turn, so this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil the provider returns free text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Gemini and OpenAI accept up to 2.0;
	// the Anthropic provider clamps to 1.0. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, e.g. "cyber-scenario". Also used as the
	// cache key for the compiled validator.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the plain text of a schema-less response.
func (r *Response) Text() (string, error) {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", fmt.Errorf("response is not a text payload: %w", err)
	}
	return s, nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// textContent wraps raw model text as a JSON string for schema-less requests.
func textContent(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
