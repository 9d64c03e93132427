package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cyberhygiene/internal/llm"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

func phishingScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Category:      scenario.CategoryPhishing,
		Sender:        "it-desk@micros0ft-help.com",
		Body:          "Your mailbox is full. Click here within 1 hour to keep your messages.",
		Question:      "Is this email safe or suspicious?",
		Type:          scenario.TypeBinary,
		Options:       []string{"Safe", "Suspicious"},
		CorrectAnswer: "Suspicious",
	}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("  Not quite. The sender domain uses a zero instead of an o.  "))
	ex := New(mock, DefaultConfig())

	text, err := ex.Explain(context.Background(), phishingScenario(), "Safe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Not quite. The sender domain uses a zero instead of an o." {
		t.Errorf("unexpected text %q", text)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("feedback requests must not carry a schema")
	}
	if req.Temperature != 0.7 || req.MaxTokens != 512 {
		t.Errorf("unexpected settings: temperature %v, max tokens %d", req.Temperature, req.MaxTokens)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		`Scenario: "Your mailbox is full.`,
		"Question to the player: Is this email safe or suspicious?",
		"The correct answer is: Suspicious",
		"The player answered: Safe",
		"3-4 sentences",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExplain_IdentifyElementPrompt(t *testing.T) {
	s := &scenario.Scenario{
		Type:     scenario.TypeIdentifyElement,
		Question: "Click the suspicious part.",
		Segments: []scenario.BodySegment{
			{Text: "Hi team, "},
			{Text: "download the invoice.exe attached", IsCorrectPart: true},
		},
	}
	mock := llm.NewMockProvider(llm.TextResponse("Correct!"))
	ex := New(mock, DefaultConfig())

	if _, err := ex.Explain(context.Background(), s, "download the invoice.exe attached"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, `"isCorrectPart":true`) {
		t.Errorf("expected segment JSON in prompt, got:\n%s", msg)
	}
	if !strings.Contains(msg, "The correct answer is: download the invoice.exe attached") {
		t.Errorf("expected segment text as the answer key, got:\n%s", msg)
	}
}

func TestExplain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    llm.MockResponse
		wantErr error
	}{
		{"provider failure", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, nil},
		{"blank text", llm.TextResponse(" \n\t "), ErrEmptyFeedback},
		{"non-text payload", llm.MockResponse{Content: json.RawMessage(`{"text":"x"}`)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			_, err := ex.Explain(context.Background(), phishingScenario(), "Safe")
			var fe *FeedbackError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FeedbackError, got %T (%v)", err, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
