package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     20,
				"candidatesTokenCount": 10,
				"totalTokenCount":      30,
			},
		})
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-lite", "gemini-2.5-flash-lite"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiProvider_TextResponse(t *testing.T) {
	var path string
	handler := geminiReply("You spotted the lookalike domain.", "STOP")
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		handler(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:    []Message{{Role: RoleUser, Content: "explain"}},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(path, "gemini-2.5-flash") {
		t.Fatalf("expected request for gemini-2.5-flash, got path %q", path)
	}
	text, err := resp.Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if text != "You spotted the lookalike domain." {
		t.Fatalf("unexpected text %q", text)
	}
	if resp.Usage.TotalTokens != 30 {
		t.Fatalf("expected 30 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestGeminiProvider_SchemaResponseValidated(t *testing.T) {
	schema := &Schema{
		Name: "gemini-test-title",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"title": map[string]any{"type": "string"}},
			"required":   []any{"title"},
		},
	}

	p := newTestGeminiProvider(t, geminiReply(`{"title":"Urgent payroll update"}`, "STOP"))
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   schema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"title":"Urgent payroll update"}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}

	bad := newTestGeminiProvider(t, geminiReply(`{"headline":"x"}`, "STOP"))
	_, err = bad.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   schema,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_MaxTokens(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(`{"title":"Urg`, "MAX_TOKENS"))
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   &Schema{Name: "gemini-test-any", Definition: map[string]any{"type": "object"}},
	})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_EmptyText(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply("  ", "STOP"))
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource has been exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"count":    map[string]any{"type": "integer"},
			"category": map[string]any{"type": "string", "enum": []string{"phishing", "daily", "work"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "count"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["title"].Type != "STRING" {
		t.Fatalf("expected STRING for title, got %s", schema.Properties["title"].Type)
	}
	if schema.Properties["count"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for count, got %s", schema.Properties["count"].Type)
	}
	if len(schema.Properties["category"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["category"].Enum))
	}
	if schema.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for options items, got %s", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
