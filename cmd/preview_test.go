package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

type stubGenerator struct {
	scenarios []*scenario.Scenario
	fail      int
	calls     int
}

func (g *stubGenerator) Generate(_ context.Context, _ scenario.Category) (*scenario.Scenario, error) {
	g.calls++
	if g.fail > 0 {
		g.fail--
		return nil, errors.New("model overloaded")
	}
	return g.scenarios[(g.calls-1)%len(g.scenarios)], nil
}

type stubExplainer struct{ err error }

func (e stubExplainer) Explain(_ context.Context, _ *scenario.Scenario, _ string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "Check the sender domain.", nil
}

func consoleScenarios() []*scenario.Scenario {
	return []*scenario.Scenario{
		{
			Body:          "Your parcel is held. Pay 1.99 to release it.",
			Question:      "Safe or suspicious?",
			Type:          scenario.TypeBinary,
			Options:       []string{"Safe", "Suspicious"},
			CorrectAnswer: "Suspicious",
		},
		{
			Body:           "A USB stick was left in the car park.",
			Question:       "What should you do?",
			Type:           scenario.TypeMultipleSelect,
			Options:        []string{"Plug it in", "Hand it to IT", "Leave a note"},
			CorrectAnswers: []string{"Hand it to IT", "Leave a note"},
		},
		{
			Question: "Click the suspicious part.",
			Type:     scenario.TypeIdentifyElement,
			Segments: []scenario.BodySegment{
				{Text: "Dear user, "},
				{Text: "confirm at paypa1.com", IsCorrectPart: true},
			},
		},
	}
}

func TestPlayConsole(t *testing.T) {
	gen := &stubGenerator{scenarios: consoleScenarios()}
	engine := challenge.NewEngine(gen, stubExplainer{})

	in := strings.NewReader("2\n3,2\n1\n")
	var out bytes.Buffer
	if err := playConsole(context.Background(), engine, scenario.CategoryPhishing, 3, in, &out); err != nil {
		t.Fatalf("playConsole: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Phishing Challenge: 3 rounds",
		"── Round 1/15 ──",
		"  [2] confirm at paypa1.com",
		"Correct answer: confirm at paypa1.com",
		"Summary: 2/3 correct (67%)",
		"Good try!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if gen.calls != 3 {
		t.Errorf("generator calls = %d, want 3", gen.calls)
	}
}

func TestPlayConsoleRepromptsOnBadInput(t *testing.T) {
	gen := &stubGenerator{scenarios: consoleScenarios()[:1]}
	engine := challenge.NewEngine(gen, stubExplainer{})

	in := strings.NewReader("7\nmaybe\n1\n")
	var out bytes.Buffer
	if err := playConsole(context.Background(), engine, scenario.CategoryDaily, 1, in, &out); err != nil {
		t.Fatalf("playConsole: %v", err)
	}
	if n := strings.Count(out.String(), "enter a number between 1 and 2"); n != 2 {
		t.Errorf("reprompts = %d, want 2", n)
	}
	if !strings.Contains(out.String(), "Summary: 0/1 correct (0%)") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
}

func TestPlayConsoleRetriesAndSkips(t *testing.T) {
	gen := &stubGenerator{scenarios: consoleScenarios()[:1], fail: 1}
	engine := challenge.NewEngine(gen, stubExplainer{err: errors.New("timeout")})

	in := strings.NewReader("\n2\n2\n")
	var out bytes.Buffer
	if err := playConsole(context.Background(), engine, scenario.CategoryWork, 2, in, &out); err != nil {
		t.Fatalf("playConsole: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Scenario generation failed") {
		t.Errorf("expected generation failure notice:\n%s", got)
	}
	if strings.Count(got, "Explanation unavailable") != 2 {
		t.Errorf("expected two skipped explanations:\n%s", got)
	}
	if !strings.Contains(got, "Summary: 2/2 correct (100%)") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}

func TestPlayConsoleInputClosed(t *testing.T) {
	gen := &stubGenerator{scenarios: consoleScenarios()}
	engine := challenge.NewEngine(gen, stubExplainer{})

	var out bytes.Buffer
	if err := playConsole(context.Background(), engine, scenario.CategoryFakeNews, 5, strings.NewReader(""), &out); err != nil {
		t.Fatalf("playConsole: %v", err)
	}
	if !strings.Contains(out.String(), "(input closed)") {
		t.Errorf("expected input closed notice:\n%s", out.String())
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		max     int
		want    int
		wantErr bool
	}{
		{"1", 2, 0, false},
		{" 3 ", 3, 2, false},
		{"0", 2, 0, true},
		{"4", 3, 0, true},
		{"a", 3, 0, true},
	}
	for _, tt := range tests {
		got, err := parseChoice(tt.in, tt.max)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseChoice(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseChoice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
