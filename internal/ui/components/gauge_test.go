package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRingGauge_Fill(t *testing.T) {
	tests := []struct {
		pct        int
		wantFilled bool
		wantEmpty  bool
	}{
		{0, false, true},
		{50, true, true},
		{100, true, false},
	}
	for _, tt := range tests {
		g := RingGauge(tt.pct, 4)
		if got := strings.Contains(g, gaugeFilled); got != tt.wantFilled {
			t.Errorf("pct %d: filled cells present = %v", tt.pct, got)
		}
		if got := strings.Contains(g, gaugeEmpty); got != tt.wantEmpty {
			t.Errorf("pct %d: empty cells present = %v", tt.pct, got)
		}
	}
}

func TestRingGauge_Shape(t *testing.T) {
	g := RingGauge(75, 4)
	lines := strings.Split(g, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 17 {
			t.Errorf("row %d width = %d, want 17", i, w)
		}
	}
	if !strings.Contains(g, "75%") {
		t.Error("expected the percentage in the centre")
	}
}

func TestRingGauge_Clamps(t *testing.T) {
	if !strings.Contains(RingGauge(140, 3), "100%") {
		t.Error("expected values above 100 to clamp")
	}
	if !strings.Contains(RingGauge(-5, 3), "0%") {
		t.Error("expected negative values to clamp")
	}
}
