package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/tui/theme"
)

func TestColorForScore(t *testing.T) {
	theme.SetActive("flexoki-dark")
	tests := []struct {
		score float64
		want  lipgloss.Color
	}{
		{0.95, theme.Active.Green},
		{0.8, theme.Active.Green},
		{0.65, theme.Active.Yellow},
		{0.5, theme.Active.Orange},
		{0.1, theme.Active.Red},
	}
	for _, tt := range tests {
		if got := ColorForScore(tt.score); got != tt.want {
			t.Errorf("ColorForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestColorForShare(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if got := ColorForShare(40, 30); got != theme.Active.Orange {
		t.Errorf("over benchmark = %v, want orange", got)
	}
	if got := ColorForShare(20, 30); got != theme.Active.Green {
		t.Errorf("under benchmark = %v, want green", got)
	}
	if got := ColorForShare(20, 0); got != theme.Active.Accent {
		t.Errorf("no benchmark = %v, want accent", got)
	}
}

func TestRelevanceBarWidthIsStable(t *testing.T) {
	a := RelevanceBar("budget", 0.5, 12, 20)
	b := RelevanceBar("savings", 1.7, 12, 20)
	if lipgloss.Width(a) != lipgloss.Width(b) {
		t.Errorf("widths differ: %d vs %d", lipgloss.Width(a), lipgloss.Width(b))
	}
	if !strings.Contains(b, "100%") {
		t.Errorf("relevance above 1 should clamp to 100%%: %q", b)
	}
}

func TestShareBarNote(t *testing.T) {
	out := ShareBar("rent", 30, 30, "benchmark 30%", 10, 20)
	if !strings.Contains(out, "30.0%") || !strings.Contains(out, "benchmark 30%") {
		t.Errorf("share bar missing figures: %q", out)
	}
}
