package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetDarkSwapsPalette(t *testing.T) {
	t.Cleanup(func() { SetDark(false) })

	SetDark(true)
	if !IsDark() || ModeIcon() != IconMoon {
		t.Fatalf("dark mode not applied")
	}
	if got := Title.GetForeground(); got != lipgloss.Color("205") {
		t.Fatalf("dark title color=%v", got)
	}
	SetDark(false)
	if IsDark() || ModeIcon() != IconSun {
		t.Fatalf("light mode not applied")
	}
	if got := Title.GetForeground(); got != lipgloss.Color("162") {
		t.Fatalf("light title color=%v", got)
	}
}

func TestStreakBarClamps(t *testing.T) {
	for _, pct := range []float64{-20, 0, 50, 100, 250} {
		bar := StreakBar("#2196F3", pct, 3, 10)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Fatalf("pct=%v: %d meter cells, want 10", pct, n)
		}
	}
	if n := strings.Count(StreakBar("#2196F3", 50, 46, 10), "█"); n != 5 {
		t.Fatalf("50%% fill=%d cells, want 5", n)
	}
}

func TestCellGlyphs(t *testing.T) {
	if !strings.Contains(Cell("#ff0000", true, false, false), GlyphChecked) {
		t.Fatalf("checked cell glyph missing")
	}
	if !strings.Contains(Cell("#ff0000", false, false, false), GlyphEmpty) {
		t.Fatalf("empty cell glyph missing")
	}
	if !strings.Contains(Cell("#ff0000", true, false, true), GlyphDisabled) {
		t.Fatalf("disabled cell glyph missing")
	}
}
