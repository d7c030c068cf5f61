package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tracker theme (CLI + board). Styles are package variables so that SetDark
// can swap the palette in place.

const (
	IconCalendar = "📅"
	IconHabit    = "🔥"
	IconTodo     = "📝"
	IconWeekly   = "🗓️"
	IconGoal     = "🎯"
	IconJournal  = "📓"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconLoop     = "🔁"
	IconLock     = "🔒"
	IconMoon     = "🌙"
	IconSun      = "☀️"
)

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	good    lipgloss.Color
	warn    lipgloss.Color
	bad     lipgloss.Color
	muted   lipgloss.Color
	gold    lipgloss.Color
	empty   lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("25"),  // blue
		accent:  lipgloss.Color("162"), // magenta
		good:    lipgloss.Color("28"),  // green
		warn:    lipgloss.Color("166"), // orange
		bad:     lipgloss.Color("160"), // red
		muted:   lipgloss.Color("244"), // gray
		gold:    lipgloss.Color("136"), // dark gold
		empty:   lipgloss.Color("252"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("63"),
		accent:  lipgloss.Color("205"),
		good:    lipgloss.Color("42"),
		warn:    lipgloss.Color("214"),
		bad:     lipgloss.Color("196"),
		muted:   lipgloss.Color("244"),
		gold:    lipgloss.Color("220"),
		empty:   lipgloss.Color("238"),
	}
)

var (
	dark    bool
	current palette

	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style
	Dim   lipgloss.Style

	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	SelectedRow lipgloss.Style
)

func init() { SetDark(false) }

// SetDark switches every style to the dark or light palette.
func SetDark(on bool) {
	dark = on
	p := lightPalette
	if on {
		p = darkPalette
	}
	current = p

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Muted = lipgloss.NewStyle().Foreground(p.muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.good)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.warn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.bad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.gold)
	Dim = lipgloss.NewStyle().Foreground(p.muted)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.gold).Background(p.primary)
}

func IsDark() bool { return dark }

func ModeIcon() string {
	if dark {
		return IconMoon
	}
	return IconSun
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func Checkbox(done bool) string {
	if done {
		return Good.Render("[x]")
	}
	return Muted.Render("[ ]")
}

// Cell glyphs of the habit grid.
const (
	GlyphChecked  = "■"
	GlyphEmpty    = "□"
	GlyphDisabled = "·"
)

// Cell renders one grid cell. Checked cells take the habit's own color; the
// current day is underlined.
func Cell(color string, checked, today, disabled bool) string {
	if disabled {
		return Dim.Render(GlyphDisabled)
	}
	st := lipgloss.NewStyle().Foreground(current.empty)
	glyph := GlyphEmpty
	if checked {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		glyph = GlyphChecked
	}
	if today {
		st = st.Underline(true).Bold(true)
	}
	return st.Render(glyph)
}

// StreakBar renders a meter of width cells filled to pct percent, clamped to
// 0..100, followed by the streak count.
func StreakBar(color string, pct float64, streak, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(math.Round(math.Max(0, math.Min(pct, 100)) / 100 * float64(width)))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(current.empty).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, Muted.Render(fmt.Sprintf("%d", streak)))
}

// Locked renders a navigation hint, or a lock when the move is unavailable.
func Locked(label string, available bool) string {
	if available {
		return Key.Render(label)
	}
	return Dim.Render(IconLock)
}
