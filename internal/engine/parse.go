package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

func ParseRepeat(input string) (Repeat, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return RepeatNone, nil
	}
	r := Repeat(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid repeat: %q (want none|daily|weekly|custom)", input)
	}
	return r, nil
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thurs": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma separated list of weekdays, by name ("mon")
// or number (0 = Sunday). The result is sorted and deduplicated.
func ParseWeekdays(input string) ([]int, error) {
	seen := map[int]bool{}
	for _, part := range strings.Split(input, ",") {
		p := strings.TrimSpace(strings.ToLower(part))
		if p == "" {
			continue
		}
		d, ok := weekdayNames[p]
		if !ok {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid weekday: %q", part)
			}
			d = n
		}
		seen[d] = true
	}
	out := make([]int, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

func validWeekdays(days []int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// DefaultHabitColor matches the color picker default of the grid.
const DefaultHabitColor = "#2196F3"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func normalizeColor(input string) (string, error) {
	c := strings.TrimSpace(input)
	if c == "" {
		return DefaultHabitColor, nil
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if !hexColor.MatchString(c) {
		return "", ValidationError{Field: "color", Reason: fmt.Sprintf("%q is not a #rrggbb color", input)}
	}
	return c, nil
}

func normalizeText(field, input string) (string, error) {
	t := strings.TrimSpace(input)
	if t == "" {
		return "", ValidationError{Field: field, Reason: "is required"}
	}
	return t, nil
}

func ParseStreakMode(input string) (StreakMode, error) {
	s := StreakMode(strings.TrimSpace(strings.ToLower(input)))
	switch s {
	case "":
		return StreakCounter, nil
	case StreakCounter, StreakDerived:
		return s, nil
	default:
		return "", fmt.Errorf("invalid streak mode: %q (want counter|derived)", input)
	}
}

func ParseWeeklyRepeatPolicy(input string) (WeeklyRepeatPolicy, error) {
	p := WeeklyRepeatPolicy(strings.TrimSpace(strings.ToLower(input)))
	switch p {
	case "":
		return WeeklyRepeatEveryRun, nil
	case WeeklyRepeatEveryRun, WeeklyRepeatOncePerDay:
		return p, nil
	default:
		return "", fmt.Errorf("invalid weekly repeat policy: %q (want every-run|once-per-day)", input)
	}
}
