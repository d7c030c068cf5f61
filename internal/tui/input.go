package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
)

// The board's one-line add forms:
//
//	todo:    Stretch #daily      (or #weekly, #mon,wed,fri)
//	weekly:  2026-10-20 File taxes #weekly
//	habit:   Meditate #4caf50
//	goal:    Run a 10k | three runs a week

var hexTag = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// splitTag removes a trailing "#tag" token from line.
func splitTag(line string) (rest, tag string) {
	line = strings.TrimSpace(line)
	i := strings.LastIndex(line, " #")
	if i < 0 {
		if strings.HasPrefix(line, "#") && !strings.Contains(line, " ") {
			return "", line[1:]
		}
		return line, ""
	}
	tag = line[i+2:]
	if strings.Contains(tag, " ") {
		return line, ""
	}
	return strings.TrimSpace(line[:i]), tag
}

func parseRepeatTag(tag string) (engine.Repeat, []int, error) {
	if tag == "" {
		return engine.RepeatNone, nil, nil
	}
	if r, err := engine.ParseRepeat(tag); err == nil && r != engine.RepeatCustom {
		return r, nil, nil
	}
	days, err := engine.ParseWeekdays(tag)
	if err != nil {
		return "", nil, err
	}
	return engine.RepeatCustom, days, nil
}

func parseTodoLine(line string) (engine.TodoInput, error) {
	text, tag := splitTag(line)
	repeat, days, err := parseRepeatTag(tag)
	if err != nil {
		return engine.TodoInput{}, err
	}
	return engine.TodoInput{Text: text, Repeat: repeat, CustomDays: days}, nil
}

func parseWeeklyLine(line string) (engine.WeeklyTodoInput, error) {
	rest, tag := splitTag(line)
	due, text, _ := strings.Cut(rest, " ")
	if _, err := engine.ParseDay(due); err != nil {
		return engine.WeeklyTodoInput{}, fmt.Errorf("start with the due date: %w", err)
	}
	repeat, days, err := parseRepeatTag(tag)
	if err != nil {
		return engine.WeeklyTodoInput{}, err
	}
	return engine.WeeklyTodoInput{Text: text, DueDate: due, Repeat: repeat, CustomDays: days}, nil
}

func parseHabitLine(line string) engine.HabitInput {
	rest, tag := splitTag(line)
	if tag != "" && hexTag.MatchString("#"+tag) {
		return engine.HabitInput{Name: rest, Color: "#" + tag}
	}
	return engine.HabitInput{Name: strings.TrimSpace(line)}
}

func parseGoalLine(line string) engine.GoalInput {
	text, system, _ := strings.Cut(line, "|")
	return engine.GoalInput{Text: strings.TrimSpace(text), System: strings.TrimSpace(system)}
}
