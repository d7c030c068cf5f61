package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID identifies every record. Older exports carry fractional millisecond
// timestamps, so decoding accepts any JSON number and floors it.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*id = ID(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(math.Floor(f))
	return nil
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

type Repeat string

const (
	RepeatNone   Repeat = "none"
	RepeatDaily  Repeat = "daily"
	RepeatWeekly Repeat = "weekly"
	RepeatCustom Repeat = "custom"
)

func (r Repeat) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatCustom:
		return true
	default:
		return false
	}
}

// ValidForWeekly reports whether a weekly todo may use r. Daily repetition
// only exists for daily todos.
func (r Repeat) ValidForWeekly() bool {
	return r == RepeatNone || r == RepeatWeekly || r == RepeatCustom
}

// normalized maps missing or unknown stored values to RepeatNone.
func (r Repeat) normalized() Repeat {
	if r.IsValid() {
		return r
	}
	return RepeatNone
}

type Habit struct {
	ID      ID     `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color" yaml:"color"`
	Quarter int    `json:"quarter" yaml:"quarter"`
	Year    int    `json:"year" yaml:"year"`
	Streak  int    `json:"streak" yaml:"streak"`
}

// HabitCells is the sparse check map of one quarter, keyed by CellKey.
type HabitCells map[string]bool

type Todo struct {
	ID         ID     `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	Completed  bool   `json:"completed" yaml:"completed"`
	Date       string `json:"date" yaml:"date"`
	Repeat     Repeat `json:"repeat" yaml:"repeat"`
	CustomDays []int  `json:"customDays" yaml:"customDays"`
	// Series links recurring clones to the todo they were spawned from.
	Series ID `json:"series,omitempty" yaml:"series,omitempty"`
}

type WeeklyTodo struct {
	ID         ID     `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	DueDate    string `json:"dueDate" yaml:"dueDate"`
	Completed  bool   `json:"completed" yaml:"completed"`
	Repeat     Repeat `json:"repeat" yaml:"repeat"`
	CustomDays []int  `json:"customDays" yaml:"customDays"`
	Series     ID     `json:"series,omitempty" yaml:"series,omitempty"`
}

type Goal struct {
	ID        ID     `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	System    string `json:"system" yaml:"system"`
	Completed bool   `json:"completed" yaml:"completed"`
	Quarter   int    `json:"quarter" yaml:"quarter"`
	Year      int    `json:"year" yaml:"year"`
	// Date is stamped when the goal is edited.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

type Journal struct {
	ID              ID     `json:"id" yaml:"id"`
	WorkedWell      string `json:"workedWell" yaml:"workedWell"`
	DidntWork       string `json:"didntWork" yaml:"didntWork"`
	NeedsAdjustment string `json:"needsAdjustment" yaml:"needsAdjustment"`
	Feel            string `json:"feel" yaml:"feel"`
	Date            string `json:"date" yaml:"date"`
}

func seriesOf(id, series ID) ID {
	if series != 0 {
		return series
	}
	return id
}

func normalizeTodos(in []Todo) []Todo {
	out := make([]Todo, len(in))
	for i, t := range in {
		t.Repeat = t.Repeat.normalized()
		t.CustomDays = normalizeDays(t.CustomDays)
		out[i] = t
	}
	return out
}

func normalizeWeeklyTodos(in []WeeklyTodo) []WeeklyTodo {
	out := make([]WeeklyTodo, len(in))
	for i, t := range in {
		t.Repeat = t.Repeat.normalized()
		if !t.Repeat.ValidForWeekly() {
			t.Repeat = RepeatNone
		}
		t.CustomDays = normalizeDays(t.CustomDays)
		out[i] = t
	}
	return out
}

func normalizeDays(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}

func decodeList[T any](raw string) ([]T, error) {
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
