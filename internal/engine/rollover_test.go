package engine

import (
	"context"
	"testing"
)

func TestDeletedRepeatingTodoStaysDeleted(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Stretch", Repeat: RepeatDaily}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	today := svc.TodayTodos()
	if len(today) != 1 {
		t.Fatalf("today todos=%+v, want the Stretch clone", today)
	}

	if ok, err := svc.DeleteTodo(ctx, today[0].ID, nil); !ok || err != nil {
		t.Fatalf("DeleteTodo: ok=%v err=%v", ok, err)
	}
	if n := len(svc.Todos()); n != 0 {
		t.Fatalf("todos after delete=%+v, want none", svc.Todos())
	}

	svc = loadTestService(t, db, clock, Options{})
	if n := len(svc.Todos()); n != 0 {
		t.Fatalf("same-day reload brought back %+v", svc.Todos())
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	if n := len(svc.Todos()); n != 0 {
		t.Fatalf("next day brought back %+v", svc.Todos())
	}
}

func TestEditToRepeatNoneEndsSeries(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Stretch", Repeat: RepeatDaily}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	clone := svc.TodayTodos()[0]

	if ok, err := svc.EditTodo(ctx, clone.ID, TodoInput{Text: "Stretch", Repeat: RepeatNone}); !ok || err != nil {
		t.Fatalf("EditTodo: ok=%v err=%v", ok, err)
	}
	todos := svc.Todos()
	if len(todos) != 1 || todos[0].ID != clone.ID || todos[0].Repeat != RepeatNone {
		t.Fatalf("todos after edit=%+v, want only the edited clone", todos)
	}

	svc = loadTestService(t, db, clock, Options{})
	if got := svc.TodayTodos(); len(got) != 1 || got[0].ID != clone.ID {
		t.Fatalf("same-day reload today=%+v", got)
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	if n := len(svc.Todos()); n != 0 {
		t.Fatalf("ended series repeated: %+v", svc.Todos())
	}
}

func TestEditRepeatMakesEditedTodoTheSource(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Gym", Repeat: RepeatDaily}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	clone := svc.TodayTodos()[0]

	// 2026-10-16 is a Friday; only Mondays from now on.
	if _, err := svc.EditTodo(ctx, clone.ID, TodoInput{Text: "Gym", Repeat: RepeatCustom, CustomDays: []int{1}}); err != nil {
		t.Fatalf("EditTodo: %v", err)
	}
	for day := 1; day <= 2; day++ {
		clock.advanceDays(1)
		svc = loadTestService(t, db, clock, Options{})
		if n := len(svc.TodayTodos()); n != 0 {
			t.Fatalf("weekend day %d: today=%+v, want nothing", day, svc.TodayTodos())
		}
	}
	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	today := svc.TodayTodos()
	if len(today) != 1 || today[0].Repeat != RepeatCustom || today[0].Series != clone.Series {
		t.Fatalf("monday today=%+v", today)
	}
}

func TestLatestPerSeries(t *testing.T) {
	todos := []Todo{
		{ID: 1, Text: "Read", Date: "2026-10-14", Repeat: RepeatDaily},
		{ID: 2, Text: "Read", Date: "2026-10-15", Repeat: RepeatNone, Series: 1},
		{ID: 3, Text: "Walk", Date: "2026-10-14", Repeat: RepeatDaily},
		{ID: 4, Text: "Walk", Date: "2026-10-15", Repeat: RepeatDaily, Series: 3},
		{ID: 5, Text: "Buy milk", Date: "2026-10-15", Repeat: RepeatNone},
	}
	got := latestPerSeries(todos)
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("latestPerSeries=%+v, want only todo 4", got)
	}
}

func TestFailedLoadKeepsPeriodAndState(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	if _, err := svc.AddHabit(ctx, HabitInput{Name: "Run"}); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Stretch"}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	_ = db.Close()

	if _, err := svc.SetPeriod(ctx, 2025, 1); err == nil {
		t.Fatalf("SetPeriod on a closed store succeeded")
	}
	if svc.Year() != 2026 || svc.Quarter() != 4 {
		t.Fatalf("period=%d Q%d, want 2026 Q4", svc.Year(), svc.Quarter())
	}
	if len(svc.Habits()) != 1 || len(svc.TodayTodos()) != 1 {
		t.Fatalf("state changed: habits=%+v todos=%+v", svc.Habits(), svc.TodayTodos())
	}

	clock.advanceDays(1)
	if _, err := svc.Load(ctx); err == nil {
		t.Fatalf("Load on a closed store succeeded")
	}
	if got := svc.Today().String(); got != "2026-10-15" {
		t.Fatalf("today=%s after failed load", got)
	}
}
