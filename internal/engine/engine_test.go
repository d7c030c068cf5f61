package engine

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 10, 15, 9, 30, 0, 0, time.Local)}
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestService(t *testing.T, clock *testClock, opts Options) (*Service, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return loadTestService(t, db, clock, opts), db
}

// loadTestService builds a fresh service over db, the way a new process would.
func loadTestService(t *testing.T, db *sql.DB, clock *testClock, opts Options) *Service {
	t.Helper()
	opts.Now = clock.Now
	svc := NewService(db, opts)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return svc
}

func TestSelectsQuarterOfToday(t *testing.T) {
	svc, _ := newTestService(t, newTestClock(), Options{})
	if svc.Year() != 2026 || svc.Quarter() != 4 {
		t.Fatalf("selected %d Q%d, want 2026 Q4", svc.Year(), svc.Quarter())
	}
	if svc.Today().String() != "2026-10-15" {
		t.Fatalf("today=%s", svc.Today())
	}
}

func TestWeeklyTodoMaterializesOnDueDay(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	w, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "File taxes", DueDate: "2026-10-16"})
	if err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	if w.Completed || len(svc.TodayTodos()) != 0 {
		t.Fatalf("weekly todo materialized before its due date")
	}

	clock.advanceDays(1)
	svc = loadTestService(t, db, clock, Options{})
	today := svc.TodayTodos()
	if len(today) != 1 || today[0].Text != "File taxes" || today[0].Repeat != RepeatNone {
		t.Fatalf("today todos=%+v", today)
	}
	if weekly := svc.WeeklyTodos(); !weekly[0].Completed {
		t.Fatalf("weekly todo not marked completed")
	}

	rep, err := loadTestService(t, db, clock, Options{}).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rep.Changed() {
		t.Fatalf("reload changed state: %+v", rep)
	}
}

func TestAddWeeklyTodoDueTodayMaterializesImmediately(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	w, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "Call mom", DueDate: "2026-10-15"})
	if err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	if !w.Completed {
		t.Fatalf("weekly todo due today not completed")
	}
	if got := svc.TodayTodos(); len(got) != 1 || got[0].Text != "Call mom" {
		t.Fatalf("today todos=%+v", got)
	}
}

func TestDayRolloverCarriesRecurringSeries(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	stretch, err := svc.AddTodo(ctx, TodoInput{Text: "Stretch", Repeat: RepeatDaily})
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Buy milk"}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, found, err := svc.ToggleTodo(ctx, stretch.ID); err != nil || !found {
		t.Fatalf("ToggleTodo: found=%v err=%v", found, err)
	}

	for day := 1; day <= 3; day++ {
		clock.advanceDays(1)
		svc = loadTestService(t, db, clock, Options{})
		today := svc.TodayTodos()
		if len(today) != 1 {
			t.Fatalf("day %d: today todos=%+v, want only Stretch", day, today)
		}
		if today[0].Text != "Stretch" || today[0].Completed || today[0].Series != stretch.ID {
			t.Fatalf("day %d: clone=%+v", day, today[0])
		}
	}
}

func TestSameDayReloadAddsNothing(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Gym", Repeat: RepeatCustom, CustomDays: []int{4}}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	clock.advanceDays(7)
	svc = loadTestService(t, db, clock, Options{})
	first := len(svc.Todos())

	svc = loadTestService(t, db, clock, Options{})
	if got := len(svc.Todos()); got != first {
		t.Fatalf("reload grew todos from %d to %d", first, got)
	}
	if got := len(svc.TodayTodos()); got != 1 {
		t.Fatalf("today todos=%d, want 1", got)
	}
}

func TestNavigationBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	if _, err := svc.SetPeriod(ctx, MaxYear, 4); err != nil {
		t.Fatalf("SetPeriod: %v", err)
	}
	var be BoundsError
	if _, err := svc.NextYear(ctx); !errors.As(err, &be) || be.What != "year" {
		t.Fatalf("NextYear err=%v, want year BoundsError", err)
	}
	if _, err := svc.NextQuarter(ctx); !errors.As(err, &be) || be.What != "quarter" {
		t.Fatalf("NextQuarter err=%v, want quarter BoundsError", err)
	}
	if svc.Year() != MaxYear || svc.Quarter() != 4 {
		t.Fatalf("selection moved to %d Q%d", svc.Year(), svc.Quarter())
	}

	if _, err := svc.SetPeriod(ctx, MinYear, 1); err != nil {
		t.Fatalf("SetPeriod: %v", err)
	}
	if _, err := svc.PrevYear(ctx); err == nil {
		t.Fatalf("PrevYear past %d succeeded", MinYear)
	}
	if _, err := svc.PrevQuarter(ctx); err == nil {
		t.Fatalf("PrevQuarter past Q1 succeeded")
	}
	if _, err := svc.NextQuarter(ctx); err != nil || svc.Quarter() != 2 {
		t.Fatalf("NextQuarter: q=%d err=%v", svc.Quarter(), err)
	}
}

func TestHabitsAreScopedToQuarter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	if _, err := svc.AddHabit(ctx, HabitInput{Name: "Meditate"}); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := svc.PrevQuarter(ctx); err != nil {
		t.Fatalf("PrevQuarter: %v", err)
	}
	if n := len(svc.Habits()); n != 0 {
		t.Fatalf("Q3 habits=%d, want 0", n)
	}
	if _, err := svc.NextQuarter(ctx); err != nil {
		t.Fatalf("NextQuarter: %v", err)
	}
	habits := svc.Habits()
	if len(habits) != 1 || habits[0].Color != DefaultHabitColor || habits[0].Quarter != 4 || habits[0].Year != 2026 {
		t.Fatalf("Q4 habits=%+v", habits)
	}
}

func TestValidationMutatesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})
	h, err := svc.AddHabit(ctx, HabitInput{Name: "Read", Color: "4caf50"})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if h.Color != "#4caf50" {
		t.Fatalf("color=%q, want #4caf50", h.Color)
	}

	cases := []struct {
		name  string
		field string
		run   func() error
	}{
		{"blank habit", "name", func() error { _, err := svc.AddHabit(ctx, HabitInput{Name: "  "}); return err }},
		{"bad color", "color", func() error { _, err := svc.AddHabit(ctx, HabitInput{Name: "x", Color: "blue"}); return err }},
		{"blank todo", "text", func() error { _, err := svc.AddTodo(ctx, TodoInput{Text: ""}); return err }},
		{"bad repeat", "repeat", func() error { _, err := svc.AddTodo(ctx, TodoInput{Text: "x", Repeat: "hourly"}); return err }},
		{"custom without days", "customDays", func() error {
			_, err := svc.AddTodo(ctx, TodoInput{Text: "x", Repeat: RepeatCustom})
			return err
		}},
		{"daily weekly todo", "repeat", func() error {
			_, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "x", DueDate: "2026-10-20", Repeat: RepeatDaily})
			return err
		}},
		{"bad due date", "dueDate", func() error {
			_, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "x", DueDate: "next week"})
			return err
		}},
		{"goal without system", "system", func() error { _, err := svc.AddGoal(ctx, GoalInput{Text: "Run 10k"}); return err }},
		{"journal without feel", "feel", func() error {
			_, err := svc.AddJournal(ctx, JournalInput{WorkedWell: "a", DidntWork: "b", NeedsAdjustment: "c"})
			return err
		}},
		{"month outside quarter", "month", func() error { _, _, err := svc.ToggleCell(ctx, h.ID, 4, 1); return err }},
		{"November 31", "day", func() error { _, _, err := svc.ToggleCell(ctx, h.ID, 2, 31); return err }},
		{"edit to blank", "name", func() error { _, err := svc.EditHabit(ctx, h.ID, HabitInput{Name: ""}); return err }},
	}
	for _, tc := range cases {
		err := tc.run()
		var ve ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("%s: err=%v, want ValidationError on %s", tc.name, err, tc.field)
		}
	}

	if len(svc.Habits()) != 1 || svc.Habits()[0].Name != "Read" {
		t.Fatalf("habits changed: %+v", svc.Habits())
	}
	if len(svc.Todos()) != 0 || len(svc.WeeklyTodos()) != 0 || len(svc.Goals()) != 0 || len(svc.Journals()) != 0 {
		t.Fatalf("state changed by rejected saves")
	}
	if len(svc.Cells()) != 0 {
		t.Fatalf("cells changed: %v", svc.Cells())
	}
}

func TestMissingEntityIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})
	const missing = ID(424242)

	checks := []struct {
		name string
		run  func() (bool, error)
	}{
		{"EditHabit", func() (bool, error) { return svc.EditHabit(ctx, missing, HabitInput{Name: "x"}) }},
		{"EditTodo", func() (bool, error) { return svc.EditTodo(ctx, missing, TodoInput{Text: "x"}) }},
		{"EditWeeklyTodo", func() (bool, error) {
			return svc.EditWeeklyTodo(ctx, missing, WeeklyTodoInput{Text: "x", DueDate: "2026-10-20"})
		}},
		{"EditGoal", func() (bool, error) { return svc.EditGoal(ctx, missing, GoalInput{Text: "x", System: "y"}) }},
		{"EditJournal", func() (bool, error) { return svc.EditJournal(ctx, missing, JournalInput{}) }},
		{"ToggleTodo", func() (bool, error) { _, found, err := svc.ToggleTodo(ctx, missing); return found, err }},
		{"ToggleGoal", func() (bool, error) { _, found, err := svc.ToggleGoal(ctx, missing); return found, err }},
		{"ToggleCell", func() (bool, error) { _, found, err := svc.ToggleCell(ctx, missing, 1, 1); return found, err }},
		{"DeleteHabit", func() (bool, error) { return svc.DeleteHabit(ctx, missing, nil) }},
		{"DeleteTodo", func() (bool, error) { return svc.DeleteTodo(ctx, missing, nil) }},
		{"DeleteWeeklyTodo", func() (bool, error) { return svc.DeleteWeeklyTodo(ctx, missing, nil) }},
		{"DeleteGoal", func() (bool, error) { return svc.DeleteGoal(ctx, missing, nil) }},
		{"DeleteJournal", func() (bool, error) { return svc.DeleteJournal(ctx, missing, nil) }},
	}
	for _, c := range checks {
		ok, err := c.run()
		if ok || err != nil {
			t.Fatalf("%s: ok=%v err=%v, want false/nil", c.name, ok, err)
		}
	}
}

func TestToggleCellPersists(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	h, err := svc.AddHabit(ctx, HabitInput{Name: "Run"})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	checked, found, err := svc.ToggleCell(ctx, h.ID, 1, 15)
	if err != nil || !found || !checked {
		t.Fatalf("ToggleCell: checked=%v found=%v err=%v", checked, found, err)
	}

	svc = loadTestService(t, db, clock, Options{})
	if got := svc.Habits()[0].Streak; got != 1 {
		t.Fatalf("streak=%d, want 1", got)
	}
	if !svc.Cells()[CellKey(1, 15, h.ID)] {
		t.Fatalf("cell not persisted")
	}
	row := svc.Grid().Months[0].Rows[14]
	if !row[0].Checked || !row[0].Today {
		t.Fatalf("grid cell=%+v", row[0])
	}
}

func TestDerivedStreakReconcilesOnLoad(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	db := newTestDB(t)
	kv := storage.NewKVRepo(db)

	if err := kv.Set(ctx, "habits_2026_Q4", `[{"id":5,"name":"Run","color":"#2196F3","quarter":4,"year":2026,"streak":12}]`); err != nil {
		t.Fatalf("seed habits: %v", err)
	}
	if err := kv.Set(ctx, "habitTracker_2026_Q4", `{"1-1-5":true,"1-2-5":true,"1-3-5":false}`); err != nil {
		t.Fatalf("seed cells: %v", err)
	}

	counter := loadTestService(t, db, clock, Options{StreakMode: StreakCounter})
	if got := counter.Habits()[0].Streak; got != 12 {
		t.Fatalf("counter streak=%d, want stored 12", got)
	}

	derived := loadTestService(t, db, clock, Options{StreakMode: StreakDerived})
	if got := derived.Habits()[0].Streak; got != 2 {
		t.Fatalf("derived streak=%d, want 2", got)
	}
	if _, _, err := derived.ToggleCell(ctx, 5, 1, 3); err != nil {
		t.Fatalf("ToggleCell: %v", err)
	}
	if got := derived.Habits()[0].Streak; got != 3 {
		t.Fatalf("derived streak after toggle=%d, want 3", got)
	}
}

func TestDeleteHabitAsksAndPurges(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	a, _ := svc.AddHabit(ctx, HabitInput{Name: "Run"})
	b, _ := svc.AddHabit(ctx, HabitInput{Name: "Read"})
	for _, id := range []ID{a.ID, b.ID} {
		if _, _, err := svc.ToggleCell(ctx, id, 1, 1); err != nil {
			t.Fatalf("ToggleCell: %v", err)
		}
	}

	var asked string
	ok, err := svc.DeleteHabit(ctx, a.ID, func(msg string) bool { asked = msg; return false })
	if ok || err != nil || len(svc.Habits()) != 2 {
		t.Fatalf("declined delete: ok=%v err=%v habits=%d", ok, err, len(svc.Habits()))
	}
	if asked == "" {
		t.Fatalf("confirm was not asked")
	}

	ok, err = svc.DeleteHabit(ctx, a.ID, func(string) bool { return true })
	if !ok || err != nil {
		t.Fatalf("DeleteHabit: ok=%v err=%v", ok, err)
	}

	svc = loadTestService(t, db, clock, Options{})
	habits := svc.Habits()
	if len(habits) != 1 || habits[0].ID != b.ID {
		t.Fatalf("habits=%+v", habits)
	}
	cells := svc.Cells()
	if len(cells) != 1 || !cells[CellKey(1, 1, b.ID)] {
		t.Fatalf("cells=%v", cells)
	}
}

func TestDeleteTodoCascadesWeeklyByText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	if _, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "Call mom", DueDate: "2026-10-15"}); err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	if _, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "Taxes", DueDate: "2026-10-20"}); err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	todo := svc.TodayTodos()[0]

	ok, err := svc.DeleteTodo(ctx, todo.ID, nil)
	if !ok || err != nil {
		t.Fatalf("DeleteTodo: ok=%v err=%v", ok, err)
	}
	if len(svc.TodayTodos()) != 0 {
		t.Fatalf("todo not removed")
	}
	weekly := svc.WeeklyTodos()
	if len(weekly) != 1 || weekly[0].Text != "Taxes" {
		t.Fatalf("weekly=%+v", weekly)
	}
}

func TestEditStampsDates(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, _ := newTestService(t, clock, Options{})

	g, _ := svc.AddGoal(ctx, GoalInput{Text: "Run 10k", System: "Three runs a week"})
	j, _ := svc.AddJournal(ctx, JournalInput{WorkedWell: "a", DidntWork: "b", NeedsAdjustment: "c", Feel: "d"})
	if g.Date != "" {
		t.Fatalf("new goal dated %q", g.Date)
	}

	clock.advanceDays(2)
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok, err := svc.EditGoal(ctx, g.ID, GoalInput{Text: "Run 15k", System: "Four runs"}); !ok || err != nil {
		t.Fatalf("EditGoal: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.EditJournal(ctx, j.ID, JournalInput{WorkedWell: "A", DidntWork: "B", NeedsAdjustment: "C", Feel: "D"}); !ok || err != nil {
		t.Fatalf("EditJournal: ok=%v err=%v", ok, err)
	}
	if got := svc.Goals()[0]; got.Date != "2026-10-17" || got.Text != "Run 15k" {
		t.Fatalf("goal=%+v", got)
	}
	if got := svc.Journals()[0]; got.Date != "2026-10-17" || got.Feel != "D" || got.ID != j.ID {
		t.Fatalf("journal=%+v", got)
	}

	completed, found, err := svc.ToggleGoal(ctx, g.ID)
	if !completed || !found || err != nil {
		t.Fatalf("ToggleGoal: completed=%v found=%v err=%v", completed, found, err)
	}
}

func TestWeeklyTodosByDueIsStable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	for _, in := range []WeeklyTodoInput{
		{Text: "c", DueDate: "2026-10-30"},
		{Text: "a", DueDate: "2026-10-20"},
		{Text: "b", DueDate: "2026-10-20"},
	} {
		if _, err := svc.AddWeeklyTodo(ctx, in); err != nil {
			t.Fatalf("AddWeeklyTodo: %v", err)
		}
	}
	var got []string
	for _, w := range svc.WeeklyTodosByDue() {
		got = append(got, w.Text)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("order=%v, want [a b c]", got)
	}
}

func TestDarkModePersists(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	svc, db := newTestService(t, clock, Options{})

	on, err := svc.ToggleDarkMode(ctx)
	if err != nil || !on {
		t.Fatalf("ToggleDarkMode: on=%v err=%v", on, err)
	}
	v, _, err := svc.KVRepo().Get(ctx, "darkMode")
	if err != nil || v != "true" {
		t.Fatalf("stored darkMode=%q err=%v", v, err)
	}
	if !loadTestService(t, db, clock, Options{}).DarkMode() {
		t.Fatalf("dark mode not restored")
	}
}

func TestUnreadableStoredValueLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	if err := storage.NewKVRepo(db).Set(ctx, "weekly_todos", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := loadTestService(t, db, newTestClock(), Options{})
	if n := len(svc.WeeklyTodos()); n != 0 {
		t.Fatalf("weekly todos=%d, want 0", n)
	}
}

func TestNewIDsFollowLoadedIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	big := `[{"id":9999999999999,"text":"future","date":"2026-10-15","repeat":"none","customDays":[]}]`
	if err := storage.NewKVRepo(db).Set(ctx, "todos_2026-10-15", big); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := loadTestService(t, db, newTestClock(), Options{})

	todo, err := svc.AddTodo(ctx, TodoInput{Text: "next"})
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if todo.ID != 10000000000000 {
		t.Fatalf("id=%d, want 10000000000000", todo.ID)
	}
}
