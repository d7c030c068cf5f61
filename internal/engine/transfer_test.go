package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seedForExport(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, HabitInput{Name: "Run", Color: "#ff5722"})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, _, err := svc.ToggleCell(ctx, h.ID, 1, 3); err != nil {
		t.Fatalf("ToggleCell: %v", err)
	}
	if _, err := svc.AddGoal(ctx, GoalInput{Text: "Run 10k", System: "Three runs a week"}); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if _, err := svc.AddTodo(ctx, TodoInput{Text: "Buy shoes"}); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "Call mom", DueDate: "2026-10-15"}); err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	if _, err := svc.AddWeeklyTodo(ctx, WeeklyTodoInput{Text: "Review", DueDate: "2026-10-18", Repeat: RepeatWeekly}); err != nil {
		t.Fatalf("AddWeeklyTodo: %v", err)
	}
	if _, err := svc.AddJournal(ctx, JournalInput{WorkedWell: "a", DidntWork: "b", NeedsAdjustment: "c", Feel: "d"}); err != nil {
		t.Fatalf("AddJournal: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	src, _ := newTestService(t, clock, Options{})
	seedForExport(t, src)

	var buf bytes.Buffer
	if err := src.Export(&buf, FormatJSON); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"habits\": [") {
		t.Fatalf("export is not indented by two spaces:\n%s", buf.String())
	}

	dst, _ := newTestService(t, clock, Options{})
	if _, err := dst.SetPeriod(ctx, 2024, 1); err != nil {
		t.Fatalf("SetPeriod: %v", err)
	}
	if _, err := dst.Import(ctx, &buf); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(src.Snapshot(), dst.Snapshot()); diff != "" {
		t.Fatalf("round trip mismatch (-exported +imported):\n%s", diff)
	}
}

func TestExportYAML(t *testing.T) {
	svc, _ := newTestService(t, newTestClock(), Options{})
	seedForExport(t, svc)

	var buf bytes.Buffer
	if err := svc.Export(&buf, FormatYAML); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"habitData:", "weeklyTodos:", "currentYear: 2026", "currentQuarter: 4", "name: Run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml export missing %q:\n%s", want, out)
		}
	}
	if got := svc.ExportFileName(FormatJSON); got != "habit_tracker_data_2026_Q4.json" {
		t.Fatalf("ExportFileName=%q", got)
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()

	cases := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"habits": [`},
		{"habit without id", `{"habits":[{"name":"Run"}]}`},
		{"quarter out of range", `{"currentQuarter":5}`},
		{"bad repeat", `{"todos":[{"id":1,"text":"x","repeat":"hourly"}]}`},
		{"non boolean cell", `{"habitData":{"1-1-1":"yes"}}`},
		{"not an object", `[1,2,3]`},
	}
	for _, tc := range cases {
		svc, db := newTestService(t, clock, Options{})
		seedForExport(t, svc)
		before := svc.Snapshot()

		_, err := svc.Import(ctx, strings.NewReader(tc.doc))
		var ie ImportError
		if !errors.As(err, &ie) {
			t.Fatalf("%s: err=%v, want ImportError", tc.name, err)
		}
		if diff := cmp.Diff(before, svc.Snapshot()); diff != "" {
			t.Fatalf("%s: state changed (-before +after):\n%s", tc.name, diff)
		}
		if diff := cmp.Diff(before, loadTestService(t, db, clock, Options{}).Snapshot()); diff != "" {
			t.Fatalf("%s: store changed (-before +after):\n%s", tc.name, diff)
		}
	}
}

func TestImportLegacyDocument(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})

	doc := `{
	  "habits": [{"id": 1712345678901.5, "name": "Read", "color": "#4CAF50", "quarter": 2, "year": 2025, "streak": 3}],
	  "habitData": {"1-4-1712345678901": true},
	  "currentYear": 2025,
	  "currentQuarter": 2
	}`
	b, err := svc.Import(ctx, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(b.Goals) != 0 || len(b.Journals) != 0 {
		t.Fatalf("missing collections did not import as empty: %+v", b)
	}
	if svc.Year() != 2025 || svc.Quarter() != 2 {
		t.Fatalf("selected %d Q%d, want 2025 Q2", svc.Year(), svc.Quarter())
	}
	habits := svc.Habits()
	if len(habits) != 1 || habits[0].ID != 1712345678901 {
		t.Fatalf("habits=%+v", habits)
	}
	if !svc.Cells()[CellKey(1, 4, habits[0].ID)] {
		t.Fatalf("cell did not import")
	}
}

func TestImportKeepsSelectionWhenMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newTestClock(), Options{})
	if _, err := svc.SetPeriod(ctx, 2027, 3); err != nil {
		t.Fatalf("SetPeriod: %v", err)
	}
	if _, err := svc.Import(ctx, strings.NewReader(`{"goals":[{"id":3,"text":"Ship","system":"daily"}]}`)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if svc.Year() != 2027 || svc.Quarter() != 3 || len(svc.Goals()) != 1 {
		t.Fatalf("selected %d Q%d goals=%d", svc.Year(), svc.Quarter(), len(svc.Goals()))
	}
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseExportFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseExportFormat(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseExportFormat("csv"); err == nil {
		t.Fatalf("csv accepted")
	}
}
