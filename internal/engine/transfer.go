package engine

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
)

// Bundle is the export document. Field names match the files older versions
// of the tracker wrote, so those files import unchanged.
type Bundle struct {
	Habits         []Habit      `json:"habits" yaml:"habits"`
	HabitData      HabitCells   `json:"habitData" yaml:"habitData"`
	Goals          []Goal       `json:"goals" yaml:"goals"`
	Todos          []Todo       `json:"todos" yaml:"todos"`
	WeeklyTodos    []WeeklyTodo `json:"weeklyTodos" yaml:"weeklyTodos"`
	Journals       []Journal    `json:"journals" yaml:"journals"`
	CurrentYear    int          `json:"currentYear" yaml:"currentYear"`
	CurrentQuarter int          `json:"currentQuarter" yaml:"currentQuarter"`
}

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

func ParseExportFormat(input string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(input))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid export format: %q (want json|yaml)", input)
	}
}

//go:embed bundle.schema.json
var bundleSchemaText string

var bundleSchema = jsonschema.MustCompileString("bundle.schema.json", bundleSchemaText)

// Snapshot returns the current state as an export bundle.
func (s *Service) Snapshot() Bundle {
	return Bundle{
		Habits:         s.Habits(),
		HabitData:      s.Cells(),
		Goals:          s.Goals(),
		Todos:          s.Todos(),
		WeeklyTodos:    s.WeeklyTodos(),
		Journals:       s.Journals(),
		CurrentYear:    s.year,
		CurrentQuarter: s.quarter,
	}
}

// ExportFileName is the suggested name for an export of the selected quarter.
func (s *Service) ExportFileName(format ExportFormat) string {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("habit_tracker_data_%d_Q%d.%s", s.year, s.quarter, ext)
}

func (s *Service) Export(w io.Writer, format ExportFormat) error {
	b := s.Snapshot()
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		return nil
	}
}

// Import replaces every collection with the contents of a JSON export. The
// document is schema-checked first; on any failure nothing is written and an
// ImportError is returned. Missing collections import as empty, a missing
// year or quarter keeps the current selection.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, ImportError{Err: err}
	}
	b, err := decodeBundle(raw)
	if err != nil {
		return nil, ImportError{Err: err}
	}

	year, quarter := s.year, s.quarter
	if b.CurrentYear != 0 {
		year = b.CurrentYear
	}
	if b.CurrentQuarter != 0 {
		quarter = b.CurrentQuarter
	}
	if b.HabitData == nil {
		b.HabitData = HabitCells{}
	}
	b.Todos = normalizeTodos(b.Todos)
	b.WeeklyTodos = normalizeWeeklyTodos(b.WeeklyTodos)

	err = s.kv.Batch(ctx, func(kv *storage.KVRepo) error {
		writes := []struct {
			key string
			v   any
		}{
			{habitsKey(year, quarter), b.Habits},
			{habitCellsKey(year, quarter), b.HabitData},
			{goalsKey(year, quarter), b.Goals},
			{todosKey(s.today), b.Todos},
			{weeklyTodosKey, b.WeeklyTodos},
			{journalsKey, b.Journals},
		}
		for _, wr := range writes {
			if err := s.putJSON(ctx, kv, wr.key, wr.v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.year, s.quarter = year, quarter
	s.logger.Info("data imported",
		"year", year,
		"quarter", quarter,
		"habits", len(b.Habits),
		"goals", len(b.Goals),
		"todos", len(b.Todos),
		"weekly_todos", len(b.WeeklyTodos),
		"journals", len(b.Journals))
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func decodeBundle(raw []byte) (Bundle, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Bundle{}, fmt.Errorf("parse: %w", err)
	}
	if err := bundleSchema.Validate(doc); err != nil {
		return Bundle{}, schemaError(err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, fmt.Errorf("decode: %w", err)
	}
	if b.Habits == nil {
		b.Habits = []Habit{}
	}
	if b.Goals == nil {
		b.Goals = []Goal{}
	}
	if b.Todos == nil {
		b.Todos = []Todo{}
	}
	if b.WeeklyTodos == nil {
		b.WeeklyTodos = []WeeklyTodo{}
	}
	if b.Journals == nil {
		b.Journals = []Journal{}
	}
	return b, nil
}

// schemaError flattens a schema validation failure into one error listing
// each leaf cause with its location.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collectSchemaCauses(ve, &msgs)
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}

func collectSchemaCauses(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaCauses(c, msgs)
	}
}
