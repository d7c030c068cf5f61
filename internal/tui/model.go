package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

type pane int

const (
	paneTodos pane = iota
	paneWeekly
	paneHabits
	paneGoals
	paneJournal
	paneCount
)

var paneTitles = [paneCount]string{
	paneTodos:   ui.IconTodo + " Today",
	paneWeekly:  ui.IconWeekly + " This week",
	paneHabits:  ui.IconHabit + " Habits",
	paneGoals:   ui.IconGoal + " Goals",
	paneJournal: ui.IconJournal + " Journal",
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirm
	modeGrid
)

// boardState is a copy of what the board shows. Commands build it on the
// goroutine that ran the service call, so View never reads the service.
type boardState struct {
	year    int
	quarter int
	today   engine.Day
	dark    bool

	todos  []engine.Todo
	weekly []engine.WeeklyTodo
	habits []engine.Habit
	goals  []engine.Goal
	grid   engine.Grid

	journal      engine.Journal
	hasJournal   bool
	journalIndex int
	journalTotal int
	hasPrev      bool
	hasNext      bool
}

func snapshot(svc *engine.Service) boardState {
	j, ok := svc.CurrentJournal()
	idx, total := svc.JournalPosition()
	return boardState{
		year:         svc.Year(),
		quarter:      svc.Quarter(),
		today:        svc.Today(),
		dark:         svc.DarkMode(),
		todos:        svc.TodayTodos(),
		weekly:       svc.WeeklyTodosByDue(),
		habits:       svc.Habits(),
		goals:        svc.Goals(),
		grid:         svc.Grid(),
		journal:      j,
		hasJournal:   ok,
		journalIndex: idx,
		journalTotal: total,
		hasPrev:      svc.HasPrevJournal(),
		hasNext:      svc.HasNextJournal(),
	}
}

type stateMsg struct {
	state boardState
	log   string
	err   error
}

type pendingDelete struct {
	prompt string
	run    func(ctx context.Context, yes engine.ConfirmFunc) (bool, error)
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state  boardState
	loaded bool
	pane   pane
	cursor [paneCount]int
	mode   mode
	input  textinput.Model

	pending *pendingDelete
	busy    bool
	lastLog string
}

// newBoardModel wraps a service that has already been loaded; rep is the
// result of that load.
func newBoardModel(ctx context.Context, svc *engine.Service, rep engine.RunReport) boardModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		input:   ti,
		busy:    true,
		lastLog: loadLog(rep),
	}
}

// Init only snapshots the service. Loading again here would rerun the
// recurrence passes on the same day.
func (m boardModel) Init() tea.Cmd {
	svc, log := m.svc, m.lastLog
	return func() tea.Msg {
		return stateMsg{state: snapshot(svc), log: log}
	}
}

func loadLog(rep engine.RunReport) string {
	if !rep.Changed() {
		return "Loaded."
	}
	return fmt.Sprintf("Loaded: %d due, %d repeated, %d weekly repeated.",
		rep.Materialized+rep.LateMaterialized, rep.TodoClones, rep.WeeklyClones)
}

// opCmd runs op against the service off the update loop and reports the
// resulting state.
func (m boardModel) opCmd(op func(ctx context.Context) (string, error)) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		log, err := op(ctx)
		return stateMsg{state: snapshot(svc), log: log, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-10)
		return m, nil
	case stateMsg:
		m.busy = false
		m.state = msg.state
		m.loaded = true
		ui.SetDark(m.state.dark)
		m.clampCursors()
		switch {
		case msg.err != nil:
			m.lastLog = describeErr(msg.err)
		case msg.log != "":
			m.lastLog = msg.log
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirm:
			return m.updateConfirm(msg.String())
		case modeGrid:
			switch msg.String() {
			case "q", "esc", "g":
				m.mode = modeList
			}
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		return m.updateList(msg.String())
	}
	return m, nil
}

func describeErr(err error) string {
	var ve engine.ValidationError
	var be engine.BoundsError
	switch {
	case errors.As(err, &ve):
		return ui.Warn.Render(ve.Error())
	case errors.As(err, &be):
		return ui.Warn.Render(be.Error())
	default:
		return ui.Bad.Render(ui.IconError + " " + err.Error())
	}
}

// run marks the board busy until op's stateMsg arrives.
func (m boardModel) run(log string, op func(ctx context.Context) (string, error)) (boardModel, tea.Cmd) {
	m.busy = true
	m.lastLog = log
	return m, m.opCmd(op)
}

func (m boardModel) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.pane = (m.pane + 1) % paneCount
	case "shift+tab":
		m.pane = (m.pane + paneCount - 1) % paneCount
	case "up", "k":
		if m.cursor[m.pane] > 0 {
			m.cursor[m.pane]--
		}
	case "down", "j":
		if m.cursor[m.pane] < m.itemCount(m.pane)-1 {
			m.cursor[m.pane]++
		}
	case "g":
		m.mode = modeGrid
	case "r":
		return m.run("Reloading…", func(ctx context.Context) (string, error) {
			rep, err := m.svc.Load(ctx)
			return loadLog(rep), err
		})
	case "t":
		return m.run("", func(ctx context.Context) (string, error) {
			on, err := m.svc.ToggleDarkMode(ctx)
			if on {
				return "Dark mode on.", err
			}
			return "Dark mode off.", err
		})
	case "[":
		return m.navigate(m.svc.PrevQuarter)
	case "]":
		return m.navigate(m.svc.NextQuarter)
	case "{":
		return m.navigate(m.svc.PrevYear)
	case "}":
		return m.navigate(m.svc.NextYear)
	case "left", "h":
		if m.pane == paneJournal {
			return m.run("", func(context.Context) (string, error) {
				m.svc.PrevJournal()
				return "", nil
			})
		}
	case "right", "l":
		if m.pane == paneJournal {
			return m.run("", func(context.Context) (string, error) {
				m.svc.NextJournal()
				return "", nil
			})
		}
	case " ", "x":
		return m.toggleSelected()
	case "a":
		return m.startAdd()
	case "d":
		return m.startDelete()
	}
	return m, nil
}

func (m boardModel) navigate(move func(context.Context) (engine.RunReport, error)) (boardModel, tea.Cmd) {
	return m.run("Loading…", func(ctx context.Context) (string, error) {
		rep, err := move(ctx)
		if err != nil {
			return "", err
		}
		return loadLog(rep), nil
	})
}

func (m boardModel) itemCount(p pane) int {
	switch p {
	case paneTodos:
		return len(m.state.todos)
	case paneWeekly:
		return len(m.state.weekly)
	case paneHabits:
		return len(m.state.habits)
	case paneGoals:
		return len(m.state.goals)
	default:
		return 0
	}
}

func (m *boardModel) clampCursors() {
	for p := pane(0); p < paneCount; p++ {
		n := m.itemCount(p)
		if m.cursor[p] >= n {
			m.cursor[p] = n - 1
		}
		if m.cursor[p] < 0 {
			m.cursor[p] = 0
		}
	}
}

// todayCell returns the grid coordinates of today when today lies in the
// selected quarter.
func (m boardModel) todayCell() (month, day int, ok bool) {
	t := m.state.today
	if t.Year() != m.state.year || t.Quarter() != m.state.quarter {
		return 0, 0, false
	}
	return int(t.Month()) - (m.state.quarter-1)*3, t.DayOfMonth(), true
}

func (m boardModel) toggleSelected() (tea.Model, tea.Cmd) {
	i := m.cursor[m.pane]
	if i >= m.itemCount(m.pane) {
		return m, nil
	}
	switch m.pane {
	case paneTodos:
		id := m.state.todos[i].ID
		return m.run("", func(ctx context.Context) (string, error) {
			_, _, err := m.svc.ToggleTodo(ctx, id)
			return "", err
		})
	case paneGoals:
		id := m.state.goals[i].ID
		return m.run("", func(ctx context.Context) (string, error) {
			_, _, err := m.svc.ToggleGoal(ctx, id)
			return "", err
		})
	case paneHabits:
		month, day, ok := m.todayCell()
		if !ok {
			m.lastLog = "Today is not in this quarter; use qlos habit toggle --date."
			return m, nil
		}
		h := m.state.habits[i]
		return m.run("", func(ctx context.Context) (string, error) {
			checked, _, err := m.svc.ToggleCell(ctx, h.ID, month, day)
			if err != nil {
				return "", err
			}
			if checked {
				return fmt.Sprintf("%s checked for today.", h.Name), nil
			}
			return fmt.Sprintf("%s unchecked for today.", h.Name), nil
		})
	}
	return m, nil
}

var addPlaceholders = map[pane]string{
	paneTodos:  "Todo text, optional #daily, #weekly or #mon,wed",
	paneWeekly: "YYYY-MM-DD text, optional #weekly or #mon,wed",
	paneHabits: "Habit name, optional #rrggbb",
	paneGoals:  "Goal | system",
}

func (m boardModel) startAdd() (tea.Model, tea.Cmd) {
	placeholder, ok := addPlaceholders[m.pane]
	if !ok {
		m.lastLog = "Journals have four answers; use qlos journal add."
		return m, nil
	}
	m.mode = modeAdd
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m boardModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.lastLog = "Cancelled."
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			return m, nil
		}
		op, err := m.addOp(line)
		if err != nil {
			m.lastLog = ui.Warn.Render(err.Error())
			return m, nil
		}
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		return m.run("Saving…", op)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m boardModel) addOp(line string) (func(ctx context.Context) (string, error), error) {
	switch m.pane {
	case paneTodos:
		in, err := parseTodoLine(line)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			_, err := m.svc.AddTodo(ctx, in)
			return "Todo added.", err
		}, nil
	case paneWeekly:
		in, err := parseWeeklyLine(line)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			_, err := m.svc.AddWeeklyTodo(ctx, in)
			return "Weekly todo added.", err
		}, nil
	case paneHabits:
		in := parseHabitLine(line)
		return func(ctx context.Context) (string, error) {
			_, err := m.svc.AddHabit(ctx, in)
			return "Habit added.", err
		}, nil
	case paneGoals:
		in := parseGoalLine(line)
		return func(ctx context.Context) (string, error) {
			_, err := m.svc.AddGoal(ctx, in)
			return "Goal added.", err
		}, nil
	}
	return nil, fmt.Errorf("nothing to add here")
}

func (m boardModel) startDelete() (tea.Model, tea.Cmd) {
	var p *pendingDelete
	i := m.cursor[m.pane]
	switch {
	case m.pane == paneJournal && m.state.hasJournal:
		id := m.state.journal.ID
		p = &pendingDelete{
			prompt: fmt.Sprintf("Delete the journal from %s?", m.state.journal.Date),
			run: func(ctx context.Context, yes engine.ConfirmFunc) (bool, error) {
				return m.svc.DeleteJournal(ctx, id, yes)
			},
		}
	case i >= m.itemCount(m.pane):
		return m, nil
	case m.pane == paneTodos:
		t := m.state.todos[i]
		p = &pendingDelete{
			prompt: fmt.Sprintf("Delete todo %q?", t.Text),
			run: func(ctx context.Context, yes engine.ConfirmFunc) (bool, error) {
				return m.svc.DeleteTodo(ctx, t.ID, yes)
			},
		}
	case m.pane == paneWeekly:
		w := m.state.weekly[i]
		p = &pendingDelete{
			prompt: fmt.Sprintf("Delete weekly todo %q?", w.Text),
			run: func(ctx context.Context, yes engine.ConfirmFunc) (bool, error) {
				return m.svc.DeleteWeeklyTodo(ctx, w.ID, yes)
			},
		}
	case m.pane == paneHabits:
		h := m.state.habits[i]
		p = &pendingDelete{
			prompt: fmt.Sprintf("Delete habit %q and all of its check marks?", h.Name),
			run: func(ctx context.Context, yes engine.ConfirmFunc) (bool, error) {
				return m.svc.DeleteHabit(ctx, h.ID, yes)
			},
		}
	case m.pane == paneGoals:
		g := m.state.goals[i]
		p = &pendingDelete{
			prompt: fmt.Sprintf("Delete goal %q?", g.Text),
			run: func(ctx context.Context, yes engine.ConfirmFunc) (bool, error) {
				return m.svc.DeleteGoal(ctx, g.ID, yes)
			},
		}
	}
	if p == nil {
		return m, nil
	}
	m.pending = p
	m.mode = modeConfirm
	return m, nil
}

func (m boardModel) updateConfirm(key string) (tea.Model, tea.Cmd) {
	p := m.pending
	m.pending = nil
	m.mode = modeList
	if p == nil {
		return m, nil
	}
	switch key {
	case "y", "Y":
		// The prompt was the confirmation.
		yes := func(string) bool { return true }
		return m.run("Deleting…", func(ctx context.Context) (string, error) {
			ok, err := p.run(ctx, yes)
			if err != nil || !ok {
				return "Nothing deleted.", err
			}
			return "Deleted.", nil
		})
	default:
		m.lastLog = "Kept."
		return m, nil
	}
}

func (m boardModel) View() string {
	if !m.loaded {
		return m.lastLog + "\n"
	}
	if m.mode == modeGrid {
		return RenderGrid(m.state.grid) + "\n" + ui.Muted.Render("g/esc: back") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	for p := pane(0); p < paneCount; p++ {
		b.WriteString(m.renderPane(p))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	s := m.state
	title := ui.Heading(ui.IconCalendar, fmt.Sprintf("Quarterly Life OS · %d Q%d", s.year, s.quarter))
	nav := fmt.Sprintf("%s %s  %s %s",
		ui.Locked("[", s.quarter > engine.MinQuarter), ui.Locked("]", s.quarter < engine.MaxQuarter),
		ui.Locked("{", s.year > engine.MinYear), ui.Locked("}", s.year < engine.MaxYear))
	today := s.today.Weekday().String()[:3] + " " + s.today.String()
	return fmt.Sprintf("%s  %s  %s %s", title, nav, ui.Muted.Render(today), ui.ModeIcon())
}

func (m boardModel) renderPane(p pane) string {
	title := ui.PanelTitle.Render(paneTitles[p])
	if p == m.pane {
		title = ui.SelectedRow.Render(paneTitles[p])
	}
	lines := []string{title}

	row := func(i int, text string) string {
		if p == m.pane && i == m.cursor[p] {
			return ui.Key.Render("> ") + text
		}
		return "  " + text
	}

	switch p {
	case paneTodos:
		for i, t := range m.state.todos {
			text := ui.Checkbox(t.Completed) + " " + t.Text
			if t.Repeat != engine.RepeatNone {
				text += " " + ui.Muted.Render(ui.IconLoop+" "+string(t.Repeat))
			}
			lines = append(lines, row(i, text))
		}
	case paneWeekly:
		for i, w := range m.state.weekly {
			text := ui.Checkbox(w.Completed) + " " + ui.Muted.Render(w.DueDate) + " " + w.Text
			if w.Repeat != engine.RepeatNone {
				text += " " + ui.Muted.Render(ui.IconLoop+" "+string(w.Repeat))
			}
			lines = append(lines, row(i, text))
		}
	case paneHabits:
		month, day, inQuarter := m.todayCell()
		for i, h := range m.state.habits {
			glyph := " "
			if inQuarter {
				checked := m.state.grid.Months[month-1].Rows[day-1]
				for _, c := range checked {
					if c.HabitID == h.ID {
						glyph = ui.Cell(h.Color, c.Checked, false, false)
					}
				}
			}
			text := fmt.Sprintf("%s %s %s", glyph, padRight(h.Name, 16), ui.StreakBar(h.Color, engine.StreakFill(h.Streak), h.Streak, 20))
			lines = append(lines, row(i, text))
		}
	case paneGoals:
		for i, g := range m.state.goals {
			text := ui.Checkbox(g.Completed) + " " + g.Text + ui.Muted.Render(" · "+g.System)
			lines = append(lines, row(i, text))
		}
	case paneJournal:
		lines = append(lines, m.renderJournal()...)
	}
	if len(lines) == 1 && p != paneJournal {
		lines = append(lines, ui.Muted.Render("  (empty)"))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderJournal() []string {
	s := m.state
	if !s.hasJournal {
		return []string{ui.Muted.Render("  (no journals yet)")}
	}
	pos := fmt.Sprintf("  %s %d/%d %s  %s", ui.Locked("◀", s.hasPrev), s.journalIndex+1, s.journalTotal, ui.Locked("▶", s.hasNext), ui.Muted.Render(s.journal.Date))
	return []string{
		pos,
		"  " + ui.LabelValue("Worked well", s.journal.WorkedWell),
		"  " + ui.LabelValue("Didn't work", s.journal.DidntWork),
		"  " + ui.LabelValue("Needs adjustment", s.journal.NeedsAdjustment),
		"  " + ui.LabelValue("Feel", s.journal.Feel),
	}
}

func (m boardModel) renderFooter() string {
	var lines []string
	switch m.mode {
	case modeAdd:
		lines = append(lines, m.input.View())
	case modeConfirm:
		if m.pending != nil {
			lines = append(lines, ui.Warn.Render(ui.IconWarn+" "+m.pending.prompt+" (y/n)"))
		}
	}
	lines = append(lines, m.lastLog)
	lines = append(lines, ui.Muted.Render("tab pane · j/k move · space toggle · a add · d delete · [ ] quarter · { } year · h/l journal · g grid · t theme · r reload · q quit"))
	return strings.Join(lines, "\n")
}
