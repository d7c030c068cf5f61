package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKey builds the cell map key "{month}-{day}-{habitID}". month is the
// 1-based month within the quarter.
func CellKey(month, day int, habitID ID) string {
	return fmt.Sprintf("%d-%d-%d", month, day, habitID)
}

// ParseCellKey splits a cell key into its three segments.
func ParseCellKey(key string) (month, day int, habitID ID, ok bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	m, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	h, err3 := strconv.ParseInt(parts[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return m, d, ID(h), true
}

func cellBelongsTo(key string, habitID ID) bool {
	_, _, h, ok := ParseCellKey(key)
	return ok && h == habitID
}

// ToggleCell flips one cell and adjusts the habit's streak. In counter mode a
// check adds one and an uncheck subtracts one, with no floor. In derived mode
// the streak is recounted from the cells. found is false when no habit has
// habitID; nothing changes in that case.
func ToggleCell(habits []Habit, cells HabitCells, habitID ID, month, day int, mode StreakMode) (checked, found bool) {
	idx := -1
	for i := range habits {
		if habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, false
	}

	key := CellKey(month, day, habitID)
	checked = !cells[key]
	cells[key] = checked

	h := &habits[idx]
	switch mode {
	case StreakDerived:
		h.Streak = CountChecked(cells, habitID)
	default:
		if checked {
			h.Streak++
		} else {
			h.Streak--
		}
	}
	return checked, true
}

// PurgeHabitCells removes every cell owned by habitID and returns how many
// were removed. Ownership is decided on the id segment of the key, never on
// a substring match, so deleting 7 leaves 17 and 70 alone.
func PurgeHabitCells(cells HabitCells, habitID ID) int {
	n := 0
	for key := range cells {
		if cellBelongsTo(key, habitID) {
			delete(cells, key)
			n++
		}
	}
	return n
}
