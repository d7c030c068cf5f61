package engine

// StreakMode selects how a habit's streak follows its cells.
type StreakMode string

const (
	// StreakCounter keeps the streak as an independent counter, the way it
	// has always been stored. It can drift from the cells after data edits.
	StreakCounter StreakMode = "counter"
	// StreakDerived recounts the checked cells of the habit on every toggle.
	StreakDerived StreakMode = "derived"
)

// StreakMeterDays is the assumed length of a quarter for the streak meter.
const StreakMeterDays = 93

// StreakFill returns the streak meter fill in percent: streak/93*100, capped
// at 100. It is not floored, so a negative counter yields a negative fill.
func StreakFill(streak int) float64 {
	fill := float64(streak) / StreakMeterDays * 100
	if fill > 100 {
		return 100
	}
	return fill
}

// CountChecked returns the number of checked cells owned by habitID.
func CountChecked(cells HabitCells, habitID ID) int {
	n := 0
	for key, v := range cells {
		if v && cellBelongsTo(key, habitID) {
			n++
		}
	}
	return n
}

// ReconcileStreaks rewrites every streak from the cell map and reports how
// many habits changed.
func ReconcileStreaks(habits []Habit, cells HabitCells) int {
	changed := 0
	for i := range habits {
		n := CountChecked(cells, habits[i].ID)
		if habits[i].Streak != n {
			habits[i].Streak = n
			changed++
		}
	}
	return changed
}
