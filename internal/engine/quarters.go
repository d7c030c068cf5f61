package engine

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// StoredQuarter is a year/quarter that has habits or goals in the store.
type StoredQuarter struct {
	Year    int
	Quarter int
	Habits  bool
	Goals   bool
	// UpdatedAt is the last write of the quarter's habits, nil without habits.
	UpdatedAt *time.Time
}

// StoredQuarters lists every quarter with stored habits or goals, oldest
// first. Keys that do not parse as a quarter key are skipped.
func (s *Service) StoredQuarters(ctx context.Context) ([]StoredQuarter, error) {
	byPeriod := map[[2]int]*StoredQuarter{}
	get := func(year, quarter int) *StoredQuarter {
		k := [2]int{year, quarter}
		if byPeriod[k] == nil {
			byPeriod[k] = &StoredQuarter{Year: year, Quarter: quarter}
		}
		return byPeriod[k]
	}

	for _, prefix := range []string{"habits_", "goals_"} {
		keys, err := s.kv.Keys(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			var year, quarter int
			if n, err := fmt.Sscanf(key, prefix+"%d_Q%d", &year, &quarter); err != nil || n != 2 {
				continue
			}
			if CanSelectYear(year) != nil || CanSelectQuarter(quarter) != nil {
				continue
			}
			q := get(year, quarter)
			if prefix == "goals_" {
				q.Goals = true
				continue
			}
			q.Habits = true
			e, err := s.kv.Entry(ctx, key)
			if err != nil {
				return nil, err
			}
			if e != nil {
				q.UpdatedAt = e.UpdatedAt
			}
		}
	}

	out := make([]StoredQuarter, 0, len(byPeriod))
	for _, q := range byPeriod {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Quarter < out[j].Quarter
	})
	return out, nil
}
