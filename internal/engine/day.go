package engine

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk form of every date field and todo store key.
const DateLayout = "2006-01-02"

// Day is a civil calendar date. It is held as midnight UTC so that day
// arithmetic never crosses a DST edge.
type Day struct {
	t time.Time
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Day{t: t}, nil
}

func (d Day) String() string        { return d.t.Format(DateLayout) }
func (d Day) IsZero() bool          { return d.t.IsZero() }
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) Quarter() int          { return QuarterOf(d.t.Month()) }
func (d Day) AddDays(n int) Day     { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) Equal(o Day) bool      { return d.t.Equal(o.t) }
func (d Day) Before(o Day) bool     { return d.t.Before(o.t) }

// DaysSince returns the whole number of days from o to d, floored.
func (d Day) DaysSince(o Day) int {
	diff := d.t.Sub(o.t)
	days := int(diff / (24 * time.Hour))
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// QuarterOf maps a month to its quarter, 1..4.
func QuarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// QuarterMonths returns the three months of quarter q.
func QuarterMonths(q int) [3]time.Month {
	start := time.Month((q-1)*3 + 1)
	return [3]time.Month{start, start + 1, start + 2}
}

// DaysIn returns the number of days in month m of year.
func DaysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
