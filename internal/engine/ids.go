package engine

import "time"

// IDGenerator hands out strictly increasing ids. It starts from the wall clock
// in milliseconds so fresh ids look like the timestamps older data carries,
// but it never repeats or goes backwards, even within one millisecond.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Observe records an id that already exists so Next never returns it.
func (g *IDGenerator) Observe(id ID) {
	if int64(id) > g.last {
		g.last = int64(id)
	}
}

func (g *IDGenerator) Next() ID {
	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return ID(n)
}
