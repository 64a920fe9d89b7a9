package todo

import (
	"sync"
	"time"
)

// IDSource hands out todo ids.
type IDSource interface {
	Next() int64
	// Observe tells the source an id is already taken.
	Observe(id int64)
}

// ClockIDs derives ids from the wall clock in milliseconds, so ids stay
// unique across restarts. Two ids requested within the same millisecond, or
// after the clock stepped back, are bumped past the last one issued.
type ClockIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

func (c *ClockIDs) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

func (c *ClockIDs) Observe(id int64) {
	c.mu.Lock()
	if id > c.last {
		c.last = id
	}
	c.mu.Unlock()
}

// SequenceIDs counts up from Start. Handy in tests.
type SequenceIDs struct {
	Start int64
	last  int64
}

func (s *SequenceIDs) Next() int64 {
	if s.last < s.Start {
		s.last = s.Start
		return s.last
	}
	s.last++
	return s.last
}

func (s *SequenceIDs) Observe(id int64) {
	if id > s.last {
		s.last = id
	}
}
