package engine

import (
	"sort"
	"time"
)

type pendingTimer struct {
	id  uint64
	due time.Duration
	fn  func()
}

// Timers runs single-shot deferred callbacks on the caller's goroutine.
// Time only moves when Advance is called, normally once per frame.
type Timers struct {
	now     time.Duration
	pending []pendingTimer
	nextID  uint64
}

func NewTimers() *Timers {
	return &Timers{}
}

// AfterFunc schedules fn to run once at least d after the current time.
func (t *Timers) AfterFunc(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.pending = append(t.pending, pendingTimer{id: t.nextID, due: t.now + d, fn: fn})
}

// Advance moves the clock forward and fires every callback that became due,
// earliest first. Callbacks scheduled while firing wait for a later Advance.
func (t *Timers) Advance(d time.Duration) {
	if d > 0 {
		t.now += d
	}
	var due []pendingTimer
	keep := t.pending[:0]
	for _, p := range t.pending {
		if p.due <= t.now {
			due = append(due, p)
		} else {
			keep = append(keep, p)
		}
	}
	t.pending = keep
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})
	for _, p := range due {
		p.fn()
	}
}

// AdvanceSeconds is Advance for frame delta times.
func (t *Timers) AdvanceSeconds(seconds float32) {
	t.Advance(time.Duration(float64(seconds) * float64(time.Second)))
}

func (t *Timers) Now() time.Duration {
	return t.now
}

func (t *Timers) Pending() int {
	return len(t.pending)
}
