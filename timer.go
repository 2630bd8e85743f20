package marquee

import (
	"cmp"
	"slices"
	"time"
)

// TimerID identifies a timer armed on a Timers queue. The zero value is never
// issued, so it can be used as "no timer".
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Duration
	interval time.Duration // 0 for one-shot timers
	seq      uint64
	fn       func()
	cleared  bool
}

// Timers is a cooperative timer queue driven by virtual time. The scene
// advances it once per frame; every callback runs on that single update pass,
// so no locking is needed. Time does not move unless Advance is called.
type Timers struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	active map[TimerID]*timer
	due    []*timer

	advancing bool
}

// NewTimers creates an empty queue at virtual time zero.
func NewTimers() *Timers {
	return &Timers{active: make(map[TimerID]*timer)}
}

// Now returns the queue's current virtual time.
func (q *Timers) Now() time.Duration {
	return q.now
}

// Pending returns the number of armed timers.
func (q *Timers) Pending() int {
	return len(q.active)
}

// Active reports whether id is still armed.
func (q *Timers) Active(id TimerID) bool {
	_, ok := q.active[id]
	return ok
}

// SetTimeout arms fn to run once, delay after the current time. A non-positive
// delay fires on the next Advance.
func (q *Timers) SetTimeout(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return q.arm(delay, 0, fn)
}

// SetInterval arms fn to run every interval until cleared. Panics if interval
// is not positive; callers validate durations before arming.
func (q *Timers) SetInterval(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		panic("marquee: SetInterval requires a positive interval")
	}
	return q.arm(interval, interval, fn)
}

func (q *Timers) arm(delay, interval time.Duration, fn func()) TimerID {
	q.nextID++
	q.seq++
	t := &timer{
		id:       q.nextID,
		deadline: q.now + delay,
		interval: interval,
		seq:      q.seq,
		fn:       fn,
	}
	q.active[t.id] = t
	return t.id
}

// Clear disarms a timer. Clearing an unknown, fired or already cleared id is a
// no-op. A timer cleared while a pass is in progress will not be dispatched by
// that pass, even if it was already due.
func (q *Timers) Clear(id TimerID) {
	t, ok := q.active[id]
	if !ok {
		return
	}
	t.cleared = true
	t.fn = nil
	delete(q.active, id)
}

// Advance moves virtual time forward by dt and dispatches every timer that is
// due, ordered by deadline and then by arm order. A recurring timer fires at
// most once per Advance; late ticks are not caught up.
//
// Advance must not be called from a timer callback; doing so panics.
func (q *Timers) Advance(dt time.Duration) {
	if q.advancing {
		panic("marquee: Advance called from a timer callback")
	}
	q.advancing = true
	defer func() { q.advancing = false }()

	if dt > 0 {
		q.now += dt
	}

	q.due = q.due[:0]
	for _, t := range q.active {
		if t.deadline <= q.now {
			q.due = append(q.due, t)
		}
	}
	if len(q.due) == 0 {
		return
	}
	slices.SortFunc(q.due, func(a, b *timer) int {
		if c := cmp.Compare(a.deadline, b.deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	for i, t := range q.due {
		q.due[i] = nil
		if t.cleared {
			continue
		}
		fn := t.fn
		if t.interval == 0 {
			t.cleared = true
			delete(q.active, t.id)
		}
		fn()
		if t.interval > 0 && !t.cleared {
			next := t.deadline + t.interval
			if next <= q.now {
				next = q.now + t.interval
			}
			t.deadline = next
		}
	}
	q.due = q.due[:0]
}
