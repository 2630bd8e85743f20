package marquee

import (
	"time"

	"github.com/tanema/gween/ease"
)

// AnimationDescriptor declares when and how one staggered item animates.
// Item i of a group starts at BaseDelay + i*PerItemDelay after the trigger.
type AnimationDescriptor struct {
	BaseDelay    time.Duration
	PerItemDelay time.Duration
	ItemDuration time.Duration
	Easing       ease.TweenFunc
}

// StaggerGroup is an ordered list of descriptors. Order is declaration order
// and is never changed once built.
type StaggerGroup []AnimationDescriptor

// NewStaggerGroup builds a group of n items sharing the same timing.
func NewStaggerGroup(n int, baseDelay, perItemDelay, itemDuration time.Duration, easing ease.TweenFunc) StaggerGroup {
	g := make(StaggerGroup, n)
	for i := range g {
		g[i] = AnimationDescriptor{
			BaseDelay:    baseDelay,
			PerItemDelay: perItemDelay,
			ItemDuration: itemDuration,
			Easing:       easing,
		}
	}
	return g
}

// Offset returns the start offset of the item at index i.
func (d AnimationDescriptor) Offset(i int) time.Duration {
	return d.BaseDelay + time.Duration(i)*d.PerItemDelay
}

// Offsets returns every item's start offset relative to the trigger.
func Offsets(g StaggerGroup) []time.Duration {
	out := make([]time.Duration, len(g))
	for i, d := range g {
		out[i] = d.Offset(i)
	}
	return out
}

// ValidateGroup rejects negative delays and non-positive item durations.
func ValidateGroup(g StaggerGroup) error {
	for _, d := range g {
		if d.BaseDelay < 0 {
			return configError("Schedule", "BaseDelay", d.BaseDelay, "must not be negative")
		}
		if d.PerItemDelay < 0 {
			return configError("Schedule", "PerItemDelay", d.PerItemDelay, "must not be negative")
		}
		if d.ItemDuration <= 0 {
			return configError("Schedule", "ItemDuration", d.ItemDuration, "must be positive")
		}
	}
	return nil
}

// Schedule is an armed stagger group. Each item's start signal is a timeout on
// the owning Timers queue.
type Schedule struct {
	timers    *Timers
	ids       []TimerID
	starts    []time.Duration
	started   int
	cancelled bool
}

// ScheduleGroup arms one start signal per item, relative to the current time
// of timers (the trigger's fire time). onStart receives the item index. Items
// with equal offsets start in the same pass, in declaration order.
func ScheduleGroup(timers *Timers, g StaggerGroup, onStart func(i int)) (*Schedule, error) {
	if err := ValidateGroup(g); err != nil {
		return nil, err
	}
	now := timers.Now()
	s := &Schedule{
		timers: timers,
		ids:    make([]TimerID, len(g)),
		starts: make([]time.Duration, len(g)),
	}
	for i, d := range g {
		off := d.Offset(i)
		s.starts[i] = now + off
		s.ids[i] = timers.SetTimeout(off, func() {
			s.started++
			if onStart != nil {
				onStart(i)
			}
		})
	}
	return s, nil
}

// StartTimes returns the absolute virtual start time of every item.
func (s *Schedule) StartTimes() []time.Duration {
	return s.starts
}

// Started returns how many items have received their start signal.
func (s *Schedule) Started() int {
	return s.started
}

// Done reports whether every item has started.
func (s *Schedule) Done() bool {
	return s.started == len(s.ids)
}

// Cancel disarms every item that has not started yet. Idempotent.
func (s *Schedule) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	for _, id := range s.ids {
		s.timers.Clear(id)
	}
}
