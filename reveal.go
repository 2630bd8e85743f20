package marquee

import "fmt"

// Reveal ties a stagger group to one transition runner per item. Trigger arms
// the group once; each start signal starts the matching runner.
type Reveal struct {
	scene     *Scene
	items     []*Node
	group     StaggerGroup
	runners   []*TransitionRunner
	schedule  *Schedule
	triggered bool
	cancelled bool

	// OnItemStart, when set, runs after item i's transition starts.
	OnItemStart func(i int)
}

// PrepareReveal binds a transition from -> to to every item, using each
// descriptor's ItemDuration and Easing. Items are snapped to from right away
// so they stay hidden until triggered.
func (s *Scene) PrepareReveal(items []*Node, group StaggerGroup, from, to State) (*Reveal, error) {
	if len(items) != len(group) {
		return nil, configError("PrepareReveal", "group", len(group), fmt.Sprintf("must have one descriptor per item (%d)", len(items)))
	}
	if err := ValidateGroup(group); err != nil {
		return nil, err
	}
	r := &Reveal{
		scene:   s,
		items:   items,
		group:   group,
		runners: make([]*TransitionRunner, len(items)),
	}
	for i, n := range items {
		d := group[i]
		r.runners[i] = s.Prepare(n, Transition{From: from, To: to, Duration: d.ItemDuration, Easing: d.Easing})
	}
	return r, nil
}

// Trigger schedules the stagger relative to the current scene time. Only the
// first call has any effect.
func (r *Reveal) Trigger() {
	if r.triggered || r.cancelled {
		return
	}
	r.triggered = true
	// The group was validated in PrepareReveal.
	r.schedule, _ = ScheduleGroup(r.scene.timers, r.group, func(i int) {
		r.runners[i].Start()
		n := r.items[i]
		r.scene.emit(Event{Type: EventStaggerStart, NodeID: n.ID, Name: n.Name, Index: i})
		if r.OnItemStart != nil {
			r.OnItemStart(i)
		}
	})
}

// Triggered reports whether Trigger has run.
func (r *Reveal) Triggered() bool {
	return r.triggered
}

// Schedule returns the armed schedule, or nil before Trigger.
func (r *Reveal) Schedule() *Schedule {
	return r.schedule
}

// Runners returns the per-item transition runners in declaration order.
func (r *Reveal) Runners() []*TransitionRunner {
	return r.runners
}

// Cancel disarms pending start signals and stops every runner. Idempotent.
func (r *Reveal) Cancel() {
	if r.cancelled {
		return
	}
	r.cancelled = true
	if r.schedule != nil {
		r.schedule.Cancel()
	}
	for _, rn := range r.runners {
		rn.Stop()
	}
}
