package marquee

import (
	"fmt"
	"math"
	"time"
)

// CounterStatus is the state of a Counter.
//
//	       Start()            value == target
//	Idle ───────────► Running ───────────────► Settled
//	                     │                        ▲
//	                     └────── Stop() ──────────┘
//
// Settled is terminal.
type CounterStatus int

const (
	CounterIdle CounterStatus = iota
	CounterRunning
	CounterSettled
)

func (s CounterStatus) String() string {
	switch s {
	case CounterIdle:
		return "idle"
	case CounterRunning:
		return "running"
	case CounterSettled:
		return "settled"
	default:
		return fmt.Sprintf("CounterStatus(%d)", int(s))
	}
}

// CounterSpec declares a count-up from 0 to Target over TotalDuration,
// emitting once per TickInterval.
type CounterSpec struct {
	Target        int
	TotalDuration time.Duration
	TickInterval  time.Duration
}

// Validate returns a *ConfigError for specs that can never count correctly.
func (s CounterSpec) Validate() error {
	switch {
	case s.Target < 0:
		return configError("NewCounter", "Target", s.Target, "must not be negative")
	case s.TotalDuration <= 0:
		return configError("NewCounter", "TotalDuration", s.TotalDuration, "must be positive")
	case s.TickInterval <= 0:
		return configError("NewCounter", "TickInterval", s.TickInterval, "must be positive")
	case s.TickInterval > s.TotalDuration:
		return configError("NewCounter", "TickInterval", s.TickInterval, "must not exceed TotalDuration")
	}
	return nil
}

// Steps returns the number of ticks the ramp is divided into, at least 1.
func (s CounterSpec) Steps() int {
	return max(1, int(math.Round(float64(s.TotalDuration)/float64(s.TickInterval))))
}

// settleEpsilon absorbs the last bit of float error so the final tick lands on
// the target instead of one tick past it.
const settleEpsilon = 1e-9

// Counter ramps an integer display value from 0 to a target on a recurring
// timer. The ramp is linear: every tick adds the same increment, computed once
// when the counter starts, regardless of how late the tick actually runs.
//
// A Counter is owned by exactly one view and is mutated only from its own
// timer callback.
type Counter struct {
	spec   CounterSpec
	timers *Timers

	status    CounterStatus
	timer     TimerID
	increment float64
	steps     int
	ticks     int
	current   float64
	emitted   int

	// OnValue receives every emitted value, floored to an integer.
	OnValue func(v int)
	// OnSettled runs once when the value reaches the target. It does not run
	// when the counter is stopped early.
	OnSettled func(v int)

	// notify forwards emissions to the owning scene's event store.
	notify func(ev EventType, v int)
}

// NewCounter validates spec and returns an idle counter armed on timers.
func NewCounter(timers *Timers, spec CounterSpec) (*Counter, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Counter{spec: spec, timers: timers}, nil
}

// Spec returns the counter's declaration.
func (c *Counter) Spec() CounterSpec {
	return c.spec
}

// Status returns the current state.
func (c *Counter) Status() CounterStatus {
	return c.status
}

// Value returns the last emitted value.
func (c *Counter) Value() int {
	return c.emitted
}

// Increment returns the per-tick step. It is zero until the counter starts.
func (c *Counter) Increment() float64 {
	return c.increment
}

// Exact returns the unfloored accumulator behind the last emitted value.
func (c *Counter) Exact() float64 {
	return c.current
}

// Ticks returns how many timer ticks have run.
func (c *Counter) Ticks() int {
	return c.ticks
}

// Start moves an idle counter to running. It is a no-op in any other state.
// A zero target settles immediately with a single emission of 0 and never
// arms a timer.
func (c *Counter) Start() {
	if c.status != CounterIdle {
		return
	}
	if c.spec.Target == 0 {
		c.status = CounterSettled
		c.emit(0)
		c.settled()
		return
	}
	c.steps = c.spec.Steps()
	c.increment = float64(c.spec.Target) / float64(c.steps)
	c.status = CounterRunning
	c.timer = c.timers.SetInterval(c.spec.TickInterval, c.tick)
}

func (c *Counter) tick() {
	if c.status != CounterRunning {
		return
	}
	c.ticks++
	target := float64(c.spec.Target)
	next := float64(c.ticks) * c.increment
	// Targets past 2^53 are not exact as floats, so the last tick emits the
	// integer target rather than the floored accumulator.
	done := c.ticks >= c.steps || next >= target-settleEpsilon
	v := c.spec.Target
	if done {
		next = target
	} else {
		v = min(c.spec.Target, int(math.Floor(next)))
	}
	c.current = next
	c.emit(v)

	if c.status != CounterRunning {
		// Stopped from inside OnValue.
		return
	}
	if done {
		c.timers.Clear(c.timer)
		c.timer = 0
		c.status = CounterSettled
		c.settled()
	}
}

func (c *Counter) settled() {
	if c.notify != nil {
		c.notify(EventCounterSettled, c.spec.Target)
	}
	if c.OnSettled != nil {
		c.OnSettled(c.spec.Target)
	}
}

func (c *Counter) emit(v int) {
	c.emitted = v
	if c.notify != nil {
		c.notify(EventCounterTick, v)
	}
	if c.OnValue != nil {
		c.OnValue(v)
	}
}

// Stop tears the counter down. A running counter clears its timer and becomes
// settled without emitting anything; the last emitted value is kept. An idle
// counter becomes settled and will never start. Idempotent.
func (c *Counter) Stop() {
	if c.status == CounterSettled {
		return
	}
	if c.timer != 0 {
		c.timers.Clear(c.timer)
		c.timer = 0
	}
	c.status = CounterSettled
}

// BindTo stops the counter when node is disposed.
func (c *Counter) BindTo(node *Node) {
	node.OnDispose(c.Stop)
}

// CounterLabel renders a counter's value followed by a static suffix into a
// text node, e.g. "500M+".
type CounterLabel struct {
	Node   *Node
	Suffix string
}

// Attach makes label display every value c emits. The label shows the
// counter's current value immediately.
func (l *CounterLabel) Attach(c *Counter) {
	l.Set(c.Value())
	c.OnValue = l.Set
}

// Set writes v and the suffix to the text node.
func (l *CounterLabel) Set(v int) {
	if l.Node == nil || l.Node.IsDisposed() || l.Node.TextBlock == nil {
		return
	}
	l.Node.TextBlock.SetContent(fmt.Sprintf("%d%s", v, l.Suffix))
}
