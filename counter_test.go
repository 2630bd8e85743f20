package marquee

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

// tickUntil advances q one tick at a time until the counter leaves running or
// limit ticks have passed.
func tickUntil(q *Timers, c *Counter, tick time.Duration, limit int) {
	for i := 0; i < limit && c.Status() == CounterRunning; i++ {
		q.Advance(tick)
	}
}

func TestCounterSpecSteps(t *testing.T) {
	tests := []struct {
		total, tick time.Duration
		want        int
	}{
		{2 * time.Second, 16 * ms, 125},
		{time.Second, 16 * ms, 63}, // 62.5 rounds half away from zero
		{100 * ms, 100 * ms, 1},
		{10 * ms, 3 * ms, 3},
	}
	for _, tt := range tests {
		got := CounterSpec{Target: 1, TotalDuration: tt.total, TickInterval: tt.tick}.Steps()
		if got != tt.want {
			t.Errorf("Steps(%v, %v) = %d, want %d", tt.total, tt.tick, got, tt.want)
		}
	}
}

func TestCounterSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  CounterSpec
		field string
	}{
		{"negative target", CounterSpec{-1, time.Second, 16 * ms}, "Target"},
		{"zero total", CounterSpec{10, 0, 16 * ms}, "TotalDuration"},
		{"negative total", CounterSpec{10, -time.Second, 16 * ms}, "TotalDuration"},
		{"zero tick", CounterSpec{10, time.Second, 0}, "TickInterval"},
		{"tick longer than total", CounterSpec{10, time.Second, 2 * time.Second}, "TickInterval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCounter(NewTimers(), tt.spec)
			if c != nil {
				t.Error("NewCounter returned a counter for an invalid spec")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if ce.Op != "NewCounter" || ce.Field != tt.field {
				t.Errorf("err = %v, want NewCounter/%s", err, tt.field)
			}
			if !errors.Is(err, ErrConfig) {
				t.Error("err does not match ErrConfig")
			}
		})
	}
}

func TestCounterReachesTargetExactly(t *testing.T) {
	q := NewTimers()
	c, err := NewCounter(q, CounterSpec{Target: 100, TotalDuration: 2 * time.Second, TickInterval: 16 * ms})
	if err != nil {
		t.Fatal(err)
	}
	if c.Status() != CounterIdle {
		t.Fatalf("Status = %v, want idle", c.Status())
	}

	var values []int
	settled := 0
	c.OnValue = func(v int) { values = append(values, v) }
	c.OnSettled = func(v int) {
		settled++
		if v != 100 {
			t.Errorf("OnSettled(%d), want 100", v)
		}
	}

	c.Start()
	if len(values) != 0 {
		t.Errorf("Start emitted %v, want nothing", values)
	}
	if got := c.Increment(); got != 0.8 {
		t.Errorf("Increment = %v, want 0.8", got)
	}

	tickUntil(q, c, 16*ms, 1000)

	if c.Status() != CounterSettled {
		t.Fatalf("Status = %v, want settled", c.Status())
	}
	if c.Ticks() != 125 {
		t.Errorf("Ticks = %d, want 125", c.Ticks())
	}
	if q.Now() != 2*time.Second {
		t.Errorf("settled at %v, want 2s", q.Now())
	}
	if got := values[len(values)-1]; got != 100 || c.Value() != 100 || c.Exact() != 100 {
		t.Errorf("final value = %d (Value %d, Exact %v), want 100", got, c.Value(), c.Exact())
	}
	if settled != 1 {
		t.Errorf("OnSettled ran %d times, want 1", settled)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d after settle, want 0", q.Pending())
	}

	// The first few ticks floor 0.8, 1.6, 2.4.
	for i, want := range []int{0, 1, 2, 3, 4} {
		if values[i] != want {
			t.Errorf("values[%d] = %d, want %d", i, values[i], want)
		}
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("values not monotonic at %d: %d then %d", i, values[i-1], values[i])
		}
	}
	for _, v := range values {
		if v > 100 {
			t.Fatalf("emitted %d past the target", v)
		}
	}

	q.Advance(time.Second)
	if len(values) != 125 {
		t.Errorf("emitted %d values, want 125", len(values))
	}
}

// runCounter starts a counter for spec and ticks it until it settles,
// returning every emitted value.
func runCounter(t *testing.T, spec CounterSpec) ([]int, *Counter, *Timers) {
	t.Helper()
	q := NewTimers()
	c, err := NewCounter(q, spec)
	if err != nil {
		t.Fatalf("NewCounter(%+v): %v", spec, err)
	}
	var values []int
	c.OnValue = func(v int) { values = append(values, v) }
	c.Start()
	tickUntil(q, c, spec.TickInterval, spec.Steps()+2)
	return values, c, q
}

func checkCounterRun(t *testing.T, spec CounterSpec, values []int, c *Counter, q *Timers) {
	t.Helper()
	if c.Status() != CounterSettled {
		t.Fatalf("%+v: Status = %v after %d ticks, want settled", spec, c.Status(), c.Ticks())
	}
	if c.Ticks() != spec.Steps() {
		t.Errorf("%+v: Ticks = %d, want %d", spec, c.Ticks(), spec.Steps())
	}
	if q.Pending() != 0 {
		t.Errorf("%+v: Pending = %d after settle, want 0", spec, q.Pending())
	}
	if len(values) == 0 {
		t.Fatalf("%+v: nothing emitted", spec)
	}
	if got := values[len(values)-1]; got != spec.Target || c.Value() != spec.Target {
		t.Errorf("%+v: final value %d (Value %d), want %d", spec, got, c.Value(), spec.Target)
	}
	for i, v := range values {
		if v < 0 || v > spec.Target {
			t.Fatalf("%+v: values[%d] = %d outside [0, %d]", spec, i, v, spec.Target)
		}
		if i > 0 && v < values[i-1] {
			t.Fatalf("%+v: values[%d] = %d after %d", spec, i, v, values[i-1])
		}
	}
}

func TestCounterLargeTargets(t *testing.T) {
	tests := []struct {
		name   string
		target int
	}{
		{"2^53+1", 1<<53 + 1},
		{"2^62", 1 << 62},
		{"max int64", math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := CounterSpec{Target: tt.target, TotalDuration: 2 * time.Second, TickInterval: 16 * ms}
			values, c, q := runCounter(t, spec)
			checkCounterRun(t, spec, values, c, q)
		})
	}
}

func TestCounterSweep(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	large := []int{1<<53 + 1, 1<<53 - 1, 1 << 62, math.MaxInt64 - 1, math.MaxInt64}
	for i := 0; i < 400; i++ {
		var target int
		switch i % 4 {
		case 0:
			target = 1 + rng.IntN(10)
		case 1, 2:
			target = 1 + rng.IntN(1_000_000)
		default:
			target = large[rng.IntN(len(large))]
		}
		total := time.Duration(1+rng.IntN(3000)) * ms
		tick := time.Duration(1+rng.Int64N(int64(total/ms))) * ms
		if rng.IntN(2) == 0 {
			// Sub-millisecond ticks that do not divide the total.
			tick += time.Duration(rng.IntN(1000)) * time.Microsecond
			tick = min(tick, total)
		}
		spec := CounterSpec{Target: target, TotalDuration: total, TickInterval: tick}
		values, c, q := runCounter(t, spec)
		checkCounterRun(t, spec, values, c, q)
	}
}

func TestCounterSmallTargetFloors(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 3, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	var values []int
	c.OnValue = func(v int) { values = append(values, v) }
	c.Start()
	tickUntil(q, c, 10*ms, 100)

	want := []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values = %v, want %v", values, want)
			break
		}
	}
}

func TestCounterZeroTargetSettlesImmediately(t *testing.T) {
	q := NewTimers()
	c, err := NewCounter(q, CounterSpec{Target: 0, TotalDuration: time.Second, TickInterval: 16 * ms})
	if err != nil {
		t.Fatal(err)
	}
	var values []int
	settled := 0
	c.OnValue = func(v int) { values = append(values, v) }
	c.OnSettled = func(int) { settled++ }

	c.Start()
	if len(values) != 1 || values[0] != 0 {
		t.Errorf("values = %v, want [0]", values)
	}
	if c.Status() != CounterSettled || settled != 1 {
		t.Errorf("Status = %v, settled = %d", c.Status(), settled)
	}
	if q.Pending() != 0 {
		t.Errorf("zero target armed %d timers", q.Pending())
	}
	q.Advance(time.Second)
	if len(values) != 1 {
		t.Errorf("values = %v after advance, want [0]", values)
	}
}

func TestCounterStopHaltsEmissions(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 100, TotalDuration: 2 * time.Second, TickInterval: 16 * ms})
	var values []int
	settled := 0
	c.OnValue = func(v int) { values = append(values, v) }
	c.OnSettled = func(int) { settled++ }
	c.Start()

	for q.Now() < 500*ms {
		q.Advance(16 * ms)
	}
	c.Stop()
	n := len(values)
	last := c.Value()
	if last >= 100 || last == 0 {
		t.Fatalf("value at 500ms = %d, want partial", last)
	}

	for i := 0; i < 200; i++ {
		q.Advance(16 * ms)
	}
	if len(values) != n {
		t.Errorf("emitted %d values after Stop", len(values)-n)
	}
	if c.Value() != last {
		t.Errorf("Value changed after Stop: %d -> %d", last, c.Value())
	}
	if settled != 0 {
		t.Error("OnSettled ran after Stop")
	}
	if c.Status() != CounterSettled {
		t.Errorf("Status = %v, want settled", c.Status())
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d after Stop", q.Pending())
	}
	c.Stop()
}

func TestCounterStopBeforeStart(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 10, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	c.Stop()
	c.Start()
	if q.Pending() != 0 || c.Status() != CounterSettled {
		t.Errorf("stopped counter started: Pending = %d, Status = %v", q.Pending(), c.Status())
	}
}

func TestCounterStartIsIdempotent(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 10, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	c.Start()
	c.Start()
	if q.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", q.Pending())
	}
}

func TestCounterStopFromOnValue(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 10, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	calls := 0
	settled := 0
	c.OnValue = func(v int) {
		calls++
		if v >= 5 {
			c.Stop()
		}
	}
	c.OnSettled = func(int) { settled++ }
	c.Start()
	for i := 0; i < 20; i++ {
		q.Advance(10 * ms)
	}
	if calls != 5 || c.Value() != 5 || settled != 0 {
		t.Errorf("calls = %d, Value = %d, settled = %d; want 5, 5, 0", calls, c.Value(), settled)
	}
}

func TestCounterBindToStopsOnDispose(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 10, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	n := NewContainer("owner")
	c.BindTo(n)
	c.Start()
	q.Advance(10 * ms)
	n.Dispose()
	q.Advance(10 * ms)
	if c.Ticks() != 1 || c.Status() != CounterSettled {
		t.Errorf("Ticks = %d, Status = %v; want 1, settled", c.Ticks(), c.Status())
	}
}

func TestCounterStatusString(t *testing.T) {
	for s, want := range map[CounterStatus]string{
		CounterIdle:      "idle",
		CounterRunning:   "running",
		CounterSettled:   "settled",
		CounterStatus(9): "CounterStatus(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

type fixedFont struct{ w, h float64 }

func (f fixedFont) MeasureString(s string) (float64, float64) {
	return float64(len([]rune(s))) * f.w, f.h
}
func (f fixedFont) LineHeight() float64 { return f.h }

func TestCounterLabel(t *testing.T) {
	q := NewTimers()
	c, _ := NewCounter(q, CounterSpec{Target: 500, TotalDuration: 100 * ms, TickInterval: 10 * ms})
	label := NewText("value", "", fixedFont{8, 16})
	(&CounterLabel{Node: label, Suffix: "M+"}).Attach(c)
	if got := label.TextBlock.Content; got != "0M+" {
		t.Errorf("initial label = %q, want %q", got, "0M+")
	}
	c.Start()
	q.Advance(10 * ms)
	if got := label.TextBlock.Content; got != "50M+" {
		t.Errorf("label after one tick = %q, want %q", got, "50M+")
	}
	tickUntil(q, c, 10*ms, 100)
	if got := label.TextBlock.Content; got != "500M+" {
		t.Errorf("final label = %q, want %q", got, "500M+")
	}
}

func TestCounterLabelIgnoresDisposedNode(t *testing.T) {
	label := NewText("value", "7", fixedFont{8, 16})
	l := &CounterLabel{Node: label, Suffix: "+"}
	label.Dispose()
	l.Set(9) // must not panic
	if label.TextBlock != nil {
		t.Error("disposed text node kept its text block")
	}
}
