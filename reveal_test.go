package marquee

import (
	"errors"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

type recordingStore struct {
	events []Event
}

func (r *recordingStore) EmitEvent(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recordingStore) ofType(typ EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func revealItems(s *Scene, n int) []*Node {
	items := make([]*Node, n)
	for i := range items {
		items[i] = NewRect("item", 100, 100, ColorWhite)
		items[i].Y = float64(i) * 120
		s.Root().AddChild(items[i])
	}
	return items
}

func TestPrepareRevealLengthMismatch(t *testing.T) {
	s := NewScene(800, 600)
	_, err := s.PrepareReveal(revealItems(s, 3), NewStaggerGroup(2, 0, 0, ms, nil), State{}, Rest)
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Op != "PrepareReveal" {
		t.Errorf("err = %v, want PrepareReveal config error", err)
	}
}

func TestPrepareRevealInvalidGroup(t *testing.T) {
	s := NewScene(800, 600)
	_, err := s.PrepareReveal(revealItems(s, 1), NewStaggerGroup(1, -ms, 0, ms, nil), State{}, Rest)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestPrepareRevealHidesItems(t *testing.T) {
	s := NewScene(800, 600)
	items := revealItems(s, 2)
	_, err := s.PrepareReveal(items, NewStaggerGroup(2, 0, 0, ms, nil), State{Alpha: 0, OffsetY: 50, Scale: 1}, Rest)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range items {
		if n.Alpha != 0 || n.Y != float64(i)*120+50 {
			t.Errorf("item %d alpha %v y %v, want hidden and lowered", i, n.Alpha, n.Y)
		}
	}
	s.UpdateDelta(time.Second)
	if items[0].Alpha != 0 {
		t.Error("untriggered reveal started")
	}
}

func TestRevealStaggersItems(t *testing.T) {
	s := NewScene(800, 600)
	store := &recordingStore{}
	s.SetEventStore(store)
	items := revealItems(s, 3)
	r, err := s.PrepareReveal(items, NewStaggerGroup(3, 100*ms, 200*ms, 600*ms, ease.Linear), State{Alpha: 0, Scale: 1}, Rest)
	if err != nil {
		t.Fatal(err)
	}
	var order []int
	r.OnItemStart = func(i int) { order = append(order, i) }

	r.Trigger()
	r.Trigger()

	started := func() []bool {
		out := make([]bool, len(items))
		for i, rn := range r.Runners() {
			out[i] = rn.Started()
		}
		return out
	}

	s.UpdateDelta(100 * ms)
	if got := started(); !got[0] || got[1] || got[2] {
		t.Fatalf("at 100ms started = %v, want only item 0", got)
	}
	// A transition started this frame advances by this frame's dt.
	assertTween(t, "item 0 alpha", items[0].Alpha, 100.0/600)

	s.UpdateDelta(200 * ms)
	if got := started(); !got[1] || got[2] {
		t.Fatalf("at 300ms started = %v, want items 0 and 1", got)
	}
	s.UpdateDelta(200 * ms)
	if got := started(); !got[2] {
		t.Fatalf("at 500ms started = %v, want all", got)
	}
	if !r.Schedule().Done() {
		t.Error("schedule should be done once every item started")
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("OnItemStart order = %v, want [0 1 2]", order)
	}

	evs := store.ofType(EventStaggerStart)
	if len(evs) != 3 {
		t.Fatalf("stagger events = %d, want 3", len(evs))
	}
	for i, ev := range evs {
		if ev.Index != i || ev.NodeID != items[i].ID {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
	if evs[1].Time != 300*ms {
		t.Errorf("item 1 event time = %v, want 300ms", evs[1].Time)
	}

	for i := 0; i < 10; i++ {
		s.UpdateDelta(100 * ms)
	}
	for i, n := range items {
		if n.Alpha != 1 {
			t.Errorf("item %d alpha = %v, want 1", i, n.Alpha)
		}
	}
}

func TestRevealCancelBeforeStart(t *testing.T) {
	s := NewScene(800, 600)
	items := revealItems(s, 3)
	r, _ := s.PrepareReveal(items, NewStaggerGroup(3, 100*ms, 100*ms, 100*ms, nil), State{Alpha: 0, Scale: 1}, Rest)
	r.Trigger()
	s.UpdateDelta(150 * ms)
	r.Cancel()
	r.Cancel()
	for i := 0; i < 10; i++ {
		s.UpdateDelta(100 * ms)
	}
	if r.Runners()[1].Started() || r.Runners()[2].Started() {
		t.Error("cancelled items started")
	}
	if items[1].Alpha != 0 {
		t.Errorf("cancelled item alpha = %v, want 0", items[1].Alpha)
	}
	if s.Timers().Pending() != 0 {
		t.Errorf("Pending = %d after cancel", s.Timers().Pending())
	}
}

func TestRevealTriggerAfterCancel(t *testing.T) {
	s := NewScene(800, 600)
	r, _ := s.PrepareReveal(revealItems(s, 1), NewStaggerGroup(1, 0, 0, ms, nil), State{}, Rest)
	r.Cancel()
	r.Trigger()
	if r.Triggered() || r.Schedule() != nil {
		t.Error("cancelled reveal armed a schedule")
	}
}
