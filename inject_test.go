package marquee

import "testing"

func TestInjectDragSequence(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectDrag(300, 100, 5)

	if len(s.injectQueue) != 5 {
		t.Fatalf("queue length = %d, want 5", len(s.injectQueue))
	}
	if !s.injectQueue[0].pressed || s.injectQueue[0].screenY != 300 {
		t.Errorf("first event = %+v, want press at 300", s.injectQueue[0])
	}
	last := s.injectQueue[4]
	if last.pressed || last.screenY != 100 {
		t.Errorf("last event = %+v, want release at 100", last)
	}
	for i := 1; i < 4; i++ {
		want := 300 - 50*float64(i)
		if got := s.injectQueue[i].screenY; got != want {
			t.Errorf("move %d at %v, want %v", i, got, want)
		}
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectDrag(300, 100, 0)
	if len(s.injectQueue) != 2 {
		t.Errorf("queue length = %d, want press + release", len(s.injectQueue))
	}
}

func TestInjectDragScrollsCamera(t *testing.T) {
	s := NewScene(800, 600)
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	s.InjectDrag(400, 200, 6)

	for i := 0; i < 6; i++ {
		if !s.processInjectedInput() {
			t.Fatalf("event %d not consumed", i)
		}
	}
	if s.processInjectedInput() {
		t.Error("empty queue reported a consumed event")
	}
	// The first delta is measured from the press, so the dead zone loses nothing.
	if top := cam.VisibleBounds().Y; top != 200 {
		t.Errorf("viewport top = %v, want 200", top)
	}
}

func TestInjectClickDoesNotScroll(t *testing.T) {
	s := NewScene(800, 600)
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	s.InjectPress(300)
	s.InjectMove(302)
	s.InjectRelease(302)
	for s.processInjectedInput() {
	}
	if top := cam.VisibleBounds().Y; top != 0 {
		t.Errorf("viewport top = %v, want 0", top)
	}
}

func TestInjectWheel(t *testing.T) {
	s := NewScene(800, 600)
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	s.InjectWheel(-2)
	s.UpdateDelta(frame)
	if top := cam.VisibleBounds().Y; top != 2*s.ScrollSpeed {
		t.Errorf("viewport top = %v, want %v", top, 2*s.ScrollSpeed)
	}
}

func TestInjectRevealsSection(t *testing.T) {
	s := NewScene(800, 600)
	s.NewCamera(Rect{Width: 800, Height: 600})
	sec := s.NewSection("below", 900, 200)
	sec.Observe(0)

	s.UpdateDelta(frame)
	if sec.Triggered() {
		t.Fatal("section below the fold triggered early")
	}
	s.InjectDrag(500, 100, 8)
	for i := 0; i < 8; i++ {
		s.UpdateDelta(frame)
	}
	if !sec.Triggered() {
		t.Error("dragging the page 400 px should reveal a section at 900")
	}
}
