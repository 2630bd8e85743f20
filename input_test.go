package marquee

import "testing"

func TestWheelScroll(t *testing.T) {
	if got := wheelScroll(1, 48); got != -48 {
		t.Errorf("wheel up = %v, want -48", got)
	}
	if got := wheelScroll(-0.5, 48); got != 24 {
		t.Errorf("wheel down half notch = %v, want 24", got)
	}
	if got := wheelScroll(0, 48); got != 0 {
		t.Errorf("no wheel = %v, want 0", got)
	}
}

func TestDragDeadZone(t *testing.T) {
	var d dragState
	if dy := d.update(100, true); dy != 0 {
		t.Fatalf("press = %v, want 0", dy)
	}
	if dy := d.update(98, true); dy != 0 {
		t.Errorf("move inside dead zone = %v, want 0", dy)
	}
	if d.dragging {
		t.Error("should not be dragging inside the dead zone")
	}
	if dy := d.update(90, true); dy != 10 {
		t.Errorf("first drag delta = %v, want 10", dy)
	}
	if dy := d.update(80, true); dy != 10 {
		t.Errorf("second drag delta = %v, want 10", dy)
	}
}

func TestDragRelease(t *testing.T) {
	var d dragState
	d.update(100, true)
	d.update(50, true)
	if dy := d.update(40, false); dy != 10 {
		t.Errorf("release = %v, want 10", dy)
	}
	if d.pressed || d.dragging {
		t.Error("release should reset the drag")
	}
	// A new press starts over from its own origin.
	if dy := d.update(10, true); dy != 0 {
		t.Errorf("new press = %v, want 0", dy)
	}
}

func TestReleaseInsideDeadZone(t *testing.T) {
	var d dragState
	d.update(100, true)
	if dy := d.update(102, false); dy != 0 {
		t.Errorf("click release = %v, want 0", dy)
	}
}
