package marquee

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestCameraDefaults(t *testing.T) {
	s := NewScene(800, 600)
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	if cam.X != 400 || cam.Y != 300 || cam.Zoom != 1 {
		t.Errorf("camera = (%v, %v) zoom %v, want centered on the first screen", cam.X, cam.Y, cam.Zoom)
	}
	want := Rect{Width: 800, Height: 600}
	if got := cam.VisibleBounds(); got != want {
		t.Errorf("VisibleBounds = %v, want %v", got, want)
	}
}

func TestVisibleBounds_Zoom2(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2
	cam.MarkDirty()
	got := cam.VisibleBounds()
	want := Rect{X: 200, Y: 150, Width: 400, Height: 300}
	if got != want {
		t.Errorf("VisibleBounds = %v, want %v", got, want)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.Y = 1000
	cam.Zoom = 1.5
	cam.MarkDirty()
	sx, sy := cam.WorldToScreen(123, 1100)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 123, 1e-9) || !approxEqual(wy, 1100, 1e-9) {
		t.Errorf("roundtrip = (%v, %v), want (123, 1100)", wx, wy)
	}
}

func TestCameraScrollBy(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollBy(250)
	if got := cam.VisibleBounds().Y; got != 250 {
		t.Errorf("top after ScrollBy = %v, want 250", got)
	}
}

func TestCameraScrollToTop(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollToTop(1200, 0.5, nil)
	if !cam.Scrolling() {
		t.Fatal("camera should be scrolling")
	}
	for i := 0; i < 40 && cam.Scrolling(); i++ {
		cam.update(1.0 / 60)
	}
	if cam.Scrolling() {
		t.Fatal("scroll did not finish")
	}
	if got := cam.VisibleBounds().Y; !approxEqual(got, 1200, 1e-3) {
		t.Errorf("top after ScrollToTop = %v, want 1200", got)
	}
}

func TestCameraScrollByCancelsAnimation(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollTo(400, 2000, 1, nil)
	cam.update(0.1)
	cam.ScrollBy(10)
	if cam.Scrolling() {
		t.Error("ScrollBy should cancel the scroll animation")
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 2000})

	cam.ScrollBy(-500)
	if got := cam.VisibleBounds().Y; got != 0 {
		t.Errorf("top above the page = %v, want 0", got)
	}
	cam.ScrollBy(5000)
	if got := cam.VisibleBounds().Y; got != 1400 {
		t.Errorf("top past the page = %v, want 1400", got)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 300})
	cam.update(0)
	if cam.Y != 150 {
		t.Errorf("Y = %v, want page centered at 150", cam.Y)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 600})
	cam.ClearBounds()
	cam.ScrollBy(100)
	if got := cam.VisibleBounds().Y; got != 100 {
		t.Errorf("top = %v, want 100 once bounds are cleared", got)
	}
}

func TestSceneViewportFollowsPrimaryCamera(t *testing.T) {
	s := NewScene(800, 600)
	if got := s.Viewport(); got != (Rect{Width: 800, Height: 600}) {
		t.Errorf("viewport without camera = %v", got)
	}
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	s.NewCamera(Rect{Width: 200, Height: 200})
	cam.ScrollBy(300)
	if got := s.Viewport().Y; got != 300 {
		t.Errorf("viewport top = %v, want 300", got)
	}
	s.RemoveCamera(cam)
	if got := s.Viewport().Height; got != 200 {
		t.Errorf("viewport height after removing primary = %v, want 200", got)
	}
}
