package marquee

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	keyScrollFraction   = 0.25
	pageScrollFraction  = 0.9
	jumpScrollSeconds   = 0.6
)

// dragState tracks a primary-button drag used to scroll the page.
type dragState struct {
	pressed  bool
	dragging bool
	startY   float64
	lastY    float64
}

// processInput turns wheel, keyboard and drag input into camera scrolls.
// Called from Scene.Update; UpdateDelta never reads input.
func (s *Scene) processInput() {
	cam := s.Camera()
	if cam == nil {
		return
	}
	_, wy := ebiten.Wheel()
	dy := wheelScroll(wy, s.ScrollSpeed)

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		dy += s.ScrollSpeed * keyScrollFraction
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		dy -= s.ScrollSpeed * keyScrollFraction
	}
	page := cam.Viewport.Height / cam.Zoom * pageScrollFraction
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		dy += page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		dy -= page
	}

	// Injected pointer events own the drag state while any are queued.
	if len(s.injectQueue) == 0 {
		_, my := ebiten.CursorPosition()
		dy += s.drag.update(float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)) / cam.Zoom
	}

	if dy != 0 {
		cam.ScrollBy(dy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		cam.ScrollToTop(0, jumpScrollSeconds, nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) && cam.BoundsEnabled {
		bottom := cam.Bounds.Y + cam.Bounds.Height - cam.Viewport.Height/cam.Zoom
		cam.ScrollToTop(bottom, jumpScrollSeconds, nil)
	}
}

// wheelScroll converts a wheel delta to a world scroll. Wheel up scrolls
// toward the top of the page.
func wheelScroll(wheelY, speed float64) float64 {
	if wheelY == 0 {
		return 0
	}
	return -wheelY * speed
}

// update feeds one frame of pointer state and returns the scroll delta in
// screen pixels. Dragging up scrolls down. Movement inside the dead zone is
// ignored so plain clicks never scroll; a release ends the drag at its own
// position.
func (d *dragState) update(y float64, pressed bool) float64 {
	if !pressed {
		var dy float64
		if d.dragging {
			dy = d.lastY - y
		}
		d.pressed = false
		d.dragging = false
		return dy
	}
	if !d.pressed {
		d.pressed = true
		d.startY = y
		d.lastY = y
		return 0
	}
	if !d.dragging {
		if math.Abs(y-d.startY) < defaultDragDeadZone {
			return 0
		}
		d.dragging = true
	}
	dy := d.lastY - y
	d.lastY = y
	return dy
}
