package marquee

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the reader's window onto the page. X and Y are the page point
// shown at the viewport's center; scrolling moves Y. VisibleBounds is the
// viewport every Sensor tests regions against.
type Camera struct {
	X, Y float64
	// Zoom scales page units to screen pixels (1 = no zoom).
	Zoom float64
	// Viewport is the screen rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled keeps the visible area inside Bounds, so the reader
	// cannot scroll past the top or bottom of the page.
	BoundsEnabled bool
	Bounds        Rect

	view, inv affine
	stale     bool

	// glide drives an animated ScrollTo from 0 to 1.
	glide        *gween.Tween
	fromX, fromY float64
	toX, toY     float64
}

func newCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.Width / 2,
		Y:        viewport.Height / 2,
		Zoom:     1,
		Viewport: viewport,
		stale:    true,
	}
}

// ScrollTo glides the camera center to (x, y) over duration seconds. A nil
// easing uses ease-out cubic.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	c.fromX, c.fromY = c.X, c.Y
	c.toX, c.toY = x, y
	c.glide = gween.New(0, 1, duration, easeFn)
}

// ScrollToTop glides until page y sits at the top edge of the viewport.
func (c *Camera) ScrollToTop(y float64, duration float32, easeFn ease.TweenFunc) {
	c.ScrollTo(c.X, y+c.halfHeight(), duration, easeFn)
}

// ScrollBy jumps dy page units down (up when negative). Wheel and drag input
// land here; any glide in progress is dropped.
func (c *Camera) ScrollBy(dy float64) {
	c.glide = nil
	c.Y += dy
	c.clamp()
	c.stale = true
}

// Scrolling reports whether a ScrollTo glide is still running.
func (c *Camera) Scrolling() bool {
	return c.glide != nil
}

// SetBounds keeps the visible area inside bounds from now on.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds lets the camera move freely.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances the glide by dt seconds and reapplies the bounds.
func (c *Camera) update(dt float32) {
	x, y := c.X, c.Y
	if c.glide != nil {
		p, done := c.glide.Update(dt)
		t := float64(p)
		c.X = c.fromX + (c.toX-c.fromX)*t
		c.Y = c.fromY + (c.toY-c.fromY)*t
		if done {
			c.X, c.Y = c.toX, c.toY
			c.glide = nil
		}
	}
	c.clamp()
	if c.X != x || c.Y != y {
		c.stale = true
	}
}

func (c *Camera) halfWidth() float64  { return c.Viewport.Width / (2 * c.Zoom) }
func (c *Camera) halfHeight() float64 { return c.Viewport.Height / (2 * c.Zoom) }

// clamp pulls the center back so the visible area stays within Bounds. On
// an axis where the page is smaller than the viewport it is centered.
func (c *Camera) clamp() {
	if !c.BoundsEnabled {
		return
	}
	c.X = clampAxis(c.X, c.Bounds.X, c.Bounds.Width, c.halfWidth())
	c.Y = clampAxis(c.Y, c.Bounds.Y, c.Bounds.Height, c.halfHeight())
}

func clampAxis(v, start, length, half float64) float64 {
	lo, hi := start+half, start+length-half
	if lo > hi {
		return start + length/2
	}
	return math.Max(lo, math.Min(v, hi))
}

// viewMatrix maps page coordinates to screen pixels:
// Translate(viewport center) * Scale(Zoom) * Translate(-X, -Y).
func (c *Camera) viewMatrix() affine {
	if c.stale {
		cx := c.Viewport.X + c.Viewport.Width/2
		cy := c.Viewport.Y + c.Viewport.Height/2
		c.view = translate(cx, cy).mul(scaleBy(c.Zoom, c.Zoom)).mul(translate(-c.X, -c.Y))
		c.inv = c.view.inverse()
		c.stale = false
	}
	return c.view
}

// WorldToScreen converts a page point to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.viewMatrix().apply(wx, wy)
}

// ScreenToWorld converts screen pixels to a page point.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.viewMatrix()
	return c.inv.apply(sx, sy)
}

// VisibleBounds returns the part of the page the viewport shows.
func (c *Camera) VisibleBounds() Rect {
	c.viewMatrix()
	return c.inv.mul(translate(c.Viewport.X, c.Viewport.Y)).bounds(c.Viewport.Width, c.Viewport.Height)
}

// MarkDirty forces the view matrix to be rebuilt, after X, Y or Zoom were
// assigned directly.
func (c *Camera) MarkDirty() {
	c.stale = true
}
