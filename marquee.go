package marquee

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite leaves whatever it tints unchanged.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA premultiplies c for ebiten fills. Components outside [0, 1] are
// clamped.
func (c Color) toRGBA() color.RGBA {
	byteOf := func(v float64) uint8 { return uint8(math.Max(0, math.Min(v, 1)) * 255) }
	return color.RGBA{R: byteOf(c.R * c.A), G: byteOf(c.G * c.A), B: byteOf(c.B * c.A), A: byteOf(c.A)}
}

// Rect is an axis-aligned box in page coordinates: Y grows down the page.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X of the box's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y of the box's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Intersects reports whether r and o overlap. Boxes that only touch along
// an edge count, so a section whose top sits exactly on the viewport's
// bottom edge is visible.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// Area returns Width*Height, or 0 when either side is not positive. Zero-area
// regions are never reported visible.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// ExpandBottom moves the bottom edge down by d, or up when d is negative,
// never past the top edge.
func (r Rect) ExpandBottom(d float64) Rect {
	r.Height = math.Max(0, r.Height+d)
	return r
}

// Range is an inclusive [Min, Max] interval sampled by particle emitters.
type Range struct {
	Min, Max float64
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer       NodeType = iota // group node with no visual output
	NodeTypeRect                            // solid color Width x Height box
	NodeTypeText                            // renders a TextBlock with a TTF face
	NodeTypeParticleEmitter                 // CPU-simulated decorative particles
)

// EventType identifies a kind of orchestration event forwarded to an EventStore.
type EventType uint8

const (
	EventRegionVisible EventType = iota // a one-shot region latched visible
	EventRegionEnter                    // a continuous region entered the viewport
	EventRegionLeave                    // a continuous region left the viewport
	EventStaggerStart                   // a staggered item received its start signal
	EventCounterTick                    // a counter emitted a value
	EventCounterSettled                 // a counter reached its target
)

// String returns the event name used in logs.
func (e EventType) String() string {
	switch e {
	case EventRegionVisible:
		return "region-visible"
	case EventRegionEnter:
		return "region-enter"
	case EventRegionLeave:
		return "region-leave"
	case EventStaggerStart:
		return "stagger-start"
	case EventCounterTick:
		return "counter-tick"
	case EventCounterSettled:
		return "counter-settled"
	default:
		return "unknown"
	}
}

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)
