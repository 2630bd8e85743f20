package marquee

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled and tinted to draw rects and
// particles. Created on first Draw.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// geoM converts m to an ebiten.GeoM.
func (m affine) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the scene through every camera, then writes queued
// screenshots. Nodes are drawn depth-first in tree order; nodes whose box
// lies outside a camera's visible bounds are skipped but their children are
// still visited.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	syncWorld(s.root, identity, 1, false)

	if len(s.cameras) == 0 {
		bounds := Rect{Width: s.width, Height: s.height}
		s.drawNode(screen, s.root, identity, bounds)
	}
	for _, cam := range s.cameras {
		vp := cam.Viewport
		r := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
		dst, ok := screen.SubImage(r).(*ebiten.Image)
		if !ok {
			continue
		}
		s.drawNode(dst, s.root, cam.viewMatrix(), cam.VisibleBounds())
	}

	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.nodes = countNodes(s.root)
		s.stats.timers = s.timers.Pending()
		s.stats.subscriptions = s.sensor.Len()
		s.stats.transitions = len(s.runners)
		s.debugLog(s.stats)
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, view affine, visible Rect) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	if n.Type == NodeTypeParticleEmitter || n.WorldBounds().Intersects(visible) {
		switch n.Type {
		case NodeTypeRect:
			drawRect(dst, n, view)
		case NodeTypeText:
			drawText(dst, n, view)
		case NodeTypeParticleEmitter:
			drawParticles(dst, n, view)
		}
	}
	for _, child := range n.children {
		s.drawNode(dst, child, view, visible)
	}
}

func drawRect(dst *ebiten.Image, n *Node, view affine) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = view.mul(n.world).mul(scaleBy(n.Width, n.Height)).geoM()
	a := n.worldAlpha * n.Color.A
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	dst.DrawImage(ensureWhitePixel(), op)
}

func drawParticles(dst *ebiten.Image, n *Node, view affine) {
	e := n.Emitter
	if e == nil || e.alive == 0 {
		return
	}
	world := view.mul(n.world)
	c := e.config.Color
	op := &ebiten.DrawImageOptions{}
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		x, y := e.position(p)
		box := affine{p.size, 0, 0, p.size, x - p.size/2, y - p.size/2}
		op.GeoM = world.mul(box).geoM()
		op.ColorScale.Reset()
		a := n.worldAlpha * p.alpha * c.A
		op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
		dst.DrawImage(ensureWhitePixel(), op)
	}
}
