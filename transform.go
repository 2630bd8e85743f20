package marquee

import "math"

// affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Page content only translates and scales, but the camera and text layout
// compose matrices, so the general form is kept.
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

func translate(x, y float64) affine {
	return affine{1, 0, 0, 1, x, y}
}

func scaleBy(sx, sy float64) affine {
	return affine{sx, 0, 0, sy, 0, 0}
}

// mul returns m * o: o is applied first.
func (m affine) mul(o affine) affine {
	return affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// inverse returns the inverse of m. A matrix that collapses the plane (a node
// scaled to zero) has none; identity is returned in that case.
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return identity
	}
	a, b, c, d := m[3]/det, -m[1]/det, -m[2]/det, m[0]/det
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// apply maps the point (x, y) through m.
func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// bounds returns the axis-aligned box covering the w x h rectangle at the
// local origin after it is mapped through m.
func (m affine) bounds(w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := m.apply(corner[0], corner[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// localMatrix places the node's box at (X, Y) and scales it about its origin
// point (OriginX*Width, OriginY*Height). The origin stays put while the box
// grows or shrinks around it, so a card revealed from 0.9 with OriginX and
// OriginY at 0.5 grows from its center.
func (n *Node) localMatrix() affine {
	ox, oy := n.OriginX*n.Width, n.OriginY*n.Height
	return translate(n.X+ox, n.Y+oy).mul(scaleBy(n.ScaleX, n.ScaleY)).mul(translate(-ox, -oy))
}

// syncWorld refreshes the world matrix and effective alpha of n and its
// subtree. Clean subtrees under a clean parent are skipped; force is set when
// an ancestor changed.
func syncWorld(n *Node, parent affine, alpha float64, force bool) {
	changed := force || n.transformDirty
	if changed {
		n.world = parent.mul(n.localMatrix())
		n.worldAlpha = alpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		syncWorld(child, n.world, n.worldAlpha, changed)
	}
}

// SetPosition moves the node's box to (x, y) in its parent's space.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetScale scales the node about its origin point.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetOrigin sets the point, as a fraction of the node's size, that scaling
// is anchored to. (0, 0) is the top-left corner.
func (n *Node) SetOrigin(fx, fy float64) {
	n.OriginX, n.OriginY = fx, fy
	n.transformDirty = true
}

// SetAlpha sets the node's own opacity. Effective opacity multiplies down
// the tree.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty flags the node for a world refresh on the next frame. Call it
// after assigning transform fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// LocalToWorld maps a point in the node's space to page coordinates, as of
// the last refresh.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.world.apply(lx, ly)
}

// WorldBounds returns the page-space box of the node's Width x Height area
// as of the last refresh. This is what a Sensor tests against the viewport.
func (n *Node) WorldBounds() Rect {
	return n.world.bounds(n.Width, n.Height)
}
