package marquee

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// State is one end of a transition, relative to a node's resting pose.
// OffsetX/OffsetY are added to the resting position and Scale multiplies the
// resting scale.
type State struct {
	Alpha   float64
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Rest is the identity state: fully opaque, in place, unscaled.
var Rest = State{Alpha: 1, Scale: 1}

// Transition declares a before/after pair played over Duration.
type Transition struct {
	From     State
	To       State
	Duration time.Duration
	Easing   ease.TweenFunc
}

// FadeUp returns the common reveal transition: fade in while rising dy pixels
// and growing from scale.
func FadeUp(dy, scale float64, d time.Duration, easing ease.TweenFunc) Transition {
	return Transition{
		From:     State{Alpha: 0, OffsetY: dy, Scale: scale},
		To:       Rest,
		Duration: d,
		Easing:   easing,
	}
}

// TransitionRunner drives one Transition on one node. Bind snaps the node to
// the From state; Start begins tweening toward To. If the node is disposed the
// runner stops immediately and writes nothing further.
type TransitionRunner struct {
	tr     Transition
	target *Node

	restX, restY   float64
	restSX, restSY float64

	tweens  [4]*gween.Tween
	started bool

	// Done is true once every field reached its To value or the runner was stopped.
	Done bool
}

// Bind records node's current pose as its resting pose and applies From.
func (t Transition) Bind(node *Node) *TransitionRunner {
	r := &TransitionRunner{
		tr:     t,
		target: node,
		restX:  node.X,
		restY:  node.Y,
		restSX: node.ScaleX,
		restSY: node.ScaleY,
	}
	r.apply(t.From)
	return r
}

// Start begins the tween. Calling Start more than once has no effect.
func (r *TransitionRunner) Start() {
	if r.started || r.Done {
		return
	}
	r.started = true
	fn := r.tr.Easing
	if fn == nil {
		fn = ease.Linear
	}
	d := float32(r.tr.Duration.Seconds())
	f, to := r.tr.From, r.tr.To
	r.tweens[0] = gween.New(float32(f.Alpha), float32(to.Alpha), d, fn)
	r.tweens[1] = gween.New(float32(f.OffsetX), float32(to.OffsetX), d, fn)
	r.tweens[2] = gween.New(float32(f.OffsetY), float32(to.OffsetY), d, fn)
	r.tweens[3] = gween.New(float32(f.Scale), float32(to.Scale), d, fn)
}

// Started reports whether Start has been called.
func (r *TransitionRunner) Started() bool {
	return r.started
}

// Update advances the tween by dt seconds and writes the values to the node.
func (r *TransitionRunner) Update(dt float32) {
	if r.Done {
		return
	}
	// A runner on a torn-down node finishes whether or not it was started.
	if r.target == nil || r.target.IsDisposed() {
		r.Done = true
		return
	}
	if !r.started {
		return
	}

	var s State
	vals := [4]*float64{&s.Alpha, &s.OffsetX, &s.OffsetY, &s.Scale}
	allDone := true
	for i, tw := range r.tweens {
		v, finished := tw.Update(dt)
		*vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		s = r.tr.To
	}
	r.apply(s)
	r.Done = allDone
}

// Stop halts the runner where it is. Idempotent.
func (r *TransitionRunner) Stop() {
	r.Done = true
}

func (r *TransitionRunner) apply(s State) {
	n := r.target
	if n == nil || n.IsDisposed() {
		return
	}
	n.Alpha = s.Alpha
	n.X = r.restX + s.OffsetX
	n.Y = r.restY + s.OffsetY
	n.ScaleX = r.restSX * s.Scale
	n.ScaleY = r.restSY * s.Scale
	n.MarkDirty()
}
