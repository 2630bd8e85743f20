package marquee

// Subscription is the handle returned by Sensor.Observe and
// Sensor.ObserveEach. Cancel it to stop all further callbacks.
type Subscription struct {
	sensor *Sensor
	region *Node
	margin float64
	once   bool

	onEnter func()
	onLeave func()

	inside    bool
	triggered bool
	cancelled bool

	// pending is set during the compute phase of a poll and consumed by the
	// dispatch phase; 1 = enter, -1 = leave.
	pending int8
}

// Region returns the observed node.
func (sub *Subscription) Region() *Node {
	return sub.region
}

// Triggered reports whether a one-shot subscription has fired. It latches true
// and never resets.
func (sub *Subscription) Triggered() bool {
	return sub.triggered
}

// Cancelled reports whether Cancel has been called or the region was disposed.
func (sub *Subscription) Cancelled() bool {
	return sub.cancelled
}

// Cancel disarms the subscription. After Cancel returns no callback of this
// subscription runs again, including one whose intersection was already
// computed by a poll in progress. Cancel is idempotent and safe to call from
// inside the subscription's own callback.
func (sub *Subscription) Cancel() {
	if sub.cancelled {
		return
	}
	sub.cancelled = true
	sub.pending = 0
	sub.onEnter = nil
	sub.onLeave = nil
}

// done reports whether the sensor can drop the subscription.
func (sub *Subscription) done() bool {
	return sub.cancelled || (sub.once && sub.triggered)
}

// Sensor watches node regions against a viewport. It is polled once per frame
// by the scene; visibility callbacks run on that poll, never concurrently.
type Sensor struct {
	viewport func() Rect
	root     *Node
	subs     []*Subscription
	snapshot []*Subscription

	// notify, when set, is called right before a callback is dispatched.
	notify func(ev EventType, region *Node)
}

// NewSensor creates a sensor testing regions attached under root against the
// rectangle returned by viewport. A nil root accepts regions in any tree.
func NewSensor(root *Node, viewport func() Rect) *Sensor {
	return &Sensor{root: root, viewport: viewport}
}

// Observe subscribes to the first time region intersects the viewport. The
// viewport's bottom (leading) edge is expanded by margin so the callback can
// fire slightly before the region scrolls in; a negative margin requires the
// region to be that far inside instead. onFirstVisible runs at most once.
//
// Regions with zero area, regions that are detached from the sensor's root and
// disposed regions never fire. Disposing the region cancels the subscription.
func (s *Sensor) Observe(region *Node, margin float64, onFirstVisible func()) *Subscription {
	sub := &Subscription{
		sensor:  s,
		region:  region,
		margin:  margin,
		once:    true,
		onEnter: onFirstVisible,
	}
	s.add(sub)
	return sub
}

// ObserveEach subscribes to every viewport enter and leave edge of region.
// Either callback may be nil.
func (s *Sensor) ObserveEach(region *Node, margin float64, onEnter, onLeave func()) *Subscription {
	sub := &Subscription{
		sensor:  s,
		region:  region,
		margin:  margin,
		onEnter: onEnter,
		onLeave: onLeave,
	}
	s.add(sub)
	return sub
}

func (s *Sensor) add(sub *Subscription) {
	if sub.region == nil || sub.region.IsDisposed() {
		sub.cancelled = true
		return
	}
	sub.region.OnDispose(sub.Cancel)
	s.subs = append(s.subs, sub)
}

// Len returns the number of live subscriptions.
func (s *Sensor) Len() int {
	n := 0
	for _, sub := range s.subs {
		if !sub.done() {
			n++
		}
	}
	return n
}

// visible reports whether sub's region currently intersects vp.
func (s *Sensor) visible(sub *Subscription, vp Rect) bool {
	r := sub.region
	if r.IsDisposed() || !r.Visible {
		return false
	}
	if s.root != nil && r.Root() != s.root {
		return false
	}
	b := r.WorldBounds()
	if b.Area() == 0 {
		return false
	}
	return b.Intersects(vp.ExpandBottom(sub.margin))
}

// poll computes intersections for every subscription, then dispatches the
// resulting callbacks in subscription order. Subscriptions added during
// dispatch are first evaluated on the next poll.
func (s *Sensor) poll() {
	if len(s.subs) == 0 {
		return
	}
	vp := s.viewport()

	s.snapshot = append(s.snapshot[:0], s.subs...)
	for _, sub := range s.snapshot {
		if sub.done() {
			continue
		}
		vis := s.visible(sub, vp)
		switch {
		case vis && !sub.inside:
			sub.pending = 1
		case !vis && sub.inside && !sub.once:
			sub.pending = -1
		}
	}

	for i, sub := range s.snapshot {
		s.snapshot[i] = nil
		if sub.pending == 0 || sub.cancelled {
			continue
		}
		edge := sub.pending
		sub.pending = 0
		if edge > 0 {
			sub.inside = true
			fn := sub.onEnter
			if sub.once {
				sub.triggered = true
				sub.onEnter = nil
				s.emit(EventRegionVisible, sub.region)
			} else {
				s.emit(EventRegionEnter, sub.region)
			}
			if fn != nil {
				fn()
			}
			continue
		}
		sub.inside = false
		s.emit(EventRegionLeave, sub.region)
		if sub.onLeave != nil {
			sub.onLeave()
		}
	}
	s.snapshot = s.snapshot[:0]

	live := s.subs[:0]
	for _, sub := range s.subs {
		if !sub.done() {
			live = append(live, sub)
		}
	}
	for i := len(live); i < len(s.subs); i++ {
		s.subs[i] = nil
	}
	s.subs = live
}

func (s *Sensor) emit(ev EventType, region *Node) {
	if s.notify != nil {
		s.notify(ev, region)
	}
}
