package marquee

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventStore is the interface for optional ECS integration.
// When set on a Scene, orchestration events are forwarded to it.
type EventStore interface {
	EmitEvent(event Event)
}

// Event carries orchestration data for the ECS bridge.
type Event struct {
	Type   EventType
	NodeID uint32
	Name   string
	// Index is the item index for EventStaggerStart, -1 otherwise.
	Index int
	// Value is the emitted value for counter events.
	Value int
	// Time is the scene's virtual time when the event fired.
	Time time.Duration
}

// Scene is the top-level object that owns the node tree, cameras, the timer
// queue, the visibility sensor and active transitions. Everything it drives
// runs on the single goroutine calling Update.
type Scene struct {
	root   *Node
	width  float64
	height float64

	cameras []*Camera

	timers  *Timers
	sensor  *Sensor
	runners []*TransitionRunner

	logger *slog.Logger
	store  EventStore
	debug  bool

	// ClearColor fills the screen before each Draw. A zero alpha skips the fill.
	ClearColor Color
	// ScrollSpeed is the number of world units one wheel notch scrolls.
	ScrollSpeed float64
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	updateFunc      func() error
	drag            dragState
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	frame           uint64
	stats           debugStats
}

// NewScene creates a scene whose screen is width x height pixels.
func NewScene(width, height float64) *Scene {
	s := &Scene{
		root:          NewContainer("root"),
		width:         width,
		height:        height,
		timers:        NewTimers(),
		logger:        slog.Default(),
		ScrollSpeed:   48,
		ScreenshotDir: "screenshots",
	}
	s.sensor = NewSensor(s.root, s.Viewport)
	s.sensor.notify = func(ev EventType, region *Node) {
		s.logger.Debug("sensor: "+ev.String(), "region", region.Name, "node", region.ID, "at", s.timers.Now())
		s.emit(Event{Type: ev, NodeID: region.ID, Name: region.Name, Index: -1})
	}
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Size returns the screen size the scene was created with.
func (s *Scene) Size() (w, h float64) {
	return s.width, s.height
}

// Timers returns the scene's timer queue.
func (s *Scene) Timers() *Timers {
	return s.timers
}

// Sensor returns the scene's visibility sensor.
func (s *Scene) Sensor() *Sensor {
	return s.sensor
}

// Now returns the scene's virtual time.
func (s *Scene) Now() time.Duration {
	return s.timers.Now()
}

// Frame returns the number of updates processed so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
// The first camera is the primary camera: it defines the sensor's viewport.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Camera returns the primary camera, or nil if the scene has none.
func (s *Scene) Camera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// Viewport returns the world rect regions are tested against.
func (s *Scene) Viewport() Rect {
	if cam := s.Camera(); cam != nil {
		return cam.VisibleBounds()
	}
	return Rect{Width: s.width, Height: s.height}
}

// SetLogger replaces the scene's logger. A nil logger restores slog.Default().
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger {
	return s.logger
}

// SetEventStore sets the optional ECS bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// on disposed nodes panic and per-frame stats are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

func (s *Scene) emit(ev Event) {
	if s.store == nil {
		return
	}
	ev.Time = s.timers.Now()
	s.store.EmitEvent(ev)
}

// --- Orchestration helpers ---

// Observe subscribes to the first time region enters the viewport.
// See Sensor.Observe.
func (s *Scene) Observe(region *Node, margin float64, onFirstVisible func()) *Subscription {
	return s.sensor.Observe(region, margin, onFirstVisible)
}

// NewCounter creates a counter driven by the scene's timers. Its emissions
// are forwarded to the event store and it stops when owner is disposed.
// owner may be nil.
func (s *Scene) NewCounter(spec CounterSpec, owner *Node) (*Counter, error) {
	c, err := NewCounter(s.timers, spec)
	if err != nil {
		return nil, err
	}
	var id uint32
	var name string
	if owner != nil {
		id, name = owner.ID, owner.Name
		c.BindTo(owner)
	}
	c.notify = func(ev EventType, v int) {
		if ev == EventCounterSettled {
			s.logger.Debug("counter: settled", "node", name, "target", v, "ticks", c.Ticks(), "at", s.timers.Now())
		}
		s.emit(Event{Type: ev, NodeID: id, Name: name, Index: -1, Value: v})
	}
	return c, nil
}

// Prepare binds tr to node, snapping it to the From state, and registers the
// runner with the scene. The runner does nothing until Start is called.
func (s *Scene) Prepare(node *Node, tr Transition) *TransitionRunner {
	r := tr.Bind(node)
	s.runners = append(s.runners, r)
	return r
}

// Play binds and immediately starts tr on node.
func (s *Scene) Play(node *Node, tr Transition) *TransitionRunner {
	r := s.Prepare(node, tr)
	r.Start()
	return r
}

// ActiveTransitions returns the number of runners that are prepared or
// running. Finished runners and runners on disposed nodes are dropped on the
// next frame.
func (s *Scene) ActiveTransitions() int {
	return len(s.runners)
}

// --- Frame loop ---

// Update runs one frame: input, then UpdateDelta with dt = 1/TPS.
func (s *Scene) Update() error {
	s.processInput()
	return s.UpdateDelta(time.Second / time.Duration(ebiten.TPS()))
}

// UpdateDelta advances the scene by dt without reading device input. Order:
// test script, injected input, cameras and world transforms, timers,
// visibility, transitions and particles, node hooks.
func (s *Scene) UpdateDelta(dt time.Duration) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.frame++
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	sec := float32(dt.Seconds())

	for _, cam := range s.cameras {
		cam.update(sec)
	}
	s.syncLayout(s.root)
	syncWorld(s.root, identity, 1, false)

	s.timers.Advance(dt)
	s.sensor.poll()

	s.updateRunners(sec)
	updateParticles(s.root, float64(sec))
	updateHooks(s.root, float64(sec))

	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// syncLayout refreshes measured sizes of text nodes.
func (s *Scene) syncLayout(n *Node) {
	if n.Type == NodeTypeText {
		n.syncTextSize()
	}
	for _, child := range n.children {
		s.syncLayout(child)
	}
}

func (s *Scene) updateRunners(dt float32) {
	live := s.runners[:0]
	for _, r := range s.runners {
		r.Update(dt)
		if !r.Done {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(s.runners); i++ {
		s.runners[i] = nil
	}
	s.runners = live
}

// updateHooks calls OnUpdate on every node that has one.
func updateHooks(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		// A hook may dispose a sibling, which shifts it out of the slice.
		if child == nil || child.IsDisposed() {
			continue
		}
		updateHooks(child, dt)
	}
}
