package marquee

import (
	"fmt"

	"github.com/google/uuid"
)

// StatRecord is one headline number in the stats section.
type StatRecord struct {
	Label  string `yaml:"label"`
	Icon   string `yaml:"icon"`
	Target int    `yaml:"target"`
	Suffix string `yaml:"suffix"`
	Color  string `yaml:"color"`
}

// FeatureRecord is one card in the features grid.
type FeatureRecord struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// ShowcaseRecord is one playlist card in the showcase.
type ShowcaseRecord struct {
	ID          uuid.UUID
	Title       string
	Description string
	ImageURL    string
	TrackCount  int
}

// Fonts are the faces sections lay text out with.
type Fonts struct {
	Heading Font
	Body    Font
	Value   Font
}

// DefaultFonts loads Go Regular at heading, body and stat-value sizes.
func DefaultFonts() (Fonts, error) {
	heading, err := DefaultFont(40)
	if err != nil {
		return Fonts{}, err
	}
	body, err := DefaultFont(16)
	if err != nil {
		return Fonts{}, err
	}
	value, err := DefaultFont(32)
	if err != nil {
		return Fonts{}, err
	}
	return Fonts{Heading: heading, Body: body, Value: value}, nil
}

// Section is one block of the page. Its root node is the region the sensor
// watches; the first time it becomes visible every reveal and counter the
// section owns is started. Disposing the root tears all of them down.
type Section struct {
	Name string
	// Node is the section's root and the observed region.
	Node *Node

	scene     *Scene
	sub       *Subscription
	reveals   []*Reveal
	counters  []*Counter
	triggered bool
	disposed  bool

	// OnTrigger runs once, after the section started its animations.
	OnTrigger func()
}

// NewSection adds an empty full-width section at y to the scene's root.
func (s *Scene) NewSection(name string, y, height float64) *Section {
	n := NewRegion(name, s.width, height)
	n.Y = y
	s.root.AddChild(n)
	sec := &Section{Name: name, Node: n, scene: s}
	n.OnDispose(sec.teardown)
	return sec
}

// Observe arms the section's one-shot trigger with the given margin.
// Calling it again replaces the previous subscription.
func (sec *Section) Observe(margin float64) {
	if sec.disposed {
		return
	}
	if sec.sub != nil {
		sec.sub.Cancel()
	}
	sec.sub = sec.scene.Observe(sec.Node, margin, sec.Trigger)
}

// AddReveal prepares a staggered reveal of items. Items must already be in
// their resting position.
func (sec *Section) AddReveal(items []*Node, g StaggerGroup, from, to State) (*Reveal, error) {
	r, err := sec.scene.PrepareReveal(items, g, from, to)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", sec.Name, err)
	}
	sec.reveals = append(sec.reveals, r)
	return r, nil
}

// AddCounter creates a counter that renders into label followed by suffix.
// The counter stops when label or the section is disposed.
func (sec *Section) AddCounter(spec CounterSpec, label *Node, suffix string) (*Counter, error) {
	c, err := sec.scene.NewCounter(spec, label)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", sec.Name, err)
	}
	(&CounterLabel{Node: label, Suffix: suffix}).Attach(c)
	sec.counters = append(sec.counters, c)
	return c, nil
}

// Trigger starts every reveal and counter. Only the first call has any
// effect; the sensor calls it when the section first becomes visible.
func (sec *Section) Trigger() {
	if sec.triggered || sec.disposed {
		return
	}
	sec.triggered = true
	sec.scene.logger.Info("section: triggered", "section", sec.Name,
		"reveals", len(sec.reveals), "counters", len(sec.counters), "at", sec.scene.Now())
	for _, r := range sec.reveals {
		r.Trigger()
	}
	for _, c := range sec.counters {
		c.Start()
	}
	if sec.OnTrigger != nil {
		sec.OnTrigger()
	}
}

// Triggered reports whether the section has started.
func (sec *Section) Triggered() bool {
	return sec.triggered
}

// Disposed reports whether the section was torn down.
func (sec *Section) Disposed() bool {
	return sec.disposed
}

// Subscription returns the section's sensor subscription, or nil.
func (sec *Section) Subscription() *Subscription {
	return sec.sub
}

// Reveals returns the section's reveals in the order they were added.
func (sec *Section) Reveals() []*Reveal {
	return sec.reveals
}

// Counters returns the section's counters in the order they were added.
func (sec *Section) Counters() []*Counter {
	return sec.counters
}

// Dispose removes the section from the page. Pending start signals are
// cancelled, running counters stop without a further emission and the
// subscription is released. Idempotent.
func (sec *Section) Dispose() {
	sec.Node.Dispose()
}

func (sec *Section) teardown() {
	if sec.disposed {
		return
	}
	sec.disposed = true
	if sec.sub != nil {
		sec.sub.Cancel()
	}
	for _, r := range sec.reveals {
		r.Cancel()
	}
	for _, c := range sec.counters {
		c.Stop()
	}
	sec.scene.logger.Debug("section: disposed", "section", sec.Name, "at", sec.scene.Now())
}
