package marquee

// lastNodeID is bumped by every constructor. Scenes are driven from a single
// goroutine so no synchronization is needed.
var lastNodeID uint32

// Node is an element of the page tree. One flat struct serves every kind of
// node; Type says which of the optional fields are in use. A node with a
// Width and Height is also a region a Sensor can observe.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// X and Y place the top-left of the box in the parent's space.
	X, Y           float64
	ScaleX, ScaleY float64
	// OriginX and OriginY anchor scaling, as fractions of Width and Height.
	OriginX, OriginY float64

	// Width and Height size the box. Zero for pure containers.
	Width, Height float64

	Alpha   float64
	Visible bool
	Color   Color

	// TextBlock is set for NodeTypeText.
	TextBlock *TextBlock
	// Emitter is set for NodeTypeParticleEmitter.
	Emitter *ParticleEmitter

	UserData any

	// OnUpdate runs once per frame with the frame delta in seconds.
	OnUpdate func(dt float64)

	world          affine
	worldAlpha     float64
	transformDirty bool

	disposed  bool
	disposers []func()
}

func newNode(name string, typ NodeType) *Node {
	lastNodeID++
	return &Node{
		ID:             lastNodeID,
		Name:           name,
		Type:           typ,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Visible:        true,
		Color:          ColorWhite,
		world:          identity,
		transformDirty: true,
	}
}

// NewContainer creates a node that only groups its children.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewRegion creates an invisible container with explicit bounds, for
// sections and other areas a Sensor watches.
func NewRegion(name string, w, h float64) *Node {
	n := newNode(name, NodeTypeContainer)
	n.Width, n.Height = w, h
	return n
}

// NewRect creates a solid box: a card background, a bar or an underline.
func NewRect(name string, w, h float64, c Color) *Node {
	n := newNode(name, NodeTypeRect)
	n.Width, n.Height = w, h
	n.Color = c
	return n
}

// NewText creates a text node. Its size follows the laid out text.
func NewText(name string, content string, font Font) *Node {
	n := newNode(name, NodeTypeText)
	n.TextBlock = &TextBlock{Content: content, Font: font, Color: ColorWhite, layoutDirty: true}
	return n
}

// NewParticleEmitter creates an emitter node with its particle pool
// allocated up front.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := newNode(name, NodeTypeParticleEmitter)
	n.Emitter = newParticleEmitter(cfg)
	return n
}

// AddChild appends child, detaching it from any previous parent first.
// It panics if child is nil or if the add would make a node its own
// ancestor.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("marquee: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("marquee: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.invalidate()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child. It panics if child belongs to another parent.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child.Parent != n {
		panic("marquee: child's parent is not this node")
	}
	n.detach(child)
	child.Parent = nil
	child.invalidate()
}

// RemoveFromParent detaches n. Nodes without a parent are left alone.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns len(Children()).
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Root returns the topmost ancestor of n, or n itself.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Find returns the first node called name in n's subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// OnDispose registers fn to run when n is disposed. Hooks run once, in the
// order they were added, after descendants' hooks. On an already disposed
// node fn runs right away.
func (n *Node) OnDispose(fn func()) {
	switch {
	case fn == nil:
	case n.disposed:
		fn()
	default:
		n.disposers = append(n.disposers, fn)
	}
}

// Dispose detaches n and tears down its whole subtree. Counters, reveals and
// subscriptions owned by a disposed node stop through its dispose hooks.
// Calling Dispose again does nothing.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.teardown()
}

func (n *Node) teardown() {
	n.disposed = true
	n.ID = 0
	kids := n.children
	n.children = nil
	for _, child := range kids {
		child.Parent = nil
		child.teardown()
	}
	n.Parent = nil
	n.TextBlock, n.Emitter, n.UserData, n.OnUpdate = nil, nil, nil, nil

	hooks := n.disposers
	n.disposers = nil
	for _, fn := range hooks {
		fn()
	}
}

// IsDisposed reports whether Dispose has run on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// detach drops child from n.children, leaving child.Parent as is.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c != child {
			continue
		}
		last := len(n.children) - 1
		copy(n.children[i:], n.children[i+1:])
		n.children[last] = nil
		n.children = n.children[:last]
		return
	}
}

// invalidate flags n and its subtree for a world refresh.
func (n *Node) invalidate() {
	n.transformDirty = true
	for _, child := range n.children {
		child.invalidate()
	}
}
