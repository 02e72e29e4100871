package scene

import "slices"

// Event identifies a tree change.
type Event int

// Tree change events.
const (
	NodeAdded Event = iota
	NodeRemoved
	NodeToggled
)

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e {
	case NodeAdded:
		return "added"
	case NodeRemoved:
		return "removed"
	case NodeToggled:
		return "toggled"
	default:
		return "unknown"
	}
}

// Listener receives tree change notifications.
type Listener func(ev Event, n Node)

// Context is the registry of the scene's current singletons. Last writer wins.
type Context struct {
	Camera Node
	Light  *DirectionalLight
	Fog    *Fog
}

// Scene owns a node tree and its registry.
type Scene struct {
	root      Base
	ctx       Context
	listeners []subscription
	nextID    int
	elapsed   float64
}

type subscription struct {
	id int
	fn Listener
}

// New creates an empty scene.
func New() *Scene {
	s := &Scene{root: NewBase("root")}
	s.root.scene = s
	return s
}

// Root returns the top of the tree.
func (s *Scene) Root() *Base { return &s.root }

// Add attaches n directly under the root.
func (s *Scene) Add(n Node) { s.root.AddChild(n) }

// Remove detaches n from wherever it sits in the tree.
func (s *Scene) Remove(n Node) bool {
	b := n.NodeBase()
	if b.scene != s || b.parent == nil {
		return false
	}
	return b.parent.RemoveChild(n)
}

// Context returns the registry of current singletons.
func (s *Scene) Context() *Context { return &s.ctx }

// Elapsed returns the sum of every dt passed to Process.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Subscribe registers fn for tree change notifications and returns a func
// that unregisters it.
func (s *Scene) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Process runs one frame of node updates: every enabled node implementing
// Processor is called depth-first, parents before children. Disabled
// subtrees are skipped.
func (s *Scene) Process(dt float64) {
	s.elapsed += dt
	for _, c := range slices.Clone(s.root.children) {
		process(c, dt)
	}
}

func process(n Node, dt float64) {
	b := n.NodeBase()
	if b.disabled {
		return
	}
	if p, ok := n.(Processor); ok {
		p.Process(dt)
	}
	// Clone so Process implementations may add or remove children.
	for _, c := range slices.Clone(b.children) {
		process(c, dt)
	}
}

// attach binds a freshly added subtree to s.
func (s *Scene) attach(n Node) {
	Walk(n, func(c Node) bool {
		cb := c.NodeBase()
		cb.scene = s
		if e, ok := c.(TreeEnterer); ok {
			e.EnterTree()
		}
		s.notify(NodeAdded, c)
		return true
	})
}

// detach unbinds a removed subtree from s.
func (s *Scene) detach(n Node) {
	Walk(n, func(c Node) bool {
		if e, ok := c.(TreeExiter); ok {
			e.ExitTree()
		}
		c.NodeBase().scene = nil
		s.notify(NodeRemoved, c)
		return true
	})
}

// syncRegistry keeps the current light and fog in step with a toggled
// subtree. Disabled entries are cleared; re-enabled ones register again.
func (s *Scene) syncRegistry(n Node, enabled bool) {
	if !enabled {
		if s.ctx.Light != nil && !s.ctx.Light.EnabledInTree() {
			s.ctx.Light = nil
		}
		if s.ctx.Fog != nil && !s.ctx.Fog.EnabledInTree() {
			s.ctx.Fog = nil
		}
		return
	}
	Walk(n, func(c Node) bool {
		if !c.NodeBase().EnabledInTree() {
			return false
		}
		switch v := c.(type) {
		case *DirectionalLight:
			v.makeCurrent()
		case *Fog:
			v.makeCurrent()
		}
		return true
	})
}

func (s *Scene) notify(ev Event, n Node) {
	for _, sub := range slices.Clone(s.listeners) {
		sub.fn(ev, n)
	}
}
