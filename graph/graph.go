// Package graph implements the interactive orbit graph: a main node with
// weighted satellites laid out by a damped spring toward an equilibrium ring
// and a soft pairwise repulsion, plus the pointer state machine that turns a
// single event stream into hover, pan, node drag and click.
//
// A Graph is not safe for concurrent use. One goroutine, typically the host's
// frame loop, must drive Tick, Draw, AddNode and the pointer source.
package graph

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/TFMV/orbitgraph/physics"
	"github.com/google/uuid"
)

// ErrUnknownNode is returned when an operation names a node the graph does
// not hold
var ErrUnknownNode = errors.New("unknown node")

var nilID = uuid.Nil

// Options configures a Graph. The zero value of every field selects a
// default.
type Options struct {
	Tuning physics.Tuning
	Style  Style

	// ClickTolerance is the largest down-to-up distance still treated as a
	// click. 0 requires the positions to be equal.
	ClickTolerance float64

	Source  physics.Source
	Spawner physics.Spawner

	OnPointerMove func(ev PointerEvent, hovered *Node)
	OnNodeClick   func(ev PointerEvent, node *Node)
	// OnNodeAltClick replaces OnNodeClick when Ctrl is held. Nil keeps
	// OnNodeClick for every click.
	OnNodeAltClick func(ev PointerEvent, node *Node)
}

// DefaultOptions returns the options New uses when given nil
func DefaultOptions() *Options {
	return &Options{
		Tuning: physics.DefaultTuning(),
		Style:  LightStyle(),
	}
}

type pointerState struct {
	hovered uuid.UUID
	lastPos physics.Vector
	downPos physics.Vector
	down    bool
	pressed bool
}

// Graph owns the nodes, the links and the interaction state
type Graph struct {
	surface     Surface
	unsubscribe func()

	nodes []*Node
	index map[uuid.UUID]int
	links []*Link

	tuning         physics.Tuning
	style          Style
	clickTolerance float64
	source         physics.Source
	spawner        physics.Spawner
	spawned        int

	onPointerMove  func(PointerEvent, *Node)
	onNodeClick    func(PointerEvent, *Node)
	onNodeAltClick func(PointerEvent, *Node)

	ptr pointerState
	acc []physics.Vector
}

// New creates a graph around main and subscribes it to pointer. Either
// surface or pointer may be nil for headless use.
func New(surface Surface, pointer PointerSource, main *Node, opts *Options) (*Graph, error) {
	if main == nil {
		return nil, errors.New("main node is required")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	tuning := opts.Tuning
	if tuning == (physics.Tuning{}) {
		tuning = physics.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	if opts.ClickTolerance < 0 {
		return nil, fmt.Errorf("click tolerance must be >= 0, got %v", opts.ClickTolerance)
	}

	style := opts.Style
	if style == (Style{}) {
		style = LightStyle()
	}
	source := opts.Source
	if source == nil {
		source = physics.GlobalSource
	}
	spawner := opts.Spawner
	if spawner == nil {
		spawner = physics.NewSimplexSpawner(rand.Int64(), tuning.SpawnRadius)
	}

	g := &Graph{
		surface:        surface,
		nodes:          []*Node{main},
		index:          map[uuid.UUID]int{main.ID: 0},
		tuning:         tuning,
		style:          style,
		clickTolerance: opts.ClickTolerance,
		source:         source,
		spawner:        spawner,
		onPointerMove:  opts.OnPointerMove,
		onNodeClick:    opts.OnNodeClick,
		onNodeAltClick: opts.OnNodeAltClick,
	}
	if g.onPointerMove == nil {
		g.onPointerMove = func(PointerEvent, *Node) {}
	}
	if g.onNodeClick == nil {
		g.onNodeClick = func(PointerEvent, *Node) {}
	}
	if pointer != nil {
		g.unsubscribe = pointer.Subscribe(g.handlePointer)
	}
	return g, nil
}

// AddNode spawns a satellite near the main node, links it from the main node
// and returns its ID
func (g *Graph) AddNode(weight float64, label string) uuid.UUID {
	main := g.Main()
	pos := main.position.Add(g.spawner.Offset(g.spawned))
	g.spawned++

	n := newNode(pos, weight, label, g.source, g.tuning)
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.links = append(g.links, newLink(main.ID, n.ID))
	return n.ID
}

// AddLink appends an edge between two existing nodes
func (g *Graph) AddLink(from, to uuid.UUID) error {
	if _, ok := g.index[from]; !ok {
		return fmt.Errorf("link source %s: %w", from, ErrUnknownNode)
	}
	if _, ok := g.index[to]; !ok {
		return fmt.Errorf("link target %s: %w", to, ErrUnknownNode)
	}
	g.links = append(g.links, newLink(from, to))
	return nil
}

// Tick advances the simulation one step. Accelerations are computed from
// the positions at the start of the tick, then every eligible node
// integrates.
func (g *Graph) Tick() {
	main := g.Main()
	center := main.body()

	if cap(g.acc) < len(g.nodes) {
		g.acc = make([]physics.Vector, len(g.nodes))
	}
	g.acc = g.acc[:len(g.nodes)]

	for i, n := range g.nodes {
		if i == 0 || g.exempt(n) {
			continue
		}
		body := n.body()
		force := g.tuning.CenterForce(body, center)

		var repulsion physics.Vector
		for j, other := range g.nodes {
			if j == i {
				continue
			}
			repulsion = repulsion.Add(g.tuning.Repulsion(body, other.body()))
		}

		acc, vel := g.tuning.Combine(n.velocity, force, repulsion)
		g.acc[i] = acc
		n.velocity = vel
		n.resting = acc == (physics.Vector{})
	}

	for i, n := range g.nodes {
		if i == 0 || g.exempt(n) {
			continue
		}
		n.acceleration = g.acc[i]
		n.integrate()
	}
}

// exempt reports whether n is held by the pointer
func (g *Graph) exempt(n *Node) bool {
	return n.hovered && g.ptr.pressed
}

// Draw clears the surface and paints links under nodes
func (g *Graph) Draw() {
	if g.surface == nil {
		return
	}
	w, h := g.surface.Size()
	g.surface.ClearRect(0, 0, w, h)

	smoothing := g.tuning.Smoothing
	for _, l := range g.links {
		from, to := g.Node(l.From), g.Node(l.To)
		l.draw(g.surface, from, to, g.style, smoothing)
	}
	for _, n := range g.nodes {
		n.draw(g.surface, g.style, smoothing)
	}
}

// Destroy detaches the graph from its pointer source. It is safe to call
// more than once.
func (g *Graph) Destroy() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// Stable reports whether every free satellite came to rest on the last tick
func (g *Graph) Stable() bool {
	for i, n := range g.nodes {
		if i == 0 || g.exempt(n) {
			continue
		}
		if !n.resting {
			return false
		}
	}
	return true
}

// State reports the current interaction state
func (g *Graph) State() InteractionState {
	hovered := g.ptr.hovered != nilID
	switch {
	case g.ptr.pressed && hovered:
		return DraggingNode
	case g.ptr.pressed:
		return Panning
	case hovered:
		return Hovering
	default:
		return Idle
	}
}

// Main returns the node every satellite orbits
func (g *Graph) Main() *Node { return g.nodes[0] }

// Node returns the node with the given ID, or nil
func (g *Graph) Node(id uuid.UUID) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.nodes[i]
}

// Hovered returns the node under the pointer, or nil
func (g *Graph) Hovered() *Node { return g.hoveredNode() }

// Nodes returns the nodes in insertion order, main first
func (g *Graph) Nodes() []*Node { return append([]*Node(nil), g.nodes...) }

// Links returns the links in insertion order
func (g *Graph) Links() []*Link { return append([]*Link(nil), g.links...) }

// Tuning returns the force constants in use
func (g *Graph) Tuning() physics.Tuning { return g.tuning }

// Style returns the theme in use
func (g *Graph) Style() Style { return g.style }
