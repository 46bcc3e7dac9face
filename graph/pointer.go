package graph

import (
	"slices"

	"github.com/TFMV/orbitgraph/physics"
)

// PointerKind distinguishes the three pointer notifications
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// Button identifies the button that changed in a down or up event
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// Buttons is the bitmask of buttons held during an event
type Buttons uint8

const (
	ButtonsPrimary Buttons = 1 << iota
	ButtonsSecondary
	ButtonsAuxiliary
)

// Has reports whether every button in o is held
func (b Buttons) Has(o Buttons) bool { return b&o == o }

// bit maps a button to its mask bit
func (b Button) bit() Buttons {
	switch b {
	case ButtonPrimary:
		return ButtonsPrimary
	case ButtonSecondary:
		return ButtonsSecondary
	case ButtonAuxiliary:
		return ButtonsAuxiliary
	default:
		return 0
	}
}

// PointerEvent is a pointer notification in surface coordinates
type PointerEvent struct {
	Kind     PointerKind
	Position physics.Vector
	Button   Button  // changed button, meaningful for down and up
	Buttons  Buttons // buttons held after the event
	Ctrl     bool
}

// PointerHandler receives pointer events
type PointerHandler func(PointerEvent)

// PointerSource delivers pointer events to subscribers. The returned func
// removes the subscription.
type PointerSource interface {
	Subscribe(h PointerHandler) (unsubscribe func())
}

// PointerBus is a synchronous PointerSource. Handlers run on the goroutine
// calling Dispatch or Feed, in subscription order.
type PointerBus struct {
	next     int
	handlers []subscription
}

type subscription struct {
	id int
	h  PointerHandler
}

// NewPointerBus creates an empty bus
func NewPointerBus() *PointerBus {
	return &PointerBus{}
}

// Subscribe registers h until the returned func is called
func (b *PointerBus) Subscribe(h PointerHandler) func() {
	id := b.next
	b.next++
	b.handlers = append(b.handlers, subscription{id: id, h: h})

	return func() {
		b.handlers = slices.DeleteFunc(b.handlers, func(s subscription) bool { return s.id == id })
	}
}

// Len returns the number of live subscriptions
func (b *PointerBus) Len() int { return len(b.handlers) }

// Dispatch delivers ev to every subscriber
func (b *PointerBus) Dispatch(ev PointerEvent) {
	for _, s := range slices.Clone(b.handlers) {
		s.h(ev)
	}
}

// InputState is a polled snapshot of the pointer, as frame-based hosts
// observe it
type InputState struct {
	Position physics.Vector
	Buttons  Buttons
	Ctrl     bool
}

// Feed converts two consecutive input snapshots into events. Movement is
// delivered first with the previous button state, then one down or up event
// per changed button at the current position.
func (b *PointerBus) Feed(prev, cur InputState) {
	if cur.Position != prev.Position {
		b.Dispatch(PointerEvent{
			Kind:     PointerMove,
			Position: cur.Position,
			Buttons:  prev.Buttons,
			Ctrl:     cur.Ctrl,
		})
	}

	for _, btn := range []Button{ButtonPrimary, ButtonAuxiliary, ButtonSecondary} {
		was, is := prev.Buttons.Has(btn.bit()), cur.Buttons.Has(btn.bit())
		if was == is {
			continue
		}
		kind := PointerDown
		if was {
			kind = PointerUp
		}
		b.Dispatch(PointerEvent{
			Kind:     kind,
			Position: cur.Position,
			Button:   btn,
			Buttons:  cur.Buttons,
			Ctrl:     cur.Ctrl,
		})
	}
}

// InteractionState describes what the pointer is doing to the graph
type InteractionState int

const (
	Idle InteractionState = iota
	Hovering
	Panning
	DraggingNode
)

func (s InteractionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Panning:
		return "panning"
	case DraggingNode:
		return "dragging"
	default:
		return "unknown"
	}
}

// handlePointer routes an event to the matching state transition
func (g *Graph) handlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		g.pointerMove(ev)
	case PointerDown:
		g.pointerDown(ev)
	case PointerUp:
		g.pointerUp(ev)
	}
}

func (g *Graph) pointerMove(ev PointerEvent) {
	delta := ev.Position.Sub(g.ptr.lastPos)
	g.ptr.pressed = ev.Buttons.Has(ButtonsPrimary)

	hovered := g.hoveredNode()
	switch {
	case g.ptr.pressed && hovered == nil:
		for _, n := range g.nodes {
			n.translate(delta)
		}
	case g.ptr.pressed:
		hovered.translate(delta)
	}

	found := g.nodeAt(ev.Position)
	switch {
	case found != nil && !g.ptr.pressed:
		g.setHovered(found)
	case found == nil && hovered != nil:
		g.setHovered(nil)
	}

	g.onPointerMove(ev, g.hoveredNode())
	g.ptr.lastPos = ev.Position
}

func (g *Graph) pointerDown(ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	g.ptr.downPos = ev.Position
	g.ptr.down = true
	g.ptr.pressed = true
	g.ptr.lastPos = ev.Position
}

func (g *Graph) pointerUp(ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	hovered := g.hoveredNode()
	isClick := g.ptr.down && hovered != nil &&
		ev.Position.Distance(g.ptr.downPos) <= g.clickTolerance

	g.ptr.down = false
	g.ptr.pressed = false

	if !isClick {
		return
	}
	if ev.Ctrl && g.onNodeAltClick != nil {
		g.onNodeAltClick(ev, hovered)
		return
	}
	g.onNodeClick(ev, hovered)
}

// nodeAt returns the first node, in insertion order, containing p
func (g *Graph) nodeAt(p physics.Vector) *Node {
	for _, n := range g.nodes {
		if n.contains(p) {
			return n
		}
	}
	return nil
}

func (g *Graph) hoveredNode() *Node {
	if g.ptr.hovered == nilID {
		return nil
	}
	return g.Node(g.ptr.hovered)
}

func (g *Graph) setHovered(n *Node) {
	if prev := g.hoveredNode(); prev != nil {
		prev.hovered = false
	}
	if n == nil {
		g.ptr.hovered = nilID
		return
	}
	n.hovered = true
	g.ptr.hovered = n.ID
}
