package graph

import (
	"math"

	"github.com/TFMV/orbitgraph/physics"
	"github.com/google/uuid"
)

// Node is a simulated particle. Its radius and noise are fixed at
// construction; position, velocity and acceleration change every tick.
type Node struct {
	ID uuid.UUID

	position     physics.Vector
	velocity     physics.Vector
	acceleration physics.Vector

	weight float64
	radius float64
	noise  float64
	label  string

	hovered bool
	resting bool
	fill    physics.Fader
}

// NewNode creates a node at position. Negative or NaN weights are clamped to
// 0. The noise term is drawn from src once; nil src uses the global source.
func NewNode(position physics.Vector, weight float64, label string, src physics.Source) *Node {
	return newNode(position, weight, label, src, physics.DefaultTuning())
}

func newNode(position physics.Vector, weight float64, label string, src physics.Source, tuning physics.Tuning) *Node {
	if src == nil {
		src = physics.GlobalSource
	}
	weight = clampWeight(weight)
	radius := Radius(weight)

	return &Node{
		ID:       uuid.New(),
		position: position,
		weight:   weight,
		radius:   radius,
		noise:    tuning.Noise(src, radius),
		label:    label,
	}
}

// Radius returns the radius of a node of the given weight
func Radius(weight float64) float64 {
	return 2 + math.Sqrt(clampWeight(weight))
}

func clampWeight(weight float64) float64 {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return 0
	}
	return weight
}

func (n *Node) Position() physics.Vector { return n.position }
func (n *Node) Velocity() physics.Vector { return n.velocity }
func (n *Node) Weight() float64          { return n.weight }
func (n *Node) Radius() float64          { return n.radius }
func (n *Node) Noise() float64           { return n.noise }
func (n *Node) Label() string            { return n.label }
func (n *Node) Hovered() bool            { return n.hovered }

// Opacity is the current eased fill opacity
func (n *Node) Opacity() float64 { return n.fill.Current }

func (n *Node) body() physics.Body {
	return physics.Body{
		Position: n.position,
		Velocity: n.velocity,
		Radius:   n.radius,
		Noise:    n.noise,
	}
}

// contains reports whether p lies strictly inside the node's circle
func (n *Node) contains(p physics.Vector) bool {
	return n.position.Distance(p) < n.radius
}

// integrate performs one explicit Euler step
func (n *Node) integrate() {
	n.velocity = n.velocity.Add(n.acceleration)
	n.position = n.position.Add(n.velocity)
}

// translate moves the node without touching its momentum
func (n *Node) translate(d physics.Vector) {
	n.position = n.position.Add(d)
}

func (n *Node) draw(s Surface, style Style, smoothing float64) {
	s.BeginPath()
	s.Arc(n.position.X, n.position.Y, n.radius, 0, 2*math.Pi)
	s.SetStrokeColor(style.NodeStroke)
	s.Stroke()

	n.fill.Target = 0
	if n.hovered {
		n.fill.Target = 1
	}
	s.SetFillColor(fade(style.NodeFill, n.fill.Step(smoothing)))
	s.Fill()
}
