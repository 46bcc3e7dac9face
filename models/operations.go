package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrNodeNotFound is returned when a lookup names a node that is not in the graph
var ErrNodeNotFound = errors.New("node not found")

// NewNode creates a new node with a fresh ID
func NewNode(label string, weight float64) *Node {
	return &Node{
		ID:     uuid.New(),
		Label:  label,
		Weight: weight,
	}
}

// NewEdge creates a new edge with a fresh ID
func NewEdge(source, target uuid.UUID) *Edge {
	return &Edge{
		ID:     uuid.New(),
		Source: source,
		Target: target,
	}
}

// SetPosition sets the position of a node
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// NewGraph creates a new graph with a unique ID and timestamps
func NewGraph(name string) *Graph {
	now := time.Now()
	return &Graph{
		ID:        uuid.New(),
		Name:      name,
		Nodes:     []Node{},
		Edges:     []Edge{},
		Width:     800,
		Height:    600,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddNode adds a node to the graph
func (g *Graph) AddNode(node *Node) {
	g.Nodes = append(g.Nodes, *node)
	g.UpdatedAt = time.Now()
}

// AddEdge adds an edge to the graph. Both endpoints must already exist.
func (g *Graph) AddEdge(edge *Edge) error {
	if _, err := g.FindNodeByID(edge.Source); err != nil {
		return fmt.Errorf("source of edge %s: %w", edge.ID, err)
	}
	if _, err := g.FindNodeByID(edge.Target); err != nil {
		return fmt.Errorf("target of edge %s: %w", edge.ID, err)
	}

	g.Edges = append(g.Edges, *edge)
	g.UpdatedAt = time.Now()
	return nil
}

// SetDimensions sets the width and height of the graph
func (g *Graph) SetDimensions(width, height float64) {
	g.Width = width
	g.Height = height
	g.UpdatedAt = time.Now()
}

// Bounds returns the box enclosing every node circle. An empty graph has a
// zero box.
func (g *Graph) Bounds() (minX, minY, maxX, maxY float64) {
	if len(g.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		minX = math.Min(minX, n.X-n.Radius)
		minY = math.Min(minY, n.Y-n.Radius)
		maxX = math.Max(maxX, n.X+n.Radius)
		maxY = math.Max(maxY, n.Y+n.Radius)
	}
	return minX, minY, maxX, maxY
}

// Translate shifts every node by (dx, dy)
func (g *Graph) Translate(dx, dy float64) {
	for i := range g.Nodes {
		g.Nodes[i].X += dx
		g.Nodes[i].Y += dy
	}
	g.UpdatedAt = time.Now()
}

// Center moves the nodes so the bounding box sits in the middle of the
// graph's dimensions
func (g *Graph) Center() {
	if len(g.Nodes) == 0 {
		return
	}
	minX, minY, maxX, maxY := g.Bounds()
	g.Translate(g.Width/2-(minX+maxX)/2, g.Height/2-(minY+maxY)/2)
}
