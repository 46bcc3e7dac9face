package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeFilter is a function type used to filter nodes in queries
type NodeFilter func(node *Node) bool

// FindNodeByID returns a node by its ID
func (g *Graph) FindNodeByID(id uuid.UUID) (*Node, error) {
	for i, node := range g.Nodes {
		if node.ID == id {
			return &g.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("node with ID %s: %w", id, ErrNodeNotFound)
}

// MainNode returns the node every satellite orbits
func (g *Graph) MainNode() (*Node, error) {
	for i, node := range g.Nodes {
		if node.Main {
			return &g.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("main node: %w", ErrNodeNotFound)
}

// FindOutgoingEdges returns all edges originating from a node
func (g *Graph) FindOutgoingEdges(nodeID uuid.UUID) []Edge {
	var result []Edge
	for _, edge := range g.Edges {
		if edge.Source == nodeID {
			result = append(result, edge)
		}
	}
	return result
}

// FindIncomingEdges returns all edges targeting a node
func (g *Graph) FindIncomingEdges(nodeID uuid.UUID) []Edge {
	var result []Edge
	for _, edge := range g.Edges {
		if edge.Target == nodeID {
			result = append(result, edge)
		}
	}
	return result
}

// FilterNodes returns nodes that match the provided filter function
func (g *Graph) FilterNodes(filter NodeFilter) []Node {
	var result []Node
	for i, node := range g.Nodes {
		if filter(&g.Nodes[i]) {
			result = append(result, node)
		}
	}
	return result
}

// Satellites returns every node except the main one
func (g *Graph) Satellites() []Node {
	return g.FilterNodes(func(n *Node) bool { return !n.Main })
}

// TotalWeight sums the weight of every satellite
func (g *Graph) TotalWeight() float64 {
	var total float64
	for _, n := range g.Satellites() {
		total += n.Weight
	}
	return total
}
