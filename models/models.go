// Package models provides the serializable view of an orbit graph.
// It is what exporters, ingesters and the CLI exchange; the live simulation
// lives in package graph.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Node represents a node in a graph snapshot
type Node struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Weight  float64   `json:"weight"`
	Radius  float64   `json:"radius"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Main    bool      `json:"main,omitempty"`
	Hovered bool      `json:"hovered,omitempty"`
	Opacity float64   `json:"opacity"` // fill opacity at capture time
}

// Edge represents a directed link between two nodes
type Edge struct {
	ID      uuid.UUID `json:"id"`
	Source  uuid.UUID `json:"source"`
	Target  uuid.UUID `json:"target"`
	Opacity float64   `json:"opacity"`
}

// Graph represents a captured graph: nodes in insertion order (main first)
// and the links between them
type Graph struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Theme     string    `json:"theme,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeedNode is a node to be added to a live graph
type SeedNode struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Seed describes a graph before simulation: one main node and its satellites
type Seed struct {
	Name       string     `json:"name"`
	Main       SeedNode   `json:"main"`
	Satellites []SeedNode `json:"satellites"`
}
