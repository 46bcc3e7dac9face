package graph

import (
	"errors"

	"github.com/TFMV/orbitgraph/models"
	"github.com/TFMV/orbitgraph/physics"
)

// FromSeed builds a graph whose main node sits in the middle of surface (or
// at the origin without one) and adds every satellite of seed in order
func FromSeed(surface Surface, pointer PointerSource, seed *models.Seed, opts *Options) (*Graph, error) {
	if seed == nil {
		return nil, errors.New("seed is required")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	var center physics.Vector
	if surface != nil {
		w, h := surface.Size()
		center = physics.V(w/2, h/2)
	}

	tuning := opts.Tuning
	if tuning == (physics.Tuning{}) {
		tuning = physics.DefaultTuning()
	}
	main := newNode(center, seed.Main.Weight, seed.Main.Label, opts.Source, tuning)

	g, err := New(surface, pointer, main, opts)
	if err != nil {
		return nil, err
	}
	for _, s := range seed.Satellites {
		g.AddNode(s.Weight, s.Label)
	}
	return g, nil
}
