package graph

import (
	"context"

	"github.com/TFMV/orbitgraph/models"
)

// SettleOptions bounds a headless layout run
type SettleOptions struct {
	MaxTicks    int  // hard cap on ticks, 0 means 2000
	StableTicks int  // consecutive stable ticks required, 0 means 30
	Draw        bool // also draw every tick so opacities ease
}

// SettleResult reports how a layout run ended
type SettleResult struct {
	Ticks  int
	Stable bool
}

// Settle ticks g on the caller's goroutine until it has been stable for
// StableTicks consecutive ticks, MaxTicks is reached or ctx is done
func Settle(ctx context.Context, g *Graph, opts SettleOptions) (SettleResult, error) {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 2000
	}
	if opts.StableTicks <= 0 {
		opts.StableTicks = 30
	}

	var res SettleResult
	streak := 0
	for res.Ticks < opts.MaxTicks {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		g.Tick()
		if opts.Draw {
			g.Draw()
		}
		res.Ticks++

		if g.Stable() {
			streak++
		} else {
			streak = 0
		}
		if streak >= opts.StableTicks {
			res.Stable = true
			return res, nil
		}
	}
	return res, nil
}

// Snapshot captures the current layout
func (g *Graph) Snapshot() *models.Graph {
	main := g.Main()
	snap := models.NewGraph(main.label)
	snap.Theme = g.style.Name
	if g.surface != nil {
		w, h := g.surface.Size()
		snap.SetDimensions(w, h)
	}

	for i, n := range g.nodes {
		snap.AddNode(&models.Node{
			ID:      n.ID,
			Label:   n.label,
			Weight:  n.weight,
			Radius:  n.radius,
			X:       n.position.X,
			Y:       n.position.Y,
			Main:    i == 0,
			Hovered: n.hovered,
			Opacity: n.fill.Current,
		})
	}
	for _, l := range g.links {
		e := models.NewEdge(l.From, l.To)
		e.Opacity = l.opacity.Current
		// endpoints come from g.index, so this cannot fail
		_ = snap.AddEdge(e)
	}
	return snap
}
