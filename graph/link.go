package graph

import (
	"github.com/TFMV/orbitgraph/physics"
	"github.com/google/uuid"
)

const (
	linkIdleOpacity  = 0.2
	linkFocusOpacity = 1.0
)

// Link is a directed edge between two nodes of the same graph. It refers to
// its endpoints by ID; the graph resolves them.
type Link struct {
	From uuid.UUID
	To   uuid.UUID

	opacity physics.Fader
}

func newLink(from, to uuid.UUID) *Link {
	return &Link{
		From:    from,
		To:      to,
		opacity: physics.Fader{Target: linkIdleOpacity},
	}
}

// Opacity is the current eased stroke opacity
func (l *Link) Opacity() float64 { return l.opacity.Current }

// draw strokes the segment between the two circle boundaries. Coincident
// endpoints produce a degenerate segment at angle 0.
func (l *Link) draw(s Surface, from, to *Node, style Style, smoothing float64) {
	l.opacity.Target = linkIdleOpacity
	if to.hovered {
		l.opacity.Target = linkFocusOpacity
	}
	current := l.opacity.Step(smoothing)

	angle := from.position.Angle(to.position)
	start := from.position.Offset(angle, from.radius)
	end := to.position.Offset(angle, -to.radius)

	s.BeginPath()
	s.MoveTo(start.X, start.Y)
	s.LineTo(end.X, end.Y)
	s.SetStrokeColor(fade(style.Link, current))
	s.Stroke()
}
