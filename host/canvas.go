package host

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/TFMV/orbitgraph/render"
)

// arcStep is the largest angle, in radians, covered by one segment of a
// partial arc
const arcStep = math.Pi / 16

type opKind int

const (
	opLine opKind = iota
	opCircle
	opDisc
	opRect
)

// op is one ebiten vector call
type op struct {
	kind           opKind
	x0, y0, x1, y1 float32 // line ends, or x, y, width, height of a rect
	r              float32
	c              color.NRGBA
}

// plan turns recorded shapes into vector calls. Full-circle arcs map onto
// the circle primitives; everything else becomes line segments.
func plan(shapes []render.Shape, background color.NRGBA) []op {
	var ops []op
	for _, s := range shapes {
		switch s.Kind {
		case render.ShapeClear:
			ops = append(ops, op{
				kind: opRect,
				x0:   float32(s.Rect[0]),
				y0:   float32(s.Rect[1]),
				x1:   float32(s.Rect[2]),
				y1:   float32(s.Rect[3]),
				c:    background,
			})
		case render.ShapeStroke, render.ShapeFill:
			ops = appendPath(ops, s)
		}
	}
	return ops
}

func appendPath(ops []op, s render.Shape) []op {
	var curX, curY float64
	started := false
	line := func(x, y float64) {
		if started {
			ops = append(ops, op{kind: opLine, x0: float32(curX), y0: float32(curY), x1: float32(x), y1: float32(y), c: s.Color})
		}
		curX, curY, started = x, y, true
	}

	for _, e := range s.Path {
		switch e.Op {
		case render.OpMove:
			curX, curY, started = e.X, e.Y, true
		case render.OpLine:
			line(e.X, e.Y)
		case render.OpArc:
			if math.Abs(e.End-e.Start) >= 2*math.Pi-1e-9 {
				kind := opCircle
				if s.Kind == render.ShapeFill {
					kind = opDisc
				}
				ops = append(ops, op{kind: kind, x0: float32(e.X), y0: float32(e.Y), r: float32(e.Radius), c: s.Color})
				curX, curY, started = e.X+e.Radius*math.Cos(e.End), e.Y+e.Radius*math.Sin(e.End), true
				continue
			}
			n := max(1, int(math.Ceil(math.Abs(e.End-e.Start)/arcStep)))
			started = false
			for i := 0; i <= n; i++ {
				a := e.Start + (e.End-e.Start)*float64(i)/float64(n)
				line(e.X+e.Radius*math.Cos(a), e.Y+e.Radius*math.Sin(a))
			}
		}
	}
	return ops
}

// replay paints ops onto dst
func replay(dst *ebiten.Image, ops []op, lineWidth float32) {
	for _, o := range ops {
		switch o.kind {
		case opLine:
			vector.StrokeLine(dst, o.x0, o.y0, o.x1, o.y1, lineWidth, o.c, true)
		case opCircle:
			vector.StrokeCircle(dst, o.x0, o.y0, o.r, lineWidth, o.c, true)
		case opDisc:
			vector.DrawFilledCircle(dst, o.x0, o.y0, o.r, o.c, true)
		case opRect:
			vector.DrawFilledRect(dst, o.x0, o.y0, o.x1, o.y1, o.c, false)
		}
	}
}
