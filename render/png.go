package render

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"git.sr.ht/~sbinet/gg"
)

// PNGRenderer rasterizes the last frame
type PNGRenderer struct{}

// Name returns the name of the renderer
func (r *PNGRenderer) Name() string {
	return "PNG Renderer"
}

// Description returns a description of the renderer
func (r *PNGRenderer) Description() string {
	return "Renders the last frame as an anti-aliased PNG image"
}

// Render replays the recorded frame on a gg context
func (r *PNGRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	if scene.Frame == nil {
		return nil, ErrNoFrame
	}
	width, height := scene.Frame.Size()
	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))

	dc.SetColor(scene.Style.Background)
	dc.Clear()
	dc.SetLineWidth(options.LineWidth)

	for _, shape := range scene.Frame.Shapes() {
		switch shape.Kind {
		case ShapeClear:
			dc.SetColor(scene.Style.Background)
			dc.DrawRectangle(shape.Rect[0], shape.Rect[1], shape.Rect[2], shape.Rect[3])
			dc.Fill()
		case ShapeStroke, ShapeFill:
			if shape.Color.A == 0 {
				continue
			}
			tracePath(dc, shape.Path)
			dc.SetColor(shape.Color)
			if shape.Kind == ShapeStroke {
				dc.Stroke()
			} else {
				dc.Fill()
			}
		}
	}

	if options.ShowLabels && scene.Graph != nil {
		dc.SetColor(scene.Style.Label)
		for _, node := range scene.Graph.Nodes {
			if node.Label == "" {
				continue
			}
			dc.DrawStringAnchored(node.Label, node.X, node.Y+node.Radius+options.FontSize, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func tracePath(dc *gg.Context, path []PathElem) {
	dc.NewSubPath()
	for _, e := range path {
		switch e.Op {
		case OpMove:
			dc.MoveTo(e.X, e.Y)
		case OpLine:
			dc.LineTo(e.X, e.Y)
		case OpArc:
			dc.DrawArc(e.X, e.Y, e.Radius, e.Start, e.End)
		}
	}
}
