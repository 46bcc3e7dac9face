package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"
)

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders the last frame as Scalable Vector Graphics (SVG)"
}

// Render replays the recorded frame as SVG paths
func (r *SVGRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	if scene.Frame == nil {
		return nil, ErrNoFrame
	}
	var buf bytes.Buffer
	width, height := scene.Frame.Size()
	background := "fill:" + cssColor(scene.Style.Background)

	canvas := svg.New(&buf)
	canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	if scene.Graph != nil && scene.Graph.Name != "" {
		canvas.Title(scene.Graph.Name)
	}
	canvas.Rect(0, 0, int(math.Ceil(width)), int(math.Ceil(height)), background)

	for _, shape := range scene.Frame.Shapes() {
		switch shape.Kind {
		case ShapeClear:
			x, y, w, h := shape.Rect[0], shape.Rect[1], shape.Rect[2], shape.Rect[3]
			canvas.Rect(int(x), int(y), int(math.Ceil(w)), int(math.Ceil(h)), background)
		case ShapeStroke:
			if shape.Color.A == 0 {
				continue
			}
			canvas.Path(pathData(shape.Path), fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%g",
				cssColor(shape.Color), alpha(shape.Color), options.LineWidth))
		case ShapeFill:
			if shape.Color.A == 0 {
				continue
			}
			canvas.Path(pathData(shape.Path), fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none",
				cssColor(shape.Color), alpha(shape.Color)))
		}
	}

	if options.ShowLabels && scene.Graph != nil {
		labelStyle := fmt.Sprintf("fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:middle",
			cssColor(scene.Style.Label), options.FontSize)
		for _, node := range scene.Graph.Nodes {
			if node.Label == "" {
				continue
			}
			y := node.Y + node.Radius + options.FontSize + 2
			canvas.Text(int(node.X), int(y), node.Label, labelStyle)
		}
	}

	if options.Timestamp {
		canvas.Text(5, int(height)-5, time.Now().Format("2006-01-02 15:04:05"),
			"fill:#808080;font-size:8px;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// pathData converts recorded path elements to SVG path syntax. Arcs follow
// canvas semantics: a line joins the current point to the arc start.
func pathData(path []PathElem) string {
	var d strings.Builder
	open := false
	for _, e := range path {
		switch e.Op {
		case OpMove:
			fmt.Fprintf(&d, "M%.2f %.2f ", e.X, e.Y)
			open = true
		case OpLine:
			cmd := "L"
			if !open {
				cmd = "M"
			}
			fmt.Fprintf(&d, "%s%.2f %.2f ", cmd, e.X, e.Y)
			open = true
		case OpArc:
			writeArc(&d, e, open)
			open = true
		}
	}
	return strings.TrimSpace(d.String())
}

func writeArc(d *strings.Builder, e PathElem, open bool) {
	sweep := e.End - e.Start
	point := func(angle float64) (float64, float64) {
		return e.X + e.Radius*math.Cos(angle), e.Y + e.Radius*math.Sin(angle)
	}

	sx, sy := point(e.Start)
	cmd := "L"
	if !open {
		cmd = "M"
	}
	fmt.Fprintf(d, "%s%.2f %.2f ", cmd, sx, sy)

	// a full turn cannot be a single SVG arc
	if math.Abs(sweep) >= 2*math.Pi-1e-9 {
		mx, my := point(e.Start + math.Pi)
		fmt.Fprintf(d, "A%.2f %.2f 0 1 1 %.2f %.2f ", e.Radius, e.Radius, mx, my)
		fmt.Fprintf(d, "A%.2f %.2f 0 1 1 %.2f %.2f Z ", e.Radius, e.Radius, sx, sy)
		return
	}

	large, dir := 0, 1
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep < 0 {
		dir = 0
	}
	ex, ey := point(e.End)
	fmt.Fprintf(d, "A%.2f %.2f 0 %d %d %.2f %.2f ", e.Radius, e.Radius, large, dir, ex, ey)
}
