package render

import (
	"image/color"
	"slices"
)

// PathOp is a path-building instruction
type PathOp int

const (
	OpMove PathOp = iota
	OpLine
	OpArc
)

// PathElem is one recorded path instruction. Radius, Start and End are only
// set for arcs.
type PathElem struct {
	Op     PathOp
	X, Y   float64
	Radius float64
	Start  float64
	End    float64
}

// ShapeKind tells a replaying backend what to do with a shape
type ShapeKind int

const (
	ShapeStroke ShapeKind = iota
	ShapeFill
	ShapeClear
)

// Shape is a painted path, or a cleared rectangle for ShapeClear
type Shape struct {
	Kind  ShapeKind
	Path  []PathElem
	Color color.NRGBA
	Rect  [4]float64 // x, y, width, height of a clear
}

// Recorder is an in-memory drawing surface. It keeps the shapes painted
// since the last full clear so a frame can be replayed by any backend.
type Recorder struct {
	width, height float64
	path          []PathElem
	stroke, fill  color.NRGBA
	shapes        []Shape
}

// NewRecorder creates a recorder of the given size
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

// Resize changes the surface size. The current frame is kept.
func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

// ClearRect drops every recorded shape when the rectangle covers the whole
// surface, and records a partial clear otherwise
func (r *Recorder) ClearRect(x, y, width, height float64) {
	if x <= 0 && y <= 0 && x+width >= r.width && y+height >= r.height {
		r.shapes = r.shapes[:0]
		return
	}
	r.shapes = append(r.shapes, Shape{Kind: ShapeClear, Rect: [4]float64{x, y, width, height}})
}

func (r *Recorder) BeginPath() {
	r.path = r.path[:0]
}

func (r *Recorder) MoveTo(x, y float64) {
	r.path = append(r.path, PathElem{Op: OpMove, X: x, Y: y})
}

func (r *Recorder) LineTo(x, y float64) {
	r.path = append(r.path, PathElem{Op: OpLine, X: x, Y: y})
}

func (r *Recorder) Arc(x, y, radius, start, end float64) {
	r.path = append(r.path, PathElem{Op: OpArc, X: x, Y: y, Radius: radius, Start: start, End: end})
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.stroke = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *Recorder) Stroke() {
	r.paint(ShapeStroke, r.stroke)
}

func (r *Recorder) Fill() {
	r.paint(ShapeFill, r.fill)
}

func (r *Recorder) paint(kind ShapeKind, c color.NRGBA) {
	if len(r.path) == 0 {
		return
	}
	r.shapes = append(r.shapes, Shape{Kind: kind, Path: slices.Clone(r.path), Color: c})
}

// Shapes returns the shapes of the current frame in paint order
func (r *Recorder) Shapes() []Shape {
	return slices.Clone(r.shapes)
}
