// Package render turns a laid-out orbit graph into files: vector and raster
// frames replayed from a recorded surface, and structured exports of the
// graph snapshot.
package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	"github.com/TFMV/orbitgraph/graph"
	"github.com/TFMV/orbitgraph/models"
	"github.com/TFMV/orbitgraph/physics"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format     string         // Output format (svg, png, ascii, json, dot, html)
	Width      float64        // Width of the output
	Height     float64        // Height of the output
	Theme      string         // light or dark
	ShowLabels bool           // Show node labels
	Timestamp  bool           // Include generation time in the output
	FontSize   float64        // Font size for labels
	LineWidth  float64        // Stroke width for circles and links
	Tuning     physics.Tuning // Force constants for the layout run
	Seed       int64          // Seed for noise and spawn offsets
	MaxTicks   int            // Cap on layout ticks
	Timeout    time.Duration  // Cap on layout wall time
}

// Scene is what a renderer draws: the last recorded frame and the snapshot
// it was taken from
type Scene struct {
	Frame *Recorder
	Graph *models.Graph
	Style graph.Style
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render encodes the scene using the provided options
	Render(scene Scene, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// ErrNoFrame is returned by frame-based renderers given a scene without a
// recorded frame
var ErrNoFrame = errors.New("scene has no recorded frame")

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		Theme:      "light",
		ShowLabels: true,
		Timestamp:  false,
		FontSize:   10,
		LineWidth:  1,
		Tuning:     physics.DefaultTuning(),
		Seed:       1,
		MaxTicks:   2000,
		Timeout:    30 * time.Second,
	}
}

var renderers = map[string]func() Renderer{
	"svg":   func() Renderer { return &SVGRenderer{} },
	"png":   func() Renderer { return &PNGRenderer{} },
	"ascii": func() Renderer { return &ASCIIRenderer{} },
	"json":  func() Renderer { return &JSONRenderer{} },
	"dot":   func() Renderer { return &DOTRenderer{} },
	"html":  func() Renderer { return &EChartsRenderer{} },
}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	newRenderer, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return newRenderer(), nil
}

// Formats lists the supported output formats
func Formats() []string {
	formats := make([]string, 0, len(renderers))
	for f := range renderers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Result is the outcome of Generate
type Result struct {
	Data   []byte
	Ticks  int
	Stable bool
}

// Generate lays out seed headlessly and renders it. The layout stops when
// stable, after options.MaxTicks, or when options.Timeout or ctx expire; an
// expired timeout is not an error, the partial layout is rendered.
func Generate(ctx context.Context, seed *models.Seed, options *OutputOptions) (*Result, error) {
	if options == nil {
		options = NewDefaultOptions("svg")
	}
	renderer, err := GetRenderer(options.Format)
	if err != nil {
		return nil, err
	}
	style, err := graph.StyleByName(options.Theme)
	if err != nil {
		return nil, err
	}

	frame := NewRecorder(options.Width, options.Height)
	g, err := graph.FromSeed(frame, nil, seed, &graph.Options{
		Tuning:  options.Tuning,
		Style:   style,
		Source:  physics.NewSource(uint64(options.Seed)),
		Spawner: physics.NewSimplexSpawner(options.Seed, options.Tuning.SpawnRadius),
	})
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	defer g.Destroy()

	layoutCtx := ctx
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		layoutCtx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	settled, err := graph.Settle(layoutCtx, g, graph.SettleOptions{MaxTicks: options.MaxTicks, Draw: true})
	if err != nil && !(errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil) {
		return nil, fmt.Errorf("layout: %w", err)
	}
	g.Draw()

	data, err := renderer.Render(Scene{Frame: frame, Graph: g.Snapshot(), Style: style}, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", renderer.Name(), err)
	}
	return &Result{Data: data, Ticks: settled.Ticks, Stable: settled.Stable}, nil
}

// cssColor formats c as #rrggbb, ignoring alpha
func cssColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// alpha returns the opacity of c in [0, 1]
func alpha(c color.NRGBA) float64 {
	return float64(c.A) / 0xff
}

// findEndpoints resolves an edge to its two nodes
func findEndpoints(g *models.Graph, edge models.Edge) (*models.Node, *models.Node, bool) {
	source, err := g.FindNodeByID(edge.Source)
	if err != nil {
		return nil, nil, false
	}
	target, err := g.FindNodeByID(edge.Target)
	if err != nil {
		return nil, nil, false
	}
	return source, target, true
}
