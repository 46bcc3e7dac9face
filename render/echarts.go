package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
)

// EChartsRenderer outputs an interactive HTML page
type EChartsRenderer struct{}

// Name returns the name of the renderer
func (r *EChartsRenderer) Name() string {
	return "ECharts Renderer"
}

// Description returns a description of the renderer
func (r *EChartsRenderer) Description() string {
	return "Renders the graph snapshot as a standalone go-echarts HTML page with pinned positions"
}

// Render places every node at its simulated position and disables the
// chart's own force layout
func (r *EChartsRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	g := scene.Graph
	if g == nil {
		return nil, fmt.Errorf("scene has no graph snapshot")
	}

	names := make(map[uuid.UUID]string, len(g.Nodes))
	seen := make(map[string]int, len(g.Nodes))
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		name := n.Label
		if name == "" {
			name = n.ID.String()
		}
		// echarts identifies nodes by name
		key := name
		if count := seen[key]; count > 0 {
			name = fmt.Sprintf("%s (%d)", name, count+1)
		}
		seen[key]++
		names[n.ID] = name

		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			X:          float32(n.X),
			Y:          float32(n.Y),
			Value:      float32(n.Weight),
			SymbolSize: math.Round(n.Radius * 2),
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, opts.GraphLink{Source: names[e.Source], Target: names[e.Target]})
	}

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       g.Name,
			Width:           fmt.Sprintf("%.0fpx", options.Width),
			Height:          fmt.Sprintf("%.0fpx", options.Height),
			BackgroundColor: cssColor(scene.Style.Background),
		}),
		charts.WithTitleOpts(opts.Title{Title: g.Name}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	chart.AddSeries(g.Name, nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:    "none",
			Roam:      opts.Bool(true),
			Draggable: opts.Bool(false),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(options.ShowLabels),
			Color:    cssColor(scene.Style.Label),
			Position: "bottom",
		}),
	)

	page := components.NewPage()
	page.AddCharts(chart)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}
