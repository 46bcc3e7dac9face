package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TFMV/orbitgraph/models"
)

// JSONRenderer outputs the graph snapshot as JSON
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders the graph snapshot as JSON data for machine consumption"
}

type jsonDocument struct {
	Graph    *models.Graph  `json:"graph"`
	Metadata map[string]any `json:"metadata"`
}

// Render marshals the snapshot together with rendering metadata
func (r *JSONRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	if scene.Graph == nil {
		return nil, fmt.Errorf("scene has no graph snapshot")
	}
	doc := jsonDocument{
		Graph: scene.Graph,
		Metadata: map[string]any{
			"width":       options.Width,
			"height":      options.Height,
			"theme":       scene.Style.Name,
			"nodeCount":   len(scene.Graph.Nodes),
			"edgeCount":   len(scene.Graph.Edges),
			"totalWeight": scene.Graph.TotalWeight(),
		},
	}
	if options.Timestamp {
		doc.Metadata["timestamp"] = time.Now().Format(time.RFC3339)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DOTRenderer outputs Graphviz DOT format
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders the graph in Graphviz DOT format with pinned positions (use neato -n)"
}

// Render creates a DOT representation of the graph
func (r *DOTRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	g := scene.Graph
	if g == nil {
		return nil, fmt.Errorf("scene has no graph snapshot")
	}
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "digraph %s {\n", dotQuote(g.Name))
	fmt.Fprintf(&buf, "  graph [bgcolor=%q, size=\"%.2f,%.2f\"];\n",
		cssColor(scene.Style.Background), options.Width/72.0, options.Height/72.0)
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, fontname=\"Arial\", fontsize=%g, color=%q];\n",
		options.FontSize, cssColor(scene.Style.NodeStroke))
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q];\n", cssColor(scene.Style.Link))

	for _, node := range g.Nodes {
		label := node.Label
		if label == "" {
			label = node.ID.String()
		}
		// DOT y grows upwards
		fmt.Fprintf(&buf, "  %q [label=%s, width=%.3f, pos=\"%.2f,%.2f!\"",
			node.ID.String(), dotQuote(label), node.Radius*2/72.0, node.X, g.Height-node.Y)
		if node.Main {
			buf.WriteString(", penwidth=2")
		}
		buf.WriteString("];\n")
	}

	for _, edge := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [penwidth=%.2f];\n",
			edge.Source.String(), edge.Target.String(), options.LineWidth*(0.5+edge.Opacity))
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// dotQuote returns s as a double-quoted DOT string
func dotQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
