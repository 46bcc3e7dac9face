package graph

import (
	"fmt"
	"image/color"
	"strings"
)

// Surface is the immediate-mode 2D drawing context a graph paints into.
// Coordinates are in surface pixels with the origin at the top left.
type Surface interface {
	Size() (width, height float64)
	ClearRect(x, y, width, height float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centred on (x, y) from start to end radians
	Arc(x, y, radius, start, end float64)
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	Stroke()
	Fill()
}

// Style is a fixed colour theme. Opacities computed by the graph are applied
// on top of the base colours' alpha.
type Style struct {
	Name       string
	Background color.RGBA
	NodeStroke color.RGBA
	NodeFill   color.RGBA
	Link       color.RGBA
	Label      color.RGBA
}

// LightStyle draws black on white
func LightStyle() Style {
	return Style{
		Name:       "light",
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		NodeStroke: color.RGBA{A: 0xff},
		NodeFill:   color.RGBA{A: 0xff},
		Link:       color.RGBA{A: 0xff},
		Label:      color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
	}
}

// DarkStyle draws light grey on near-black
func DarkStyle() Style {
	return Style{
		Name:       "dark",
		Background: color.RGBA{R: 0x12, G: 0x12, B: 0x14, A: 0xff},
		NodeStroke: color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
		NodeFill:   color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
		Link:       color.RGBA{R: 0xb0, G: 0xb0, B: 0xb8, A: 0xff},
		Label:      color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
	}
}

// StyleByName returns the theme called name
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "light":
		return LightStyle(), nil
	case "dark":
		return DarkStyle(), nil
	default:
		return Style{}, fmt.Errorf("unknown theme: %s", name)
	}
}

// fade scales the alpha of c by opacity, clamped to [0, 1]
func fade(c color.RGBA, opacity float64) color.NRGBA {
	opacity = max(0, min(1, opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}
