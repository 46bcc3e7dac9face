// Package host runs an orbit graph in a desktop window. Ebitengine drives
// the frame loop: every update polls the mouse into pointer events, ticks
// the simulation and every draw replays the recorded frame onto the screen.
package host

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/TFMV/orbitgraph/graph"
	"github.com/TFMV/orbitgraph/models"
	"github.com/TFMV/orbitgraph/render"
)

// Options configures the window
type Options struct {
	Width, Height int
	Title         string
	TPS           int
	OpenLinks     bool // open https://<label> on click, otherwise print it

	Graph  *graph.Options
	Logger *slog.Logger
	Out    io.Writer // where printed links go
}

// Game implements ebiten.Game around one graph
type Game struct {
	ctx    context.Context
	graph  *graph.Graph
	bus    *graph.PointerBus
	frame  *render.Recorder
	style  graph.Style
	prev   graph.InputState
	opts   Options
	logger *slog.Logger
	open   func(string) error
}

// New builds the graph for seed and wires it to the window's pointer. The
// game stops once ctx is done.
func New(ctx context.Context, seed *models.Seed, opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	gopts := graph.DefaultOptions()
	if opts.Graph != nil {
		copied := *opts.Graph
		gopts = &copied
	}

	g := &Game{
		ctx:    ctx,
		bus:    graph.NewPointerBus(),
		frame:  render.NewRecorder(float64(opts.Width), float64(opts.Height)),
		opts:   opts,
		logger: opts.Logger,
		open:   openBrowser,
	}
	gopts.OnNodeClick = g.nodeClicked
	gopts.OnNodeAltClick = g.nodeAltClicked

	gr, err := graph.FromSeed(g.frame, g.bus, seed, gopts)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	g.graph = gr
	g.style = gr.Style()

	g.logger.Info("graph ready", "name", seed.Name, "nodes", len(gr.Nodes()), "links", len(gr.Links()))
	return g, nil
}

// Graph returns the simulated graph
func (g *Game) Graph() *graph.Graph { return g.graph }

func (g *Game) nodeClicked(ev graph.PointerEvent, n *graph.Node) {
	link := LinkFor(n.Label())
	if link == "" {
		return
	}
	if !g.opts.OpenLinks {
		fmt.Fprintln(g.opts.Out, link)
		return
	}
	g.logger.Info("opening link", "url", link)
	if err := g.open(link); err != nil {
		g.logger.Warn("could not open link", "url", link, "error", err)
	}
}

func (g *Game) nodeAltClicked(ev graph.PointerEvent, n *graph.Node) {
	if link := LinkFor(n.Label()); link != "" {
		fmt.Fprintln(g.opts.Out, link)
	}
}

// Update advances one frame: input first, then physics
func (g *Game) Update() error {
	if g.ctx.Err() != nil || isKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	cur := pollInput()
	g.bus.Feed(g.prev, cur)
	g.prev = cur

	g.graph.Tick()
	setCursorShape(cursorFor(g.graph.State()))
	return nil
}

// Draw renders the graph and the hovered node's label
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.style.Background)

	g.graph.Draw()
	replay(screen, plan(g.frame.Shapes(), color.NRGBAModel.Convert(g.style.Background).(color.NRGBA)), 1)

	if n := g.graph.Hovered(); n != nil && n.Label() != "" {
		p := n.Position()
		ebitenutil.DebugPrintAt(screen, n.Label(), int(p.X+n.Radius())+4, int(p.Y)-8)
	}
}

// Layout follows the window size so the graph always fills it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.frame.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed, Escape is pressed or
// ctx is done
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if g.opts.TPS > 0 {
		ebiten.SetTPS(g.opts.TPS)
	}
	defer g.graph.Destroy()

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
