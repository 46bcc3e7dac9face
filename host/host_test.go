package host

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TFMV/orbitgraph/graph"
	"github.com/TFMV/orbitgraph/models"
	"github.com/TFMV/orbitgraph/physics"
	"github.com/TFMV/orbitgraph/render"
)

type fixedSpawner physics.Vector

func (f fixedSpawner) Offset(int) physics.Vector { return physics.Vector(f) }

// fakeInput replaces the ebiten input hooks for one test
type fakeInput struct {
	x, y    int
	buttons map[ebiten.MouseButton]bool
	keys    map[ebiten.Key]bool
	cursor  ebiten.CursorShapeType
}

func stubInput(t *testing.T) *fakeInput {
	t.Helper()
	in := &fakeInput{
		buttons: map[ebiten.MouseButton]bool{},
		keys:    map[ebiten.Key]bool{},
	}

	origPos, origButton, origKey, origCursor := cursorPosition, isMouseButtonPressed, isKeyPressed, setCursorShape
	t.Cleanup(func() {
		cursorPosition, isMouseButtonPressed, isKeyPressed, setCursorShape = origPos, origButton, origKey, origCursor
	})

	cursorPosition = func() (int, int) { return in.x, in.y }
	isMouseButtonPressed = func(b ebiten.MouseButton) bool { return in.buttons[b] }
	isKeyPressed = func(k ebiten.Key) bool { return in.keys[k] }
	setCursorShape = func(s ebiten.CursorShapeType) { in.cursor = s }
	return in
}

func testSeed() *models.Seed {
	return &models.Seed{
		Name:       "example.com",
		Main:       models.SeedNode{Label: "example.com", Weight: 1},
		Satellites: []models.SeedNode{{Label: "go.dev", Weight: 4}},
	}
}

func newTestGame(t *testing.T, ctx context.Context, openLinks bool) (*Game, *bytes.Buffer, *[]string) {
	t.Helper()
	gopts := graph.DefaultOptions()
	gopts.Source = physics.NewSource(1)
	gopts.Spawner = fixedSpawner(physics.V(100, 0))

	var out bytes.Buffer
	g, err := New(ctx, testSeed(), Options{
		Width:     800,
		Height:    600,
		OpenLinks: openLinks,
		Graph:     gopts,
		Out:       &out,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var opened []string
	g.open = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	return g, &out, &opened
}

// clickSatellite hovers, presses and releases over the satellite
func clickSatellite(t *testing.T, g *Game, in *fakeInput) {
	t.Helper()
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	sat := g.Graph().Nodes()[1]
	p := sat.Position()
	in.x, in.y = int(math.Round(p.X)), int(math.Round(p.Y))
	in.buttons[ebiten.MouseButtonLeft] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !sat.Hovered() {
		t.Fatal("expected the satellite to be hovered")
	}
	if sat.Position() != p {
		t.Error("a held node must not move")
	}
	if in.cursor != ebiten.CursorShapeMove {
		t.Errorf("expected move cursor while held, got %v", in.cursor)
	}

	in.buttons[ebiten.MouseButtonLeft] = false
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if in.cursor != ebiten.CursorShapePointer {
		t.Errorf("expected pointer cursor over a node, got %v", in.cursor)
	}
}

func TestClickOpensLink(t *testing.T) {
	in := stubInput(t)
	g, out, opened := newTestGame(t, context.Background(), true)

	clickSatellite(t, g, in)

	if len(*opened) != 1 || (*opened)[0] != "https://go.dev" {
		t.Errorf("expected go.dev to be opened once, got %v", *opened)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestCtrlClickPrintsLink(t *testing.T) {
	in := stubInput(t)
	in.keys[ebiten.KeyControl] = true
	g, out, opened := newTestGame(t, context.Background(), true)

	clickSatellite(t, g, in)

	if len(*opened) != 0 {
		t.Errorf("ctrl-click must not open, got %v", *opened)
	}
	if out.String() != "https://go.dev\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestClickPrintsWhenLinksDisabled(t *testing.T) {
	in := stubInput(t)
	g, out, opened := newTestGame(t, context.Background(), false)

	clickSatellite(t, g, in)

	if len(*opened) != 0 || out.String() != "https://go.dev\n" {
		t.Errorf("expected the link printed only, got %v %q", *opened, out.String())
	}
}

func TestUpdateStops(t *testing.T) {
	in := stubInput(t)
	ctx, cancel := context.WithCancel(context.Background())
	g, _, _ := newTestGame(t, ctx, false)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	cancel()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("expected termination after cancel, got %v", err)
	}

	g, _, _ = newTestGame(t, context.Background(), false)
	in.keys[ebiten.KeyEscape] = true
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("expected termination on escape, got %v", err)
	}
}

func TestLayoutResizesFrame(t *testing.T) {
	stubInput(t)
	g, _, _ := newTestGame(t, context.Background(), false)

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("unexpected layout %dx%d", w, h)
	}
	if fw, fh := g.frame.Size(); fw != 1024 || fh != 768 {
		t.Errorf("frame not resized: %vx%v", fw, fh)
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(context.Background(), testSeed(), Options{Width: 0, Height: 600}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestPlan(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	bg := color.NRGBA{A: 0xff}
	shapes := []render.Shape{
		{Kind: render.ShapeStroke, Color: red, Path: []render.PathElem{
			{Op: render.OpMove, X: 0, Y: 0},
			{Op: render.OpLine, X: 10, Y: 0},
			{Op: render.OpLine, X: 10, Y: 10},
		}},
		{Kind: render.ShapeStroke, Color: red, Path: []render.PathElem{
			{Op: render.OpArc, X: 50, Y: 50, Radius: 5, Start: 0, End: 2 * math.Pi},
		}},
		{Kind: render.ShapeFill, Color: red, Path: []render.PathElem{
			{Op: render.OpArc, X: 50, Y: 50, Radius: 5, Start: 0, End: 2 * math.Pi},
		}},
		{Kind: render.ShapeStroke, Color: red, Path: []render.PathElem{
			{Op: render.OpArc, X: 0, Y: 0, Radius: 1, Start: 0, End: math.Pi / 2},
		}},
		{Kind: render.ShapeClear, Rect: [4]float64{1, 2, 3, 4}},
	}

	ops := plan(shapes, bg)

	want := []opKind{opLine, opLine, opCircle, opDisc, opLine, opLine, opLine, opLine, opLine, opLine, opLine, opLine, opRect}
	if len(ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(ops))
	}
	for i, k := range want {
		if ops[i].kind != k {
			t.Errorf("op %d: expected kind %d, got %d", i, k, ops[i].kind)
		}
	}
	if ops[2].r != 5 || ops[2].x0 != 50 {
		t.Errorf("unexpected circle %+v", ops[2])
	}
	last := ops[len(ops)-1]
	if last.c != bg || last.x1 != 3 || last.y1 != 4 {
		t.Errorf("unexpected clear %+v", last)
	}
	arcEnd := ops[11]
	if math.Abs(float64(arcEnd.x1)) > 1e-6 || math.Abs(float64(arcEnd.y1)-1) > 1e-6 {
		t.Errorf("arc should end at (0, 1), got (%v, %v)", arcEnd.x1, arcEnd.y1)
	}
}

func TestLinkFor(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"go.dev", "https://go.dev"},
		{" example.com ", "https://example.com"},
		{"pkg.go.dev/net/http", "https://pkg.go.dev/net/http"},
		{"", ""},
		{"two words", ""},
	}
	for _, tt := range tests {
		if got := LinkFor(tt.label); got != tt.want {
			t.Errorf("LinkFor(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestCursorFor(t *testing.T) {
	if cursorFor(graph.Idle) != ebiten.CursorShapeDefault ||
		cursorFor(graph.Hovering) != ebiten.CursorShapePointer ||
		cursorFor(graph.Panning) != ebiten.CursorShapeMove {
		t.Error("unexpected cursor mapping")
	}
}
