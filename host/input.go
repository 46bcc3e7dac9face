package host

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TFMV/orbitgraph/graph"
	"github.com/TFMV/orbitgraph/physics"
)

// Input and cursor hooks, replaced in tests.
var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	setCursorShape       = ebiten.SetCursorShape
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	bit    graph.Buttons
}{
	{ebiten.MouseButtonLeft, graph.ButtonsPrimary},
	{ebiten.MouseButtonRight, graph.ButtonsSecondary},
	{ebiten.MouseButtonMiddle, graph.ButtonsAuxiliary},
}

// pollInput samples the mouse and the modifier keys for this frame
func pollInput() graph.InputState {
	x, y := cursorPosition()

	var held graph.Buttons
	for _, mb := range mouseButtons {
		if isMouseButtonPressed(mb.button) {
			held |= mb.bit
		}
	}

	ctrl := isKeyPressed(ebiten.KeyControl) || isKeyPressed(ebiten.KeyControlLeft) || isKeyPressed(ebiten.KeyControlRight) ||
		isKeyPressed(ebiten.KeyMeta)

	return graph.InputState{
		Position: physics.V(float64(x), float64(y)),
		Buttons:  held,
		Ctrl:     ctrl,
	}
}

// cursorFor picks the cursor shape for an interaction state
func cursorFor(state graph.InteractionState) ebiten.CursorShapeType {
	switch state {
	case graph.Hovering:
		return ebiten.CursorShapePointer
	case graph.Panning, graph.DraggingNode:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}
