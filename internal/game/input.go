package game

import (
	"xrpointer/internal/camera"
	"xrpointer/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// readCameraInput maps WASD to walking. The view only turns while the right
// mouse button is held, leaving the cursor free for pointing.
func readCameraInput() camera.Input {
	in := camera.Input{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		in.MouseDelta = mgl32.Vec2{d.X, d.Y}
	}
	return in
}

// readControllerInput: J/L is the left stick, the arrow keys the right one,
// Q and E select.
func readControllerInput() sim.ControllerInput {
	axis := func(neg, pos int32) float32 {
		var v float32
		if rl.IsKeyDown(neg) {
			v--
		}
		if rl.IsKeyDown(pos) {
			v++
		}
		return v
	}
	return sim.ControllerInput{
		LeftStick:   axis(rl.KeyJ, rl.KeyL),
		RightStick:  axis(rl.KeyLeft, rl.KeyRight),
		LeftSelect:  rl.IsKeyDown(rl.KeyQ),
		RightSelect: rl.IsKeyDown(rl.KeyE),
	}
}
