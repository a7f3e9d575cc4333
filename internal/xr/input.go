package xr

import (
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// InputEvents is the event surface a host raises for pointer input. Mouse
// style events drive non-VR mode; the XR session events bracket the period
// in which controller select events are delivered.
type InputEvents struct {
	// PointerMove carries the pointer in normalized device coordinates.
	PointerMove engine.EventWithArg[mgl32.Vec2]
	PointerDown engine.Event
	PointerUp   engine.Event

	SessionStart engine.Event
	SessionEnd   engine.Event
	SelectStart  engine.Event
	SelectEnd    engine.Event
}

func NewInputEvents() *InputEvents {
	return &InputEvents{}
}

// NDCFromClient maps a pixel position inside a w x h viewport to normalized
// device coordinates, +y up.
func NDCFromClient(x, y, w, h float32) mgl32.Vec2 {
	if w <= 0 || h <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{x/w*2 - 1, -(y/h)*2 + 1}
}
