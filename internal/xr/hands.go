package xr

import (
	"strconv"

	"xrpointer/internal/engine"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

type Button struct {
	Pressed bool
	Touched bool
	Value   float32
}

// Gamepad is one controller's input snapshot.
type Gamepad struct {
	Axes    []float32
	Buttons []Button
}

// Quiet reports whether every axis is exactly zero and no button is pressed.
func (g *Gamepad) Quiet() bool {
	for _, v := range g.Axes {
		if v != 0 {
			return false
		}
	}
	for _, b := range g.Buttons {
		if b.Pressed {
			return false
		}
	}
	return true
}

// Hands is the per-frame state of both controllers. Nil fields are
// untracked or disconnected.
type Hands struct {
	Left, Right               *engine.GameObject
	LeftGamepad, RightGamepad *Gamepad
}

func (h Hands) Gamepad(side Side) *Gamepad {
	if side == Left {
		return h.LeftGamepad
	}
	return h.RightGamepad
}

func (h Hands) Origin(side Side) *engine.GameObject {
	if side == Left {
		return h.Left
	}
	return h.Right
}

type HandSource interface {
	Hands() Hands
}

// Input source fields as reported by the XR runtime.
const (
	TargetRayTrackedPointer = "tracked-pointer"
	HandednessLeft          = "left"
	HandednessRight         = "right"
)

type InputSource struct {
	Handedness    string
	TargetRayMode string
	Gamepad       *Gamepad
}

// HandHolder tracks which controller object is which hand from the
// runtime's connect and disconnect notifications.
type HandHolder struct {
	hands       Hands
	Controllers []*engine.GameObject
}

// NewHandHolder creates n controller objects under container, which is
// usually the player rig.
func NewHandHolder(container *engine.GameObject, n int) *HandHolder {
	h := &HandHolder{}
	for i := 0; i < n; i++ {
		c := engine.NewGameObject("controller" + strconv.Itoa(i))
		if container != nil {
			container.AddChild(c)
		}
		h.Controllers = append(h.Controllers, c)
	}
	return h
}

// Connected assigns controller to the source's hand. Only tracked-pointer
// sources are considered.
func (h *HandHolder) Connected(controller *engine.GameObject, src InputSource) {
	if src.TargetRayMode != TargetRayTrackedPointer {
		return
	}
	switch src.Handedness {
	case HandednessLeft:
		h.hands.Left = controller
		h.hands.LeftGamepad = src.Gamepad
	case HandednessRight:
		h.hands.Right = controller
		h.hands.RightGamepad = src.Gamepad
	}
}

func (h *HandHolder) Disconnected(src InputSource) {
	if src.TargetRayMode != TargetRayTrackedPointer {
		return
	}
	switch src.Handedness {
	case HandednessLeft:
		h.hands.Left = nil
		h.hands.LeftGamepad = nil
	case HandednessRight:
		h.hands.Right = nil
		h.hands.RightGamepad = nil
	}
}

func (h *HandHolder) Hands() Hands { return h.hands }
