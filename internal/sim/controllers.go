package sim

import (
	"xrpointer/internal/engine"
	"xrpointer/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Controller poses relative to the player, roughly where hands rest.
var (
	leftGrip  = mgl32.Vec3{-0.25, 1.3, -0.25}
	rightGrip = mgl32.Vec3{0.25, 1.3, -0.25}
)

const handPitch = -35 // degrees, negative tilts the ray down

// ControllerInput is one frame of simulated controller input.
type ControllerInput struct {
	// Sticks are the horizontal thumbstick axes, -1 to 1.
	LeftStick, RightStick   float32
	LeftSelect, RightSelect bool
}

// Controllers simulates two tracked controllers attached to the player so
// the VR code paths can be driven from a keyboard.
type Controllers struct {
	Holder *xr.HandHolder

	events    *xr.InputEvents
	log       *zap.Logger
	pads      [2]*xr.Gamepad
	sources   [2]xr.InputSource
	connected bool
	held      [2]bool
}

func NewControllers(player *engine.GameObject, events *xr.InputEvents, log *zap.Logger) *Controllers {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controllers{
		Holder: xr.NewHandHolder(player, 2),
		events: events,
		log:    log,
	}
	pitch := mgl32.QuatRotate(mgl32.DegToRad(handPitch), mgl32.Vec3{1, 0, 0})
	for i, pos := range [2]mgl32.Vec3{leftGrip, rightGrip} {
		ctrl := c.Holder.Controllers[i]
		ctrl.Transform.Position = pos
		ctrl.Transform.Rotation = pitch
		c.pads[i] = &xr.Gamepad{Axes: make([]float32, 4), Buttons: make([]xr.Button, 1)}
	}
	c.sources[0] = xr.InputSource{Handedness: xr.HandednessLeft, TargetRayMode: xr.TargetRayTrackedPointer, Gamepad: c.pads[0]}
	c.sources[1] = xr.InputSource{Handedness: xr.HandednessRight, TargetRayMode: xr.TargetRayTrackedPointer, Gamepad: c.pads[1]}
	return c
}

// Connect starts a simulated XR session with both hands tracked.
func (c *Controllers) Connect() {
	if c.connected {
		return
	}
	c.connected = true
	for i, src := range c.sources {
		c.Holder.Connected(c.Holder.Controllers[i], src)
	}
	c.events.SessionStart.Invoke()
	c.log.Info("simulated controllers connected")
}

// Disconnect releases held selects and ends the session.
func (c *Controllers) Disconnect() {
	if !c.connected {
		return
	}
	c.Apply(ControllerInput{})
	c.Select()
	for _, src := range c.sources {
		c.Holder.Disconnected(src)
	}
	c.connected = false
	c.events.SessionEnd.Invoke()
	c.log.Info("simulated controllers disconnected")
}

func (c *Controllers) Connected() bool { return c.connected }

func (c *Controllers) Hands() xr.Hands { return c.Holder.Hands() }

// Apply writes input into the gamepads. The stick goes to axis 2, where
// thumbsticks report on xr-standard controllers.
func (c *Controllers) Apply(in ControllerInput) {
	for i, v := range [2]struct {
		stick   float32
		pressed bool
	}{{in.LeftStick, in.LeftSelect}, {in.RightStick, in.RightSelect}} {
		pad := c.pads[i]
		pad.Axes[2] = clamp(v.stick)
		pad.Buttons[0] = xr.Button{Pressed: v.pressed, Touched: v.pressed}
		if v.pressed {
			pad.Buttons[0].Value = 1
		}
	}
}

// Select raises select start and end events for button edges since the last
// call. Call it after the coordinator has ticked so the pressing hand is
// already the active one.
func (c *Controllers) Select() {
	if !c.connected {
		return
	}
	for i, pad := range c.pads {
		pressed := pad.Buttons[0].Pressed
		switch {
		case pressed && !c.held[i]:
			c.events.SelectStart.Invoke()
		case !pressed && c.held[i]:
			c.events.SelectEnd.Invoke()
		}
		c.held[i] = pressed
	}
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
