package camera

import (
	"math"

	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89 * math.Pi / 180

// Input is one frame of desktop controls.
type Input struct {
	MouseDelta                 mgl32.Vec2
	Forward, Back, Left, Right bool
}

// FPSCamera drives a desktop player rig: mouse X turns the body, mouse Y
// pitches the head, WASD walks in the body's heading.
//
// The body yaw is re-read every frame, so snap turns and teleports applied
// to the body between frames are kept.
type FPSCamera struct {
	Body *engine.GameObject
	Head *engine.GameObject

	Pitch     float32 // radians, positive looks up
	MoveSpeed float32 // units per second
	LookSpeed float32 // radians per pixel
}

func New(body, head *engine.GameObject) *FPSCamera {
	return &FPSCamera{
		Body:      body,
		Head:      head,
		MoveSpeed: 4.0,
		LookSpeed: 0.0025,
	}
}

func (c *FPSCamera) Update(deltaTime float32, in Input) {
	yaw := c.Body.Yaw() - in.MouseDelta.X()*c.LookSpeed
	c.Body.SetYaw(yaw)

	c.Pitch -= in.MouseDelta.Y() * c.LookSpeed
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	if c.Head != nil {
		c.Head.Transform.Rotation = mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	}

	forward, right := Directions(yaw)
	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Back {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	// Normalize diagonal movement so you don't go faster diagonally
	if move.LenSqr() > 0 {
		move = move.Normalize()
	}
	c.Body.Transform.Position = c.Body.Transform.Position.Add(move.Mul(c.MoveSpeed * deltaTime))
}

// Directions returns the horizontal forward (-Z at zero yaw) and right
// vectors for a heading.
func Directions(yaw float32) (forward, right mgl32.Vec3) {
	s, co := float32(math.Sin(float64(yaw))), float32(math.Cos(float64(yaw)))
	forward = mgl32.Vec3{-s, 0, -co}
	right = mgl32.Vec3{co, 0, -s}
	return
}
