package components

import (
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking down its owner's local -Z axis.
type Camera struct {
	engine.BaseComponent
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
	IsMain bool // If true, this is the active game camera
}

func NewCamera() *Camera {
	return &Camera{
		FOV:    45.0,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000.0,
	}
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	g := c.GetGameObject()
	if g == nil {
		return mgl32.Ident4()
	}
	return g.WorldMatrix().Inv()
}

// RayFromNDC returns the world-space ray through a point in normalized device
// coordinates, x and y in [-1, 1] with +y up.
func (c *Camera) RayFromNDC(ndc mgl32.Vec2) (origin, direction mgl32.Vec3) {
	g := c.GetGameObject()
	if g == nil {
		return mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}
	}
	origin = g.WorldPosition()
	inv := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
	p := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 0.5, 1})
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	direction = p.Vec3().Sub(origin)
	if direction.LenSqr() == 0 {
		return origin, g.WorldQuaternion().Rotate(mgl32.Vec3{0, 0, -1})
	}
	return origin, direction.Normalize()
}

// WorldToNDC projects a world point; ok is false behind the camera.
func (c *Camera) WorldToNDC(p mgl32.Vec3) (ndc mgl32.Vec3, ok bool) {
	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}
