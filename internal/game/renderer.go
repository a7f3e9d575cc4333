package game

import (
	"xrpointer/internal/components"
	"xrpointer/internal/engine"
	"xrpointer/internal/world"
	"xrpointer/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const lineRadius = 0.004

// Renderer draws scene colliders with their material colors and the
// pointer cues. Objects outside the view frustum are skipped.
type Renderer struct {
	frustum world.Frustum
	// Drawn and Culled count objects in the last frame.
	Drawn, Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// raylibCamera builds the raylib camera for an engine camera, which looks
// down its local -Z.
func raylibCamera(cam *components.Camera) rl.Camera3D {
	g := cam.GetGameObject()
	pos := g.WorldPosition()
	q := g.WorldQuaternion()
	return rl.Camera3D{
		Position:   vec(pos),
		Target:     vec(pos.Add(q.Rotate(mgl32.Vec3{0, 0, -1}))),
		Up:         vec(q.Rotate(mgl32.Vec3{0, 1, 0})),
		Fovy:       cam.FOV,
		Projection: rl.CameraPerspective,
	}
}

// DrawScene draws every visible object of the scene. Call inside BeginMode3D.
func (r *Renderer) DrawScene(scene *engine.Scene, cam *components.Camera) {
	r.frustum = world.ExtractFrustum(cam.ProjectionMatrix().Mul4(cam.ViewMatrix()))
	r.Drawn, r.Culled = 0, 0
	for _, g := range scene.GameObjects {
		r.drawObject(g)
	}
}

func (r *Renderer) drawObject(g *engine.GameObject) {
	if !g.Visible {
		return
	}
	if center, radius, ok := world.Bounds(g); ok {
		if r.frustum.ContainsSphere(center, radius) {
			r.drawColliders(g)
			r.Drawn++
		} else {
			r.Culled++
		}
	}
	for _, child := range g.Children {
		r.drawObject(child)
	}
}

func (r *Renderer) drawColliders(g *engine.GameObject) {
	color := materialColor(world.MaterialOf(g))
	m := g.WorldMatrix()
	rl.PushMatrix()
	rl.MultMatrixf(m[:])
	for _, c := range g.Components() {
		switch col := c.(type) {
		case *components.BoxCollider:
			rl.DrawCubeV(vec(col.Offset), vec(col.Size), color)
			rl.DrawCubeWiresV(vec(col.Offset), vec(col.Size), rl.DarkGray)
		case *components.SphereCollider:
			rl.DrawSphere(vec(col.Offset), col.Radius, color)
		case *components.MeshCollider:
			for _, t := range col.Triangles {
				rl.DrawTriangle3D(vec(t.V0), vec(t.V1), vec(t.V2), color)
				if col.DoubleSided {
					rl.DrawTriangle3D(vec(t.V0), vec(t.V2), vec(t.V1), color)
				}
			}
		}
	}
	rl.PopMatrix()
}

// DrawPointer draws one session's line, ball and teleport marker.
func (r *Renderer) DrawPointer(s *xr.Session) {
	if line := s.PointerLine(); line.Object.VisibleInHierarchy() {
		color := rl.White
		if line.Hit() {
			color = rl.SkyBlue
		}
		m := line.Object.WorldMatrix()
		rl.PushMatrix()
		rl.MultMatrixf(m[:])
		rl.DrawCylinderEx(rl.Vector3{}, rl.Vector3{Y: 1}, lineRadius, lineRadius, 6, color)
		rl.PopMatrix()
	}

	if ball := s.PointerBall().Object; ball.VisibleInHierarchy() {
		rl.DrawSphere(vec(ball.WorldPosition()), xr.PointerBallRadius*ball.WorldScale().X(), rl.SkyBlue)
	}

	if marker := s.TeleportMarker().Object; marker.VisibleInHierarchy() {
		pos := marker.WorldPosition()
		rl.DrawCylinder(vec(pos), xr.TeleportMarkerRadius, xr.TeleportMarkerRadius, xr.TeleportMarkerHeight, 24, rl.Fade(rl.SkyBlue, 0.5))
		tip := pos.Add(marker.WorldDirection().Mul(xr.TeleportMarkerRadius * 1.6))
		rl.DrawLine3D(vec(pos.Add(mgl32.Vec3{0, xr.TeleportMarkerHeight, 0})), vec(tip.Add(mgl32.Vec3{0, xr.TeleportMarkerHeight, 0})), rl.DarkBlue)
	}
}

// DrawControllers draws tracked controllers as small boxes.
func (r *Renderer) DrawControllers(h xr.Hands) {
	for _, c := range []*engine.GameObject{h.Left, h.Right} {
		if c == nil {
			continue
		}
		m := c.WorldMatrix()
		rl.PushMatrix()
		rl.MultMatrixf(m[:])
		rl.DrawCubeV(rl.Vector3{Z: 0.05}, rl.Vector3{X: 0.05, Y: 0.04, Z: 0.14}, rl.DarkGray)
		rl.PopMatrix()
	}
}
