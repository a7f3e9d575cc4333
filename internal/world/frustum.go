package world

import (
	"xrpointer/internal/components"
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is n.p + d = 0 with n pointing into the frustum.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// ExtractFrustum extracts the planes of a projection * view matrix
// (Gribb/Hartmann).
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 { return viewProj.Row(i) }
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	for i, p := range [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	} {
		f.planes[i] = normalizePlane(Plane{Normal: p.Vec3(), Distance: p.W()})
	}
	return f
}

func normalizePlane(p Plane) Plane {
	length := p.Normal.Len()
	if length == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Mul(1 / length), Distance: p.Distance / length}
}

// ContainsSphere reports whether a sphere is inside or touching the frustum.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].Normal.Dot(center)+f.planes[i].Distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	return f.ContainsSphere(point, 0)
}

// Bounds returns a world-space sphere enclosing the colliders of g, without
// descendants. ok is false when g has no collider.
func Bounds(g *engine.GameObject) (center mgl32.Vec3, radius float32, ok bool) {
	var local float32
	for _, c := range g.Components() {
		var r float32
		switch col := c.(type) {
		case *components.BoxCollider:
			r = col.Offset.Len() + col.Size.Mul(0.5).Len()
		case *components.SphereCollider:
			r = col.Offset.Len() + col.Radius
		case *components.MeshCollider:
			for _, t := range col.Triangles {
				for _, v := range [3]mgl32.Vec3{t.V0, t.V1, t.V2} {
					if l := v.Len(); l > r {
						r = l
					}
				}
			}
		default:
			continue
		}
		ok = true
		if r > local {
			local = r
		}
	}
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	s := g.WorldScale()
	maxScale := max(abs(s.X()), abs(s.Y()), abs(s.Z()))
	return g.WorldPosition(), local * maxScale, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
