package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Unbounded is the Far value of a ray with no distance limit.
const Unbounded = math.MaxFloat32

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // unit length
	Far       float32
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Face carries surface data of a hit. Normal is in the hit object's local space.
type Face struct {
	Normal mgl32.Vec3
}

// Intersection is one ray hit. Defined here so the physics and xr packages
// can share it without importing each other.
type Intersection struct {
	Object   *GameObject
	Point    mgl32.Vec3
	Distance float32
	Face     *Face
}

// Raycaster intersects a ray with a collection of objects.
type Raycaster interface {
	// IntersectObjects appends every hit to buf, nearest first, and returns it.
	// When recursive is set, descendants of each object are tested too.
	IntersectObjects(ray Ray, objects []*GameObject, recursive bool, buf []Intersection) []Intersection
}
