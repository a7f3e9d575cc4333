package physics

import (
	"math"
	"sort"

	"xrpointer/internal/components"
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-7

// Raycaster intersects rays with the colliders attached to GameObjects.
// It implements engine.Raycaster.
type Raycaster struct{}

func NewRaycaster() *Raycaster {
	return &Raycaster{}
}

var _ engine.Raycaster = (*Raycaster)(nil)

// IntersectObjects appends all hits of the ray against objects (and their
// descendants when recursive) to buf, sorted nearest first. Objects whose own
// Visible flag is off are skipped together with their subtree.
func (r *Raycaster) IntersectObjects(ray engine.Ray, objects []*engine.GameObject, recursive bool, buf []engine.Intersection) []engine.Intersection {
	start := len(buf)
	for _, obj := range objects {
		buf = r.intersectObject(ray, obj, recursive, buf)
	}
	hits := buf[start:]
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return buf
}

func (r *Raycaster) intersectObject(ray engine.Ray, obj *engine.GameObject, recursive bool, buf []engine.Intersection) []engine.Intersection {
	if obj == nil || !obj.Visible {
		return buf
	}

	if len(obj.Components()) > 0 {
		// Test in local space. Affine maps keep the ray parameter, so t stays
		// the world distance along the unit world direction.
		inv := obj.WorldMatrix().Inv()
		local := localRay{
			origin: inv.Mul4x1(ray.Origin.Vec4(1)).Vec3(),
			dir:    inv.Mul4x1(ray.Direction.Vec4(0)).Vec3(),
		}
		for _, c := range obj.Components() {
			var (
				t      float32
				normal mgl32.Vec3
				ok     bool
			)
			switch col := c.(type) {
			case *components.BoxCollider:
				t, normal, ok = raycastBox(local, col)
			case *components.SphereCollider:
				t, normal, ok = raycastSphere(local, col)
			case *components.MeshCollider:
				t, normal, ok = raycastMesh(local, col)
			default:
				continue
			}
			if !ok || t < 0 || t > ray.Far {
				continue
			}
			buf = append(buf, engine.Intersection{
				Object:   obj,
				Point:    ray.At(t),
				Distance: t,
				Face:     &engine.Face{Normal: normal},
			})
		}
	}

	if recursive {
		for _, child := range obj.Children {
			buf = r.intersectObject(ray, child, true, buf)
		}
	}
	return buf
}

type localRay struct {
	origin mgl32.Vec3
	dir    mgl32.Vec3
}

// raycastBox is a slab test. The reported normal belongs to the face the ray
// enters through, or the face it leaves through when it starts inside.
func raycastBox(ray localRay, box *components.BoxCollider) (float32, mgl32.Vec3, bool) {
	min, max := box.LocalBounds()

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	enterAxis, exitAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		o, d := ray.origin[axis], ray.dir[axis]
		if abs(d) < parallelEpsilon {
			if o < min[axis] || o > max[axis] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (min[axis] - o) / d
		t2 := (max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = axis
		}
		if t2 < tmax {
			tmax = t2
			exitAxis = axis
		}
		if tmin > tmax {
			return 0, mgl32.Vec3{}, false
		}
	}

	if tmax < 0 {
		return 0, mgl32.Vec3{}, false
	}

	var normal mgl32.Vec3
	t := tmin
	if t >= 0 && enterAxis >= 0 {
		normal[enterAxis] = -sign(ray.dir[enterAxis])
	} else {
		t = tmax
		if exitAxis < 0 {
			return 0, mgl32.Vec3{}, false
		}
		normal[exitAxis] = sign(ray.dir[exitAxis])
	}
	return t, normal, true
}

func raycastSphere(ray localRay, sphere *components.SphereCollider) (float32, mgl32.Vec3, bool) {
	if sphere.Radius <= 0 {
		return 0, mgl32.Vec3{}, false
	}
	oc := ray.origin.Sub(sphere.Offset)
	a := ray.dir.Dot(ray.dir)
	b := 2.0 * oc.Dot(ray.dir)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return 0, mgl32.Vec3{}, false
	}

	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, mgl32.Vec3{}, false
	}

	point := ray.origin.Add(ray.dir.Mul(t))
	normal := point.Sub(sphere.Offset).Normalize()
	return t, normal, true
}

// raycastMesh returns the nearest triangle hit (Moller-Trumbore).
func raycastMesh(ray localRay, mesh *components.MeshCollider) (float32, mgl32.Vec3, bool) {
	best := float32(math.MaxFloat32)
	var bestNormal mgl32.Vec3
	hit := false

	for i := range mesh.Triangles {
		tri := &mesh.Triangles[i]
		t, ok := intersectTriangle(ray, tri, mesh.DoubleSided)
		if ok && t < best {
			best = t
			bestNormal = tri.Normal
			hit = true
		}
	}
	return best, bestNormal, hit
}

func intersectTriangle(ray localRay, tri *components.Triangle, doubleSided bool) (float32, bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)

	h := ray.dir.Cross(edge2)
	det := edge1.Dot(h)

	// det > 0 means the ray meets the front face.
	if doubleSided {
		if abs(det) < parallelEpsilon {
			return 0, false
		}
	} else if det < parallelEpsilon {
		return 0, false
	}

	f := 1.0 / det
	s := ray.origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t < 0 {
		return 0, false
	}
	return t, true
}
