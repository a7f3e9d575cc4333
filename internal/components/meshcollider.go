package components

import (
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
	Normal     mgl32.Vec3
}

func NewTriangle(v0, v1, v2 mgl32.Vec3) Triangle {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.LenSqr() > 0 {
		n = n.Normalize()
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: n}
}

// MeshCollider tests rays against local-space triangles. Counter-clockwise
// winding seen from the front gives the outward normal.
type MeshCollider struct {
	engine.BaseComponent
	Triangles []Triangle
	// DoubleSided lets rays hit back faces. Single-sided meshes ignore them.
	DoubleSided bool
}

func NewMeshCollider() *MeshCollider {
	return &MeshCollider{}
}

// NewQuad builds a width x depth plane in local XZ facing +Y, centered on the origin.
func NewQuad(width, depth float32) *MeshCollider {
	hw, hd := width/2, depth/2
	a := mgl32.Vec3{-hw, 0, -hd}
	b := mgl32.Vec3{hw, 0, -hd}
	c := mgl32.Vec3{hw, 0, hd}
	d := mgl32.Vec3{-hw, 0, hd}
	m := NewMeshCollider()
	m.AddTriangle(a, d, c)
	m.AddTriangle(a, c, b)
	return m
}

func (m *MeshCollider) AddTriangle(v0, v1, v2 mgl32.Vec3) {
	m.Triangles = append(m.Triangles, NewTriangle(v0, v1, v2))
}
