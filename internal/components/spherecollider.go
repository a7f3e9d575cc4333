package components

import (
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset mgl32.Vec3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() mgl32.Vec3 {
	g := s.GetGameObject()
	if g == nil {
		return s.Offset
	}
	return g.LocalToWorld(s.Offset)
}
