package components

import (
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// BoxCollider is an axis-aligned box in the owner's local space.
type BoxCollider struct {
	engine.BaseComponent
	Size   mgl32.Vec3
	Offset mgl32.Vec3
}

func NewBoxCollider(size mgl32.Vec3) *BoxCollider {
	return &BoxCollider{
		Size: size,
	}
}

// LocalBounds returns the min and max corners in local space. Negative sizes are folded.
func (b *BoxCollider) LocalBounds() (min, max mgl32.Vec3) {
	half := mgl32.Vec3{abs(b.Size.X()) / 2, abs(b.Size.Y()) / 2, abs(b.Size.Z()) / 2}
	return b.Offset.Sub(half), b.Offset.Add(half)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
