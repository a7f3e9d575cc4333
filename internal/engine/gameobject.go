package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Matrix returns the local TRS matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

type GameObject struct {
	Name      string
	Tags      []string
	Transform Transform
	Active    bool
	// Visible hides this object and all of its descendants when false.
	Visible bool
	// Layers is a bit mask; SetLayer replaces it with a single layer.
	Layers     uint32
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:    name,
		Active:  true,
		Visible: true,
		Layers:  1,
		Transform: Transform{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T on g.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent is GetComponent for interface types that do not embed Component.
func FindComponent[T any](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Detach()
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Detach removes g from its parent, or from its scene when it is a root.
func (g *GameObject) Detach() {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
		return
	}
	if g.Scene != nil {
		g.Scene.RemoveGameObject(g)
	}
}

// Traverse calls fn for g and every descendant, depth first.
func (g *GameObject) Traverse(fn func(*GameObject)) {
	fn(g)
	for _, c := range g.Children {
		c.Traverse(fn)
	}
}

// SetLayer makes g a member of layer n only.
func (g *GameObject) SetLayer(n uint32) {
	g.Layers = 1 << n
}

func (g *GameObject) InLayer(n uint32) bool {
	return g.Layers&(1<<n) != 0
}

// VisibleInHierarchy reports whether g and every ancestor are visible.
func (g *GameObject) VisibleInHierarchy() bool {
	for o := g; o != nil; o = o.Parent {
		if !o.Visible {
			return false
		}
	}
	return true
}

func (g *GameObject) WorldMatrix() mgl32.Mat4 {
	local := g.Transform.Matrix()
	if g.Parent == nil {
		return local
	}
	return g.Parent.WorldMatrix().Mul4(local)
}

func (g *GameObject) WorldPosition() mgl32.Vec3 {
	return g.WorldMatrix().Col(3).Vec3()
}

func (g *GameObject) WorldQuaternion() mgl32.Quat {
	q := g.Transform.Rotation.Normalize()
	if g.Parent == nil {
		return q
	}
	return g.Parent.WorldQuaternion().Mul(q).Normalize()
}

func (g *GameObject) WorldScale() mgl32.Vec3 {
	s := g.Transform.Scale
	if g.Parent == nil {
		return s
	}
	ps := g.Parent.WorldScale()
	return mgl32.Vec3{ps.X() * s.X(), ps.Y() * s.Y(), ps.Z() * s.Z()}
}

// WorldDirection is the object's +Z axis in world space.
func (g *GameObject) WorldDirection() mgl32.Vec3 {
	return g.WorldMatrix().Mul4x1(WorldForward.Vec4(0)).Vec3().Normalize()
}

func (g *GameObject) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return g.WorldMatrix().Inv().Mul4x1(p.Vec4(1)).Vec3()
}

func (g *GameObject) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return g.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}

// SetYaw replaces the local rotation with a pure rotation about +Y.
func (g *GameObject) SetYaw(radians float32) {
	g.Transform.Rotation = mgl32.QuatRotate(radians, WorldUp)
}

// Yaw extracts the heading of the local rotation, atan2 of the rotated +Z.
func (g *GameObject) Yaw() float32 {
	f := g.Transform.Rotation.Rotate(WorldForward)
	return float32(math.Atan2(float64(f.X()), float64(f.Z())))
}

// LookAt rotates g so its +Z axis points at the world-space target, keeping
// world up as the up hint.
func (g *GameObject) LookAt(target mgl32.Vec3) {
	z := target.Sub(g.WorldPosition())
	if z.LenSqr() == 0 {
		return
	}
	z = z.Normalize()
	x := WorldUp.Cross(z)
	if x.LenSqr() == 0 {
		// target is straight above or below
		z = mgl32.Vec3{z.X() + 0.0001, z.Y(), z.Z()}.Normalize()
		x = WorldUp.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	rot := mgl32.Mat3FromCols(x, y, z).Mat4()
	q := mgl32.Mat4ToQuat(rot).Normalize()
	if g.Parent != nil {
		q = g.Parent.WorldQuaternion().Inverse().Mul(q).Normalize()
	}
	g.Transform.Rotation = q
}
