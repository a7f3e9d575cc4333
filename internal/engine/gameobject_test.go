package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	d := a.Sub(b)
	return math.Abs(float64(d.X())) < epsilon &&
		math.Abs(float64(d.Y())) < epsilon &&
		math.Abs(float64(d.Z())) < epsilon
}

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}
	if !obj.Visible || !obj.Active {
		t.Error("New GameObject should be visible and active")
	}
	if obj.Transform.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"floor", "teleport"}

	if !obj.HasTag("floor") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("wall") {
		t.Error("HasTag should return false for non-existent tag")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	other := NewGameObject("Other")

	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	other.AddChild(child)
	if len(parent.Children) != 0 {
		t.Errorf("Expected reparenting to remove child from old parent, got %d children", len(parent.Children))
	}
	if child.Parent != other {
		t.Error("Child should now belong to Other")
	}

	child.Detach()
	if child.Parent != nil || len(other.Children) != 0 {
		t.Error("Detach should remove child from its parent")
	}
}

func TestVisibleInHierarchy(t *testing.T) {
	root := NewGameObject("Root")
	mid := NewGameObject("Mid")
	leaf := NewGameObject("Leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !leaf.VisibleInHierarchy() {
		t.Error("Leaf should be visible when every ancestor is visible")
	}

	root.Visible = false
	if leaf.VisibleInHierarchy() {
		t.Error("Hidden root should hide the leaf")
	}

	root.Visible = true
	leaf.Visible = false
	if leaf.VisibleInHierarchy() {
		t.Error("Hidden leaf should not be visible")
	}
	if !mid.VisibleInHierarchy() {
		t.Error("Hiding a child must not affect its parent")
	}
}

func TestWorldPositionWithParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = mgl32.Vec3{10, 0, 0}
	parent.SetYaw(math.Pi / 2)
	parent.Transform.Scale = mgl32.Vec3{2, 2, 2}

	child := NewGameObject("Child")
	child.Transform.Position = mgl32.Vec3{0, 0, 1}
	parent.AddChild(child)

	// +Z rotated 90 deg about Y is +X, scaled by 2.
	want := mgl32.Vec3{12, 0, 0}
	if got := child.WorldPosition(); !vecNear(got, want) {
		t.Errorf("Expected world position %v, got %v", want, got)
	}

	back := parent.WorldToLocal(want)
	if !vecNear(back, child.Transform.Position) {
		t.Errorf("WorldToLocal should invert the parent transform, got %v", back)
	}
}

func TestWorldDirectionAndYaw(t *testing.T) {
	obj := NewGameObject("Hand")
	obj.SetYaw(math.Pi / 4)

	dir := obj.WorldDirection()
	want := mgl32.Vec3{float32(math.Sin(math.Pi / 4)), 0, float32(math.Cos(math.Pi / 4))}
	if !vecNear(dir, want) {
		t.Errorf("Expected direction %v, got %v", want, dir)
	}
	if got := obj.Yaw(); math.Abs(float64(got)-math.Pi/4) > epsilon {
		t.Errorf("Expected yaw %f, got %f", math.Pi/4, got)
	}
}

func TestLookAt(t *testing.T) {
	obj := NewGameObject("Rig")
	obj.Transform.Position = mgl32.Vec3{1, 0, 1}

	obj.LookAt(mgl32.Vec3{2, 0, 1})
	if got := obj.WorldDirection(); !vecNear(got, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected +Z to face +X, got %v", got)
	}
	if got := obj.WorldQuaternion().Rotate(WorldUp); !vecNear(got, WorldUp) {
		t.Errorf("LookAt on a level target should keep up, got %v", got)
	}
}

func TestLookAtUnderRotatedParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.SetYaw(math.Pi / 2)
	child := NewGameObject("Child")
	parent.AddChild(child)

	child.LookAt(mgl32.Vec3{0, 0, -5})
	if got := child.WorldDirection(); !vecNear(got, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Expected world +Z to face -Z, got %v", got)
	}
}

func TestSetLayerAndTraverse(t *testing.T) {
	root := NewGameObject("Root")
	root.AddChild(NewGameObject("A"))
	root.Children[0].AddChild(NewGameObject("B"))

	count := 0
	root.Traverse(func(g *GameObject) {
		g.SetLayer(9)
		count++
	})
	if count != 3 {
		t.Errorf("Expected to visit 3 objects, got %d", count)
	}
	if !root.Children[0].Children[0].InLayer(9) || root.InLayer(0) {
		t.Error("SetLayer should make the object a member of layer 9 only")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
	if found := GetComponent[*BaseComponent](obj); found != comp {
		t.Error("GetComponent failed to find component")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}
	obj.Start()
}
