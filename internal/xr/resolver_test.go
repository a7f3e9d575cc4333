package xr

import (
	"testing"

	"xrpointer/internal/engine"
	"xrpointer/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolveTeleportFloor(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	floor := floorQuad("floor", mgl32.Vec3{}, 0)

	res := r.Resolve(downRay(), nil, nil, objs(floor))
	if res.Kind != HitTeleport || !res.TeleportAllowed {
		t.Fatalf("Expected allowed teleport hit, got %v (allowed=%v)", res.Kind, res.TeleportAllowed)
	}
	if res.Hit.Object != floor {
		t.Errorf("Expected floor, got %v", res.Hit.Object.Name)
	}
	if !vecNear(res.Hit.Point, mgl32.Vec3{0.3, 0, -0.7}) {
		t.Errorf("Expected hit point (0.3,0,-0.7), got %v", res.Hit.Point)
	}
}

func TestResolveOcclusion(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	wall := box("wall", mgl32.Vec3{0, 3, 0}, mgl32.Vec3{2, 1, 2})
	button := box("button", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{2, 1, 2})
	floor := floorQuad("floor", mgl32.Vec3{}, 0)

	res := r.Resolve(downRay(), objs(wall), objs(button), objs(floor))
	if res.Kind != HitCollision {
		t.Fatalf("Expected collision, got %v", res.Kind)
	}
	if res.Hit.Object != wall || !near(res.Hit.Distance, 1.5) {
		t.Errorf("Expected wall at 1.5, got %v at %v", res.Hit.Object.Name, res.Hit.Distance)
	}
}

func TestResolveCollisionBehindInteractable(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	button := box("button", mgl32.Vec3{0, 2.5, 0}, mgl32.Vec3{2, 1, 2})
	wall := box("wall", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{2, 1, 2})

	res := r.Resolve(downRay(), objs(wall), objs(button), nil)
	if res.Kind != HitInteractable || res.Hit.Object != button {
		t.Fatalf("Expected interactable button, got %v", res.Kind)
	}
}

func TestResolvePriority(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	button := box("button", mgl32.Vec3{0, 2.5, 0}, mgl32.Vec3{2, 1, 2})
	floor := floorQuad("floor", mgl32.Vec3{}, 0)

	res := r.Resolve(downRay(), nil, objs(button), objs(floor))
	if res.Kind != HitInteractable {
		t.Fatalf("Expected interactable, got %v", res.Kind)
	}
	if !near(res.Hit.Distance, 2) {
		t.Errorf("Expected distance 2, got %v", res.Hit.Distance)
	}

	// A nearer teleport target wins over a farther interactable.
	low := box("low", mgl32.Vec3{0, -2, 0}, mgl32.Vec3{2, 1, 2})
	res = r.Resolve(downRay(), nil, objs(low), objs(floor))
	if res.Kind != HitTeleport || res.Hit.Object != floor {
		t.Errorf("Expected teleport floor, got %v", res.Kind)
	}
}

func TestResolveTieFavorsInteractable(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	rug := floorQuad("rug", mgl32.Vec3{}, 0)
	floor := floorQuad("floor", mgl32.Vec3{}, 0)

	res := r.Resolve(downRay(), nil, objs(rug), objs(floor))
	if res.Kind != HitInteractable || res.Hit.Object != rug {
		t.Errorf("Expected interactable rug on tie, got %v", res.Kind)
	}
}

func TestResolveSlopeRejection(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	ramp := floorQuad("ramp", mgl32.Vec3{}, 60)

	if res := r.Resolve(downRay(), nil, nil, objs(ramp)); res.Found() {
		t.Fatalf("Expected no hit on a 60 degree ramp, got %v", res.Kind)
	}

	// The rejected teleport hit also hides a farther collision hit.
	ground := box("ground", mgl32.Vec3{0, -3, 0}, mgl32.Vec3{4, 1, 4})
	if res := r.Resolve(downRay(), objs(ground), nil, objs(ramp)); res.Found() {
		t.Errorf("Expected no hit, got %v", res.Kind)
	}
}

func TestResolveSlopeLimit(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	tests := []struct {
		tilt float32
		want HitKind
	}{
		{0, HitTeleport},
		{30, HitTeleport},
		{45, HitTeleport},
		{50, HitNone},
	}
	for _, tt := range tests {
		ramp := floorQuad("ramp", mgl32.Vec3{}, tt.tilt)
		if got := r.Resolve(downRay(), nil, nil, objs(ramp)).Kind; got != tt.want {
			t.Errorf("tilt %v: expected %v, got %v", tt.tilt, tt.want, got)
		}
	}
}

func TestResolveZeroOrigin(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	floor := floorQuad("floor", mgl32.Vec3{0, -1, 0}, 0)
	ray := engine.Ray{Direction: mgl32.Vec3{0, -1, 0}, Far: 10}

	if res := r.Resolve(ray, objs(floor), objs(floor), objs(floor)); res.Found() {
		t.Errorf("Expected no hit from the zero origin, got %v", res.Kind)
	}
}

func TestResolveSkipsHidden(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	parent := engine.NewGameObject("parent")
	floor := floorQuad("floor", mgl32.Vec3{}, 0)
	parent.AddChild(floor)

	floor.Visible = false
	if res := r.Resolve(downRay(), nil, nil, objs(floor)); res.Found() {
		t.Errorf("Expected hidden floor to be skipped")
	}

	floor.Visible = true
	parent.Visible = false
	if res := r.Resolve(downRay(), nil, nil, objs(floor)); res.Found() {
		t.Errorf("Expected floor under a hidden parent to be skipped")
	}

	parent.Visible = true
	if res := r.Resolve(downRay(), nil, nil, objs(floor)); res.Kind != HitTeleport {
		t.Errorf("Expected teleport once visible, got %v", res.Kind)
	}
}

func TestCanTeleportWithoutFace(t *testing.T) {
	hit := engine.Intersection{Object: engine.NewGameObject("x"), Distance: 1}
	if CanTeleport(hit) {
		t.Errorf("Expected hit without face data to be rejected")
	}
}

func TestCanTeleportUsesWorldNormal(t *testing.T) {
	obj := engine.NewGameObject("tilted")
	obj.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	// Local +X is world +Y after the roll.
	hit := engine.Intersection{Object: obj, Face: &engine.Face{Normal: mgl32.Vec3{1, 0, 0}}}
	if !CanTeleport(hit) {
		t.Errorf("Expected local +X to count as world up")
	}
	hit.Face.Normal = mgl32.Vec3{0, 1, 0}
	if CanTeleport(hit) {
		t.Errorf("Expected local +Y to be a wall")
	}
}

func TestResolverReusesScratch(t *testing.T) {
	r := NewResolver(physics.NewRaycaster())
	floor := floorQuad("floor", mgl32.Vec3{}, 0)
	first := r.Resolve(downRay(), nil, nil, objs(floor))

	other := engine.Ray{Origin: mgl32.Vec3{1.3, 5, -0.2}, Direction: mgl32.Vec3{0, -1, 0}, Far: 10}
	r.Resolve(other, nil, nil, objs(floor))

	if !vecNear(first.Hit.Point, mgl32.Vec3{0.3, 0, -0.7}) {
		t.Errorf("Expected earlier result to be unaffected, got %v", first.Hit.Point)
	}
}
