package xr

import (
	"math"

	"xrpointer/internal/components"
	"xrpointer/internal/engine"
	"xrpointer/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func box(name string, center, size mgl32.Vec3) *engine.GameObject {
	obj := engine.NewGameObject(name)
	obj.Transform.Position = center
	obj.AddComponent(components.NewBoxCollider(size))
	return obj
}

// floorQuad is a 20x20 plane through center, tilted about X.
func floorQuad(name string, center mgl32.Vec3, tiltDeg float32) *engine.GameObject {
	obj := engine.NewGameObject(name)
	obj.Transform.Position = center
	obj.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(tiltDeg), mgl32.Vec3{1, 0, 0})
	obj.AddComponent(components.NewQuad(20, 20))
	return obj
}

// downRay misses the diagonal shared by the two triangles of a quad.
func downRay() engine.Ray {
	return engine.Ray{Origin: mgl32.Vec3{0.3, 5, -0.7}, Direction: mgl32.Vec3{0, -1, 0}, Far: 10}
}

func objs(o ...*engine.GameObject) []*engine.GameObject { return o }

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func vecNear(a, b mgl32.Vec3) bool {
	return near(a.X(), b.X()) && near(a.Y(), b.Y()) && near(a.Z(), b.Z())
}

// controller returns a root object at pos aimed with the given yaw and pitch
// (radians); pitch < 0 points down.
func controller(pos mgl32.Vec3, yaw, pitch float32) *engine.GameObject {
	c := engine.NewGameObject("controller")
	c.Transform.Position = pos
	c.Transform.Rotation = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
	return c
}

// floorHit is where a controller ray meets the plane y = 0.
func floorHit(c *engine.GameObject) mgl32.Vec3 {
	o := c.WorldPosition()
	d := c.WorldQuaternion().Rotate(mgl32.Vec3{0, 0, -1})
	return o.Add(d.Mul(o.Y() / -d.Y()))
}

type testRig struct {
	Rig
	stage  *engine.GameObject
	player *engine.GameObject
	floor  *engine.GameObject
}

// newTestRig builds a scene with a teleportable floor and a player under a
// stage object offset along +X.
func newTestRig() *testRig {
	scene := engine.NewScene("test")
	stage := engine.NewGameObject("stage")
	stage.Transform.Position = mgl32.Vec3{10, 0, 0}
	player := engine.NewGameObject("player")
	stage.AddChild(player)
	scene.AddGameObject(stage)

	cam := engine.NewGameObject("camera")
	cam.Transform.Position = mgl32.Vec3{0.3, 3, -0.7}
	cam.Transform.Rotation = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})
	cam.AddComponent(components.NewCamera())
	scene.AddGameObject(cam)

	floor := floorQuad("floor", mgl32.Vec3{}, 0)
	scene.AddGameObject(floor)

	return &testRig{
		Rig: Rig{
			Scene:          scene,
			Camera:         cam,
			MoveTarget:     player,
			RotationTarget: player,
			Raycaster:      physics.NewRaycaster(),
		},
		stage:  stage,
		player: player,
		floor:  floor,
	}
}

// recorder collects session callbacks as "kind:name" strings.
type recorder struct {
	events []string
	points []mgl32.Vec3
}

func (r *recorder) options(targets Targets) SessionOptions {
	opts := DefaultSessionOptions()
	opts.IntervalSec = 0
	opts.Targets = targets
	opts.OnCursorHover = func(o *engine.GameObject) { r.events = append(r.events, "hover:"+o.Name) }
	opts.OnCursorLeave = func(o *engine.GameObject) { r.events = append(r.events, "leave:"+o.Name) }
	opts.OnSelectDown = func(o *engine.GameObject, p mgl32.Vec3) {
		r.events = append(r.events, "down:"+o.Name)
		r.points = append(r.points, p)
	}
	opts.OnSelectUp = func(o *engine.GameObject, p mgl32.Vec3) {
		r.events = append(r.events, "up:"+o.Name)
		r.points = append(r.points, p)
	}
	return opts
}
