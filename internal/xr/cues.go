package xr

import (
	"math"

	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// Cue sizes, in meters.
const (
	PointerBallRadius    = 0.03
	TeleportMarkerRadius = 0.25
	TeleportMarkerHeight = 0.3
)

// PointerLine is a unit segment along local +Y. Its Y scale is the drawn
// length; SetDirection aims +Y along the ray.
type PointerLine struct {
	Object *engine.GameObject
	hit    bool
}

func NewPointerLine() *PointerLine {
	return &PointerLine{Object: engine.NewGameObject("pointerLine")}
}

// Hit reports whether the line is drawn in its highlighted style.
func (l *PointerLine) Hit() bool { return l.hit }

func (l *PointerLine) SetHit(v bool) { l.hit = v }

// SetDirection rotates the line so local +Y points along the unit vector d.
func (l *PointerLine) SetDirection(d mgl32.Vec3) {
	axis := mgl32.Vec3{d.Z(), 0, -d.X()}
	angle := float32(math.Acos(float64(mgl32.Clamp(d.Y(), -1, 1))))
	if axis.LenSqr() < 1e-12 {
		if d.Y() >= 0 {
			l.Object.Transform.Rotation = mgl32.QuatIdent()
		} else {
			l.Object.Transform.Rotation = mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0})
		}
		return
	}
	l.Object.Transform.Rotation = mgl32.QuatRotate(angle, axis.Normalize())
}

// Length is the current drawn length of the line.
func (l *PointerLine) Length() float32 {
	return l.Object.Transform.Scale.Y()
}

func (l *PointerLine) setLength(v float32) {
	l.Object.Transform.Scale[1] = v
}

// PointerBall marks the hit point on interactable objects.
type PointerBall struct {
	Object *engine.GameObject
}

func NewPointerBall() *PointerBall {
	return &PointerBall{Object: engine.NewGameObject("pointerBall")}
}

// TeleportMarker marks the landing spot and facing of a teleport.
type TeleportMarker struct {
	Object *engine.GameObject
}

func NewTeleportMarker() *TeleportMarker {
	return &TeleportMarker{Object: engine.NewGameObject("teleportPoint")}
}

// cues groups the three visuals one session owns.
type cues struct {
	line   *PointerLine
	ball   *PointerBall
	marker *TeleportMarker
}

func newCues(layer uint32) cues {
	c := cues{
		line:   NewPointerLine(),
		ball:   NewPointerBall(),
		marker: NewTeleportMarker(),
	}
	for _, o := range c.objects() {
		o.Traverse(func(g *engine.GameObject) { g.SetLayer(layer) })
	}
	c.ball.Object.Visible = false
	c.marker.Object.Visible = false
	return c
}

func (c cues) objects() []*engine.GameObject {
	return []*engine.GameObject{c.line.Object, c.ball.Object, c.marker.Object}
}

func (c cues) addTo(scene *engine.Scene) {
	if scene == nil {
		return
	}
	for _, o := range c.objects() {
		scene.AddGameObject(o)
	}
}

func (c cues) dispose() {
	for _, o := range c.objects() {
		o.Detach()
	}
}

// headingOf is the yaw of the object's world +Z axis.
func headingOf(g *engine.GameObject) float32 {
	d := g.WorldDirection()
	return float32(math.Atan2(float64(d.X()), float64(d.Z())))
}
