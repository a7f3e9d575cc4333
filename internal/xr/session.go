package xr

import (
	"xrpointer/internal/components"
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DefaultFar                  = 5
	DefaultIntervalSec          = 1.0 / 30
	DefaultFirstPersonOnlyLayer = 9

	// nonVRFar scales the pointer ball in non-VR mode, where the mouse
	// ray itself is unbounded.
	nonVRFar = DefaultFar
)

// Rig is the part of the host scene a session acts on.
type Rig struct {
	Scene *engine.Scene
	// Camera carries a components.Camera and is the ray origin in non-VR mode.
	Camera *engine.GameObject
	// MoveTarget is placed at the hit point on teleport.
	MoveTarget *engine.GameObject
	// RotationTarget is rotated by snap turns.
	RotationTarget *engine.GameObject
	Raycaster      engine.Raycaster
}

type SessionOptions struct {
	Targets Targets
	// Far is the controller ray length.
	Far float32
	// IntervalSec is the minimum time between processed ticks; 0 processes
	// every tick.
	IntervalSec          float32
	FirstPersonOnlyLayer uint32

	OnCursorHover func(obj *engine.GameObject)
	OnCursorLeave func(obj *engine.GameObject)
	OnSelectDown  func(obj *engine.GameObject, point mgl32.Vec3)
	OnSelectUp    func(obj *engine.GameObject, point mgl32.Vec3)
	// OnTeleport runs after the move target was placed at point facing yaw.
	OnTeleport func(point mgl32.Vec3, yaw float32)

	// Input, when set, is subscribed to for pointer and select events.
	Input *InputEvents
	// Name labels log entries, typically the hand.
	Name   string
	Logger *zap.Logger
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Far:                  DefaultFar,
		IntervalSec:          DefaultIntervalSec,
		FirstPersonOnlyLayer: DefaultFirstPersonOnlyLayer,
	}
}

// Session is one pointer: it casts a ray every processed tick, tracks the
// hovered object, drives its cues and turns select input into select
// callbacks or teleports.
type Session struct {
	rig      Rig
	opts     SessionOptions
	log      *zap.Logger
	resolver *Resolver
	cues     cues

	enabled  bool
	nonVR    bool
	disposed bool
	sec      float32

	hover         *engine.GameObject
	hitIsTeleport bool
	hitPoint      mgl32.Vec3
	teleportAngle float32
	pointer       mgl32.Vec2

	handles       []*engine.ListenerHandle
	selectHandles []*engine.ListenerHandle
}

func NewSession(rig Rig, opts SessionOptions) *Session {
	if opts.Far <= 0 {
		opts.Far = DefaultFar
	}
	if opts.IntervalSec < 0 {
		opts.IntervalSec = DefaultIntervalSec
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Name != "" {
		log = log.With(zap.String("pointer", opts.Name))
	}

	s := &Session{
		rig:      rig,
		opts:     opts,
		log:      log,
		resolver: NewResolver(rig.Raycaster),
		cues:     newCues(opts.FirstPersonOnlyLayer),
		enabled:  true,
	}
	s.cues.line.Object.Visible = s.enabled
	s.cues.addTo(rig.Scene)
	s.subscribe()
	return s
}

func (s *Session) subscribe() {
	in := s.opts.Input
	if in == nil {
		return
	}
	s.handles = append(s.handles,
		in.PointerMove.AddListener(s.SetPointer),
		in.PointerDown.AddListener(s.SelectDown),
		in.PointerUp.AddListener(s.SelectUp),
		in.SessionStart.AddListener(s.onSessionStart),
		in.SessionEnd.AddListener(s.onSessionEnd),
	)
}

func (s *Session) onSessionStart() {
	if s.selectHandles != nil {
		return
	}
	s.selectHandles = []*engine.ListenerHandle{
		s.opts.Input.SelectStart.AddListener(s.SelectDown),
		s.opts.Input.SelectEnd.AddListener(s.SelectUp),
	}
}

func (s *Session) onSessionEnd() {
	for _, h := range s.selectHandles {
		h.Remove()
	}
	s.selectHandles = nil
}

func (s *Session) Enabled() bool { return s.enabled }

// SetEnabled turns the pointer on or off. Turning it off ends any hover.
func (s *Session) SetEnabled(v bool) {
	if s.enabled == v {
		return
	}
	s.enabled = v
	s.updateState()
}

func (s *Session) NonVRMode() bool { return s.nonVR }

// SetNonVRMode switches to a mouse ray from the rig camera. Teleport is not
// available in non-VR mode.
func (s *Session) SetNonVRMode(v bool) {
	if s.nonVR == v {
		return
	}
	s.nonVR = v
	s.updateState()
}

func (s *Session) updateState() {
	s.cues.line.Object.Visible = s.enabled && !s.nonVR
	if !s.enabled || s.nonVR {
		s.leave()
	}
}

func (s *Session) HidePointerLine() {
	s.cues.line.Object.Visible = false
}

// ResetPointerLineVisible undoes HidePointerLine.
func (s *Session) ResetPointerLineVisible() {
	s.cues.line.Object.Visible = s.enabled && !s.nonVR
}

// SetPointer records the non-VR pointer position in normalized device
// coordinates.
func (s *Session) SetPointer(ndc mgl32.Vec2) {
	s.pointer = ndc
}

func (s *Session) Hovered() *engine.GameObject { return s.hover }

// HitIsTeleport reports whether the hovered object is a teleport target.
func (s *Session) HitIsTeleport() bool { return s.hitIsTeleport }

func (s *Session) HitPoint() mgl32.Vec3 { return s.hitPoint }

func (s *Session) TeleportAngle() float32 { return s.teleportAngle }

func (s *Session) PointerLine() *PointerLine { return s.cues.line }

func (s *Session) PointerBall() *PointerBall { return s.cues.ball }

func (s *Session) TeleportMarker() *TeleportMarker { return s.cues.marker }

// Tick casts the pointer ray from origin, or from the rig camera in non-VR
// mode, and updates hover state and cues. A nil origin skips the tick.
func (s *Session) Tick(deltaTime float32, origin *engine.GameObject) {
	if !s.enabled || s.disposed {
		return
	}
	if s.nonVR {
		origin = s.rig.Camera
	}
	if origin == nil {
		return
	}

	s.sec += deltaTime
	if s.sec < s.opts.IntervalSec {
		return
	}
	s.sec = 0

	res := s.updateRay(origin)
	if !res.Found() {
		s.cues.line.setLength(1)
		s.leave()
		return
	}

	distSq := origin.WorldPosition().Sub(res.Hit.Point).LenSqr()
	if distSq < 1 {
		s.cues.line.setLength(distSq)
	} else {
		s.cues.line.setLength(1)
	}

	if res.Kind == HitCollision {
		s.leave()
		return
	}

	if s.hover != res.Hit.Object {
		if s.hover != nil {
			s.log.Debug("hover end", zap.String("object", s.hover.Name))
			if s.opts.OnCursorLeave != nil {
				s.opts.OnCursorLeave(s.hover)
			}
		}
		s.hover = res.Hit.Object
		s.cues.line.SetHit(true)
		s.hitIsTeleport = res.Kind == HitTeleport
		s.cues.ball.Object.Visible = !s.hitIsTeleport
		s.cues.marker.Object.Visible = s.hitIsTeleport
		s.log.Debug("hover start",
			zap.String("object", s.hover.Name),
			zap.Stringer("kind", res.Kind))
		if s.opts.OnCursorHover != nil {
			s.opts.OnCursorHover(s.hover)
		}
	}

	s.hitPoint = res.Hit.Point
	if s.hitIsTeleport {
		s.teleportAngle = headingOf(origin)
		s.cues.marker.Object.Transform.Position = s.hitPoint
		s.cues.marker.Object.SetYaw(s.teleportAngle)
		return
	}
	far := s.opts.Far
	if s.nonVR {
		far = nonVRFar
	}
	scale := mgl32.Clamp(distSq/far, 0.3, 1)
	s.cues.ball.Object.Transform.Position = s.hitPoint
	s.cues.ball.Object.Transform.Scale = mgl32.Vec3{scale, scale, scale}
}

func (s *Session) updateRay(origin *engine.GameObject) Resolution {
	var ray engine.Ray
	if s.nonVR {
		cam := engine.GetComponent[*components.Camera](origin)
		if cam == nil {
			return Resolution{}
		}
		o, d := cam.RayFromNDC(s.pointer)
		ray = engine.Ray{Origin: o, Direction: d, Far: engine.Unbounded}
	} else {
		// An untracked controller sits at its local origin.
		if origin.Transform.Position == (mgl32.Vec3{}) {
			return Resolution{}
		}
		d := origin.WorldQuaternion().Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
		ray = engine.Ray{Origin: origin.WorldPosition(), Direction: d, Far: s.opts.Far}
		s.cues.line.Object.Transform.Position = ray.Origin
		s.cues.line.SetDirection(d)
	}

	t := s.opts.Targets
	if t == nil {
		return Resolution{}
	}
	var teleport []*engine.GameObject
	if !s.nonVR {
		teleport = t.TeleportTargetObjects()
	}
	return s.resolver.Resolve(ray, t.CollisionObjects(), t.InteractableObjects(), teleport)
}

// SelectDown is the select press: it teleports when a teleport target is
// hovered and otherwise reports the press on the hovered object.
func (s *Session) SelectDown() {
	if !s.enabled || s.disposed || s.hover == nil {
		return
	}
	if s.hitIsTeleport {
		s.teleport()
		return
	}
	s.log.Debug("select down", zap.String("object", s.hover.Name))
	if s.opts.OnSelectDown != nil {
		s.opts.OnSelectDown(s.hover, s.hitPoint)
	}
}

func (s *Session) SelectUp() {
	if !s.enabled || s.disposed || s.hover == nil || s.hitIsTeleport {
		return
	}
	s.log.Debug("select up", zap.String("object", s.hover.Name))
	if s.opts.OnSelectUp != nil {
		s.opts.OnSelectUp(s.hover, s.hitPoint)
	}
}

func (s *Session) teleport() {
	target := s.rig.MoveTarget
	if target == nil || target.Parent == nil {
		return
	}
	target.Transform.Position = target.Parent.WorldToLocal(s.hitPoint)
	target.SetYaw(s.teleportAngle)
	s.log.Debug("teleport",
		zap.Float32("x", s.hitPoint.X()),
		zap.Float32("y", s.hitPoint.Y()),
		zap.Float32("z", s.hitPoint.Z()),
		zap.Float32("yaw", s.teleportAngle))
	point, yaw := s.hitPoint, s.teleportAngle
	s.leave()
	if s.opts.OnTeleport != nil {
		s.opts.OnTeleport(point, yaw)
	}
}

func (s *Session) leave() {
	if s.hover == nil {
		return
	}
	s.log.Debug("hover end", zap.String("object", s.hover.Name))
	if s.opts.OnCursorLeave != nil {
		s.opts.OnCursorLeave(s.hover)
	}
	s.cues.ball.Object.Visible = false
	s.cues.marker.Object.Visible = false
	s.cues.line.SetHit(false)
	s.hover = nil
}

// Dispose unsubscribes from input and removes the cues from the scene.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	s.onSessionEnd()
	s.cues.dispose()
	s.hover = nil
	s.log.Debug("disposed")
}
