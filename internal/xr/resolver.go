package xr

import (
	"math"

	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxTeleportSlope is the steepest surface, in radians from world up, that
// can be teleported onto.
const MaxTeleportSlope = math.Pi / 4

const slopeTolerance = 1e-6

type HitKind int

const (
	HitNone HitKind = iota
	HitCollision
	HitInteractable
	HitTeleport
)

func (k HitKind) String() string {
	switch k {
	case HitCollision:
		return "collision"
	case HitInteractable:
		return "interactable"
	case HitTeleport:
		return "teleport"
	default:
		return "none"
	}
}

// Resolution is the authoritative hit of one ray.
type Resolution struct {
	Kind HitKind
	// Hit is meaningful only when Kind is not HitNone.
	Hit engine.Intersection
	// TeleportAllowed is set for HitTeleport results that passed the slope test.
	TeleportAllowed bool
}

func (r Resolution) Found() bool {
	return r.Kind != HitNone
}

// Scratch holds buffers reused across Resolve calls. It belongs to a single
// Resolver and must not be shared.
type Scratch struct {
	objects []*engine.GameObject
	hits    []engine.Intersection
}

// Resolver picks the hit a pointer ray should act on among collision,
// interactable and teleport-target objects.
type Resolver struct {
	raycaster engine.Raycaster
	scratch   Scratch
}

func NewResolver(raycaster engine.Raycaster) *Resolver {
	return &Resolver{raycaster: raycaster}
}

// Resolve casts ray against the three collections. Any collection may be nil.
//
// A collision hit nearer than a candidate discards it. Between an interactable
// and a teleport hit the nearer wins, the interactable on a tie. A winning
// teleport hit on a surface steeper than MaxTeleportSlope yields no hit at all.
// A ray starting exactly at the origin comes from an untracked controller and
// never hits.
func (r *Resolver) Resolve(ray engine.Ray, collision, interactable, teleport []*engine.GameObject) Resolution {
	if r.raycaster == nil || ray.Origin == (mgl32.Vec3{}) {
		return Resolution{}
	}

	hitC, okC := r.nearest(ray, collision)
	hitI, okI := r.nearest(ray, interactable)
	hitT, okT := r.nearest(ray, teleport)

	if okC {
		if okT && hitC.Distance < hitT.Distance {
			okT = false
		}
		if okI && hitC.Distance < hitI.Distance {
			okI = false
		}
	}

	switch {
	case okI && okT:
		if hitI.Distance <= hitT.Distance {
			return Resolution{Kind: HitInteractable, Hit: hitI}
		}
		return teleportResolution(hitT)
	case okI:
		return Resolution{Kind: HitInteractable, Hit: hitI}
	case okT:
		return teleportResolution(hitT)
	case okC:
		return Resolution{Kind: HitCollision, Hit: hitC}
	}
	return Resolution{}
}

func teleportResolution(hit engine.Intersection) Resolution {
	if !CanTeleport(hit) {
		return Resolution{}
	}
	return Resolution{Kind: HitTeleport, Hit: hit, TeleportAllowed: true}
}

// nearest returns the closest hit among the objects visible through their
// whole ancestor chain.
func (r *Resolver) nearest(ray engine.Ray, objects []*engine.GameObject) (engine.Intersection, bool) {
	if len(objects) == 0 {
		return engine.Intersection{}, false
	}
	visible := r.scratch.objects[:0]
	for _, o := range objects {
		if o != nil && o.VisibleInHierarchy() {
			visible = append(visible, o)
		}
	}
	r.scratch.objects = visible
	if len(visible) == 0 {
		return engine.Intersection{}, false
	}

	hits := r.raycaster.IntersectObjects(ray, visible, true, r.scratch.hits[:0])
	r.scratch.hits = hits
	if len(hits) == 0 {
		return engine.Intersection{}, false
	}
	return hits[0], true
}

// CanTeleport reports whether the hit surface is flat enough to stand on.
// Hits without face data never are.
func CanTeleport(hit engine.Intersection) bool {
	if hit.Face == nil {
		return false
	}
	normal := hit.Face.Normal
	if hit.Object != nil {
		normalMatrix := hit.Object.WorldMatrix().Mat3().Inv().Transpose()
		normal = normalMatrix.Mul3x1(normal)
	}
	if normal.LenSqr() == 0 {
		return false
	}
	return SlopeAngle(normal.Normalize()) <= MaxTeleportSlope+slopeTolerance
}

// SlopeAngle is the angle between a unit normal and world up.
func SlopeAngle(normal mgl32.Vec3) float64 {
	cos := float64(normal.Dot(engine.WorldUp))
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}
