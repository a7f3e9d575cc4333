package xr

import "xrpointer/internal/engine"

// Targets supplies the objects a pointer can hit, queried once per
// processed tick. A nil result means nothing of that role is hit.
type Targets interface {
	CollisionObjects() []*engine.GameObject
	InteractableObjects() []*engine.GameObject
	TeleportTargetObjects() []*engine.GameObject
}

// TargetFuncs adapts plain functions to Targets. Nil functions supply nothing.
type TargetFuncs struct {
	Collision    func() []*engine.GameObject
	Interactable func() []*engine.GameObject
	Teleport     func() []*engine.GameObject
}

func (f TargetFuncs) CollisionObjects() []*engine.GameObject {
	if f.Collision == nil {
		return nil
	}
	return f.Collision()
}

func (f TargetFuncs) InteractableObjects() []*engine.GameObject {
	if f.Interactable == nil {
		return nil
	}
	return f.Interactable()
}

func (f TargetFuncs) TeleportTargetObjects() []*engine.GameObject {
	if f.Teleport == nil {
		return nil
	}
	return f.Teleport()
}

// StaticTargets is a fixed set of objects per role.
type StaticTargets struct {
	Collision    []*engine.GameObject
	Interactable []*engine.GameObject
	Teleport     []*engine.GameObject
}

func (s *StaticTargets) CollisionObjects() []*engine.GameObject      { return s.Collision }
func (s *StaticTargets) InteractableObjects() []*engine.GameObject   { return s.Interactable }
func (s *StaticTargets) TeleportTargetObjects() []*engine.GameObject { return s.Teleport }
