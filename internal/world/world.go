package world

import (
	"xrpointer/internal/components"
	"xrpointer/internal/engine"
	"xrpointer/internal/physics"
	"xrpointer/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Tags that give scene objects a pointer role.
const (
	RoleCollision    = "collision"
	RoleInteractable = "interactable"
	RoleTeleport     = "teleport"
)

const EyeHeight = 1.6

// World is the demo scene plus the player rig:
//
//	stage
//	└── player     teleported and snap-turned
//	    └── camera eye height, desktop view
//
// Controllers are attached under player by the caller.
type World struct {
	Scene     *engine.Scene
	Stage     *engine.GameObject
	Player    *engine.GameObject
	Camera    *engine.GameObject
	Raycaster *physics.Raycaster
	log       *zap.Logger
}

func New(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Scene:     engine.NewScene("Main"),
		Stage:     engine.NewGameObject("stage"),
		Player:    engine.NewGameObject("player"),
		Camera:    engine.NewGameObject("camera"),
		Raycaster: physics.NewRaycaster(),
		log:       log,
	}
	w.Stage.AddChild(w.Player)
	w.Player.AddChild(w.Camera)
	w.Camera.Transform.Position = mgl32.Vec3{0, EyeHeight, 0}
	cam := components.NewCamera()
	cam.IsMain = true
	w.Camera.AddComponent(cam)
	w.Scene.AddGameObject(w.Stage)
	return w
}

// Rig wires the world into pointer sessions.
func (w *World) Rig() xr.Rig {
	return xr.Rig{
		Scene:          w.Scene,
		Camera:         w.Camera,
		MoveTarget:     w.Player,
		RotationTarget: w.Player,
		Raycaster:      w.Raycaster,
	}
}

func (w *World) CameraComponent() *components.Camera {
	return engine.GetComponent[*components.Camera](w.Camera)
}

func (w *World) CollisionObjects() []*engine.GameObject {
	return w.Scene.FindByTag(RoleCollision)
}

func (w *World) InteractableObjects() []*engine.GameObject {
	return w.Scene.FindByTag(RoleInteractable)
}

func (w *World) TeleportTargetObjects() []*engine.GameObject {
	return w.Scene.FindByTag(RoleTeleport)
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}
