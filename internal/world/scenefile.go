package world

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"xrpointer/internal/components"
	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// --- JSON types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
	// Rotation is XYZ Euler angles in degrees.
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Color      string            `json:"color,omitempty"`
	Hidden     bool              `json:"hidden,omitempty"`
	Components []json.RawMessage `json:"components"`
	Children   []ObjectDef       `json:"children,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `json:"type"`
	Radius float32    `json:"radius"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type quadDef struct {
	Type        string     `json:"type"`
	Size        [2]float32 `json:"size"`
	DoubleSided bool       `json:"doubleSided,omitempty"`
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// --- Loading ---

func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// LoadScene reads a scene file and adds its objects to the world.
func (w *World) LoadScene(path string) error {
	sf, err := ReadSceneFile(path)
	if err != nil {
		return err
	}
	return w.Load(sf)
}

// Load builds the objects of sf and adds them to the scene.
func (w *World) Load(sf *SceneFile) error {
	for _, def := range sf.Objects {
		g, err := w.build(def)
		if err != nil {
			return err
		}
		w.Scene.AddGameObject(g)
	}
	w.log.Info("scene loaded",
		zap.Int("objects", len(sf.Objects)),
		zap.Int("teleport", len(w.TeleportTargetObjects())),
		zap.Int("interactable", len(w.InteractableObjects())),
		zap.Int("collision", len(w.CollisionObjects())))
	return nil
}

func (w *World) build(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Visible = !def.Hidden
	g.Transform.Position = vec3(def.Position)
	r := def.Rotation
	g.Transform.Rotation = mgl32.AnglesToQuat(
		mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ)

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = mgl32.Vec3{1, 1, 1}
	} else {
		g.Transform.Scale = vec3(def.Scale)
	}
	if def.Color != "" {
		g.AddComponent(NewMaterial(def.Color))
	}

	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}

		var err error
		switch header.Type {
		case "BoxCollider":
			err = loadBoxCollider(g, raw)
		case "SphereCollider":
			err = loadSphereCollider(g, raw)
		case "Quad":
			err = loadQuad(g, raw)
		default:
			w.log.Warn("unknown component skipped",
				zap.String("object", def.Name), zap.String("type", header.Type))
		}
		if err != nil {
			return nil, fmt.Errorf("object %q: %s: %w", def.Name, header.Type, err)
		}
	}

	for _, childDef := range def.Children {
		child, err := w.build(childDef)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

func loadBoxCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def boxColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	col := components.NewBoxCollider(vec3(def.Size))
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadSphereCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def sphereColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	if def.Radius <= 0 {
		return fmt.Errorf("radius must be positive")
	}
	col := components.NewSphereCollider(def.Radius)
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadQuad(g *engine.GameObject, raw json.RawMessage) error {
	var def quadDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	q := components.NewQuad(def.Size[0], def.Size[1])
	q.DoubleSided = def.DoubleSided
	g.AddComponent(q)
	return nil
}

// --- Saving ---

func (sf *SceneFile) Save(path string) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Roles lists object names per role tag, depth first, sorted by name.
func (sf *SceneFile) Roles() map[string][]string {
	roles := make(map[string][]string)
	var visit func(defs []ObjectDef)
	visit = func(defs []ObjectDef) {
		for _, d := range defs {
			for _, t := range d.Tags {
				switch t {
				case RoleCollision, RoleInteractable, RoleTeleport:
					roles[t] = append(roles[t], d.Name)
				}
			}
			visit(d.Children)
		}
	}
	visit(sf.Objects)
	for _, names := range roles {
		sort.Strings(names)
	}
	return roles
}

func component(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func box(size [3]float32) json.RawMessage {
	return component(boxColliderDef{Type: "BoxCollider", Size: size})
}

func sphere(radius float32) json.RawMessage {
	return component(sphereColliderDef{Type: "SphereCollider", Radius: radius})
}

func quad(w, d float32) json.RawMessage {
	return component(quadDef{Type: "Quad", Size: [2]float32{w, d}})
}

// DefaultScene is a small room: a teleportable floor, a gentle and a steep
// ramp, walls, a platform and a few buttons.
func DefaultScene() *SceneFile {
	wall := func(name string, pos, size [3]float32) ObjectDef {
		return ObjectDef{
			Name: name, Tags: []string{RoleCollision}, Color: "Gray",
			Position: pos, Components: []json.RawMessage{box(size)},
		}
	}
	button := func(name, color string, pos [3]float32) ObjectDef {
		return ObjectDef{
			Name: name, Tags: []string{RoleInteractable}, Color: color,
			Position: pos, Components: []json.RawMessage{box([3]float32{0.4, 0.4, 0.4})},
		}
	}

	return &SceneFile{Objects: []ObjectDef{
		{
			Name: "floor", Tags: []string{RoleTeleport}, Color: "LightGray",
			Components: []json.RawMessage{quad(20, 20)},
		},
		{
			Name: "ramp", Tags: []string{RoleTeleport}, Color: "Beige",
			Position: [3]float32{-4, 0.75, -4}, Rotation: [3]float32{20, 0, 0},
			Components: []json.RawMessage{quad(3, 4)},
		},
		{
			Name: "cliff", Tags: []string{RoleTeleport}, Color: "Maroon",
			Position: [3]float32{4, 1.5, -4}, Rotation: [3]float32{60, 0, 0},
			Components: []json.RawMessage{quad(3, 3)},
		},
		{
			Name: "platform", Tags: []string{RoleTeleport}, Color: "SkyBlue",
			Position: [3]float32{0, 0.5, -7}, Components: []json.RawMessage{box([3]float32{4, 1, 2})},
		},
		wall("wall_north", [3]float32{0, 1.5, -10}, [3]float32{20, 3, 0.2}),
		wall("wall_south", [3]float32{0, 1.5, 10}, [3]float32{20, 3, 0.2}),
		wall("wall_east", [3]float32{10, 1.5, 0}, [3]float32{0.2, 3, 20}),
		wall("wall_west", [3]float32{-10, 1.5, 0}, [3]float32{0.2, 3, 20}),
		wall("pillar", [3]float32{2, 1.5, 2}, [3]float32{0.6, 3, 0.6}),
		{
			Name: "table", Tags: []string{RoleCollision}, Color: "Brown",
			Position: [3]float32{-2, 0.4, 1}, Components: []json.RawMessage{box([3]float32{1.2, 0.8, 0.8})},
			Children: []ObjectDef{
				button("red_button", "Red", [3]float32{-0.3, 0.6, 0}),
				button("green_button", "Green", [3]float32{0.3, 0.6, 0}),
			},
		},
		{
			Name: "orb", Tags: []string{RoleInteractable}, Color: "Gold",
			Position: [3]float32{3, 1.2, -1}, Components: []json.RawMessage{sphere(0.3)},
		},
		{
			Name: "ghost", Tags: []string{RoleInteractable}, Color: "Purple", Hidden: true,
			Position: [3]float32{0, 1.2, 3}, Components: []json.RawMessage{box([3]float32{0.5, 0.5, 0.5})},
		},
	}}
}
