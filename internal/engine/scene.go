package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if g.Scene == s && g.Parent == nil {
		return
	}
	g.Detach()
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			g.Scene = nil
			return
		}
	}
}

// Contains reports whether g is a root of the scene.
func (s *Scene) Contains(g *GameObject) bool {
	for _, obj := range s.GameObjects {
		if obj == g {
			return true
		}
	}
	return false
}

// FindByName searches roots and their descendants.
func (s *Scene) FindByName(name string) *GameObject {
	var found *GameObject
	s.Traverse(func(g *GameObject) {
		if found == nil && g.Name == name {
			found = g
		}
	})
	return found
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	s.Traverse(func(g *GameObject) {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	})
	return result
}

func (s *Scene) Traverse(fn func(*GameObject)) {
	for _, g := range s.GameObjects {
		g.Traverse(fn)
	}
}

func (s *Scene) Start() {
	s.Traverse(func(g *GameObject) { g.Start() })
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
