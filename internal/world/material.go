package world

import "xrpointer/internal/engine"

// Material is how an object is drawn. Colors are raylib color names.
type Material struct {
	engine.BaseComponent
	Color string
	// Highlight is set while a pointer hovers the object.
	Highlight bool
	// Pressed is set between select down and select up.
	Pressed bool
}

func NewMaterial(color string) *Material {
	return &Material{Color: color}
}

// MaterialOf returns the object's material, or nil.
func MaterialOf(g *engine.GameObject) *Material {
	if g == nil {
		return nil
	}
	return engine.GetComponent[*Material](g)
}
