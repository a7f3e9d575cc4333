package sim

import (
	"xrpointer/internal/engine"
	"xrpointer/internal/world"
	"xrpointer/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
)

// Highlighter mirrors pointer hover and select state into object
// materials so the renderer can show it.
type Highlighter struct {
	// Selections counts select presses per object name.
	Selections map[string]int
}

func NewHighlighter() *Highlighter {
	return &Highlighter{Selections: make(map[string]int)}
}

// Bind installs the highlighter as the pointer callbacks of opts.
func (h *Highlighter) Bind(opts *xr.SessionOptions) {
	opts.OnCursorHover = h.Hover
	opts.OnCursorLeave = h.Leave
	opts.OnSelectDown = h.Down
	opts.OnSelectUp = h.Up
}

func (h *Highlighter) Hover(obj *engine.GameObject) {
	if m := world.MaterialOf(obj); m != nil {
		m.Highlight = true
	}
}

func (h *Highlighter) Leave(obj *engine.GameObject) {
	if m := world.MaterialOf(obj); m != nil {
		m.Highlight = false
		m.Pressed = false
	}
}

func (h *Highlighter) Down(obj *engine.GameObject, _ mgl32.Vec3) {
	h.Selections[obj.Name]++
	if m := world.MaterialOf(obj); m != nil {
		m.Pressed = true
	}
}

func (h *Highlighter) Up(obj *engine.GameObject, _ mgl32.Vec3) {
	if m := world.MaterialOf(obj); m != nil {
		m.Pressed = false
	}
}
