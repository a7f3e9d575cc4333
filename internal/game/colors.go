package game

import (
	"xrpointer/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Color name mapping for scene materials
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// lookupColor returns a raylib color from a name string
func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// materialColor applies hover and press feedback to the base color.
func materialColor(m *world.Material) rl.Color {
	if m == nil {
		return rl.White
	}
	c := lookupColor(m.Color)
	switch {
	case m.Pressed:
		return rl.Orange
	case m.Highlight:
		return lighten(c, 0.45)
	}
	return c
}

func lighten(c rl.Color, f float32) rl.Color {
	mix := func(v uint8) uint8 { return uint8(float32(v) + (255-float32(v))*f) }
	return rl.NewColor(mix(c.R), mix(c.G), mix(c.B), c.A)
}
