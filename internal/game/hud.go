package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var hudBounds = rl.Rectangle{X: 10, Y: 10, Width: 320, Height: 150}

var (
	colorBgPanel       = rl.NewColor(18, 18, 24, 235)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

func (g *Game) DrawUI() {
	rl.DrawRectangleRounded(hudBounds, 0.08, 8, colorBgPanel)

	x, y := hudBounds.X+12, hudBounds.Y+12
	enabled := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Pointer enabled", g.Pointers.Enabled())
	if enabled != g.Pointers.Enabled() {
		g.Pointers.SetEnabled(enabled)
	}
	vr := gui.CheckBox(rl.Rectangle{X: x, Y: y + 24, Width: 16, Height: 16}, "Simulated controllers (V)", g.vr)
	if vr != g.vr {
		g.SetVR(vr)
	}

	active := g.Pointers.Session(g.Pointers.Active())
	target := "-"
	if h := active.Hovered(); h != nil {
		kind := "interactable"
		if active.HitIsTeleport() {
			kind = "teleport"
		}
		target = fmt.Sprintf("%s (%s, %d selects)", h.Name, kind, g.Highlight.Selections[h.Name])
	}
	rl.DrawText(fmt.Sprintf("Active hand: %s", g.Pointers.Active()), int32(x), int32(y+52), 16, colorTextPrimary)
	rl.DrawText("Target: "+target, int32(x), int32(y+72), 16, colorTextPrimary)
	if g.Pointers.Hidden() {
		rl.DrawText("turning", int32(x), int32(y+92), 16, rl.Yellow)
	}

	help := "WASD move, hold RMB to look, LMB select, F1 debug"
	if g.vr {
		help = "J/L left stick, arrows right stick, Q/E select, V mouse"
	}
	rl.DrawText(help, int32(x), int32(hudBounds.Y+hudBounds.Height+8), 16, colorTextSecondary)

	if g.DebugMode {
		screenW := int32(rl.GetScreenWidth())
		rl.DrawFPS(screenW-100, 10)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), screenW-200, 35, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), screenW-200, 55, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Objects: %d drawn, %d culled", g.renderer.Drawn, g.renderer.Culled), screenW-260, 75, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Timers:  %d pending", g.Timers.Pending()), screenW-200, 95, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Far:     %.1f m", g.cfg.Pointer.Far), screenW-200, 115, 16, rl.Lime)
	}
}
