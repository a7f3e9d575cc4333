package sim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const FlashDuration = 0.35 // seconds

// Flash is a full-screen fade played after a teleport.
type Flash struct {
	tween *gween.Tween
	// Alpha is the current overlay opacity, 0 when idle.
	Alpha float32
}

func (f *Flash) Trigger() {
	f.tween = gween.New(1, 0, FlashDuration, ease.OutQuad)
	f.Alpha = 1
}

func (f *Flash) Update(deltaTime float32) {
	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(deltaTime)
	f.Alpha = v
	if done {
		f.tween = nil
		f.Alpha = 0
	}
}

func (f *Flash) Active() bool { return f.tween != nil }
