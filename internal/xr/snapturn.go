package xr

import (
	"math"

	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DefaultActiveThreshold   = 0.7
	DefaultDeactiveThreshold = 0.5
	DefaultTurnAmount        = math.Pi / 4
)

type SnapTurnOptions struct {
	// ActiveThreshold is the stick deflection that fires a turn.
	ActiveThreshold float32
	// DeactiveThreshold is the deflection at or below which the stick counts
	// as released.
	DeactiveThreshold float32
	// TurnAmount is the turn angle in radians.
	TurnAmount float32
	OnTurn     func()
	Logger     *zap.Logger
}

func DefaultSnapTurnOptions() SnapTurnOptions {
	return SnapTurnOptions{
		ActiveThreshold:   DefaultActiveThreshold,
		DeactiveThreshold: DefaultDeactiveThreshold,
		TurnAmount:        DefaultTurnAmount,
	}
}

// SnapTurner turns its target by a fixed yaw step each time a stick is
// pushed past the active threshold, and re-arms once it comes back below
// the deactive threshold.
type SnapTurner struct {
	target    *engine.GameObject
	opts      SnapTurnOptions
	log       *zap.Logger
	direction int
	enabled   bool
}

// NewSnapTurner rotates target. Zero option values take their defaults.
func NewSnapTurner(target *engine.GameObject, opts SnapTurnOptions) *SnapTurner {
	if opts.ActiveThreshold == 0 {
		opts.ActiveThreshold = DefaultActiveThreshold
	}
	if opts.DeactiveThreshold == 0 {
		opts.DeactiveThreshold = DefaultDeactiveThreshold
	}
	if opts.TurnAmount == 0 {
		opts.TurnAmount = DefaultTurnAmount
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SnapTurner{target: target, opts: opts, log: log, enabled: true}
}

// Tick feeds one gamepad axes reading. The third axis is read when there are
// at least three, otherwise the first.
func (s *SnapTurner) Tick(axes []float32) {
	if !s.enabled || len(axes) == 0 {
		return
	}
	amount := axes[0]
	if len(axes) > 2 {
		amount = axes[2]
	}
	mag := float32(math.Abs(float64(amount)))

	if s.direction == 0 {
		if mag < s.opts.ActiveThreshold {
			return
		}
		dir := -1
		if amount > 0 {
			dir = 1
		}
		s.direction = dir
		s.SnapTurn(dir)
		return
	}
	if mag > s.opts.DeactiveThreshold {
		return
	}
	s.direction = 0
}

// SnapTurn turns the target one step about world up, around its own
// position. A positive direction turns right.
func (s *SnapTurner) SnapTurn(direction int) {
	if s.target != nil {
		a := float64(s.opts.TurnAmount) * float64(direction)
		sin, cos := float32(math.Sin(a)), float32(math.Cos(a))
		dir := mgl32.Vec3{-sin, 0, cos}
		dir = s.target.WorldQuaternion().Rotate(dir)
		s.target.LookAt(s.target.WorldPosition().Add(dir))
		s.log.Debug("snap turn", zap.Int("direction", direction))
	}
	if s.opts.OnTurn != nil {
		s.opts.OnTurn()
	}
}

// Direction is the latched direction, 0 when released.
func (s *SnapTurner) Direction() int { return s.direction }

func (s *SnapTurner) Enabled() bool { return s.enabled }

// SetEnabled turns input handling on or off, releasing any latch.
func (s *SnapTurner) SetEnabled(v bool) {
	if s.enabled == v {
		return
	}
	s.enabled = v
	s.direction = 0
}
