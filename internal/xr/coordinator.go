package xr

import (
	"time"

	"go.uber.org/zap"
)

const DefaultHideDelay = 200 * time.Millisecond

// Scheduler runs fn once after d. Callbacks must run on the goroutine that
// ticks the coordinator.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type CoordinatorOptions struct {
	// Session configures both hands. Its IntervalSec is ignored; the
	// coordinator rate-limits both hands with IntervalSec below.
	Session  SessionOptions
	SnapTurn SnapTurnOptions
	// IntervalSec is the minimum time between processed ticks.
	IntervalSec float32
	// HideDelay is how long pointer lines stay hidden after a snap turn.
	HideDelay time.Duration
	Logger    *zap.Logger
}

func DefaultCoordinatorOptions() CoordinatorOptions {
	return CoordinatorOptions{
		Session:     DefaultSessionOptions(),
		SnapTurn:    DefaultSnapTurnOptions(),
		IntervalSec: DefaultIntervalSec,
		HideDelay:   DefaultHideDelay,
	}
}

// Coordinator runs a pointer and a snap turner per hand. One hand at a time
// is select-active, following whichever controller was last handled. Snap
// turns from either hand hide both pointer lines briefly.
type Coordinator struct {
	hands     HandSource
	scheduler Scheduler
	log       *zap.Logger

	left, right         *Session
	turnLeft, turnRight *SnapTurner
	onTurn              func()

	hideCount   int
	hideDelay   time.Duration
	enabled     bool
	nonVR       bool
	intervalSec float32
	sec         float32
	disposed    bool
}

// NewCoordinator builds both hands. hands may be nil until controllers are
// available; scheduler may be nil, in which case snap turns do not hide the
// pointer lines.
func NewCoordinator(rig Rig, hands HandSource, scheduler Scheduler, opts CoordinatorOptions) *Coordinator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.IntervalSec < 0 {
		opts.IntervalSec = DefaultIntervalSec
	}
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}
	c := &Coordinator{
		hands:       hands,
		scheduler:   scheduler,
		log:         log,
		onTurn:      opts.SnapTurn.OnTurn,
		hideDelay:   opts.HideDelay,
		enabled:     true,
		intervalSec: opts.IntervalSec,
	}

	turn := opts.SnapTurn
	turn.OnTurn = c.handleTurn
	if turn.Logger == nil {
		turn.Logger = log
	}
	c.turnLeft = NewSnapTurner(rig.RotationTarget, turn)
	c.turnRight = NewSnapTurner(rig.RotationTarget, turn)

	newSession := func(side Side) *Session {
		so := opts.Session
		so.IntervalSec = 0
		so.Name = side.String()
		if so.Logger == nil {
			so.Logger = log
		}
		return NewSession(rig, so)
	}
	c.left = newSession(Left)
	c.right = newSession(Right)
	c.left.SetEnabled(false)
	c.right.SetEnabled(true)
	return c
}

func (c *Coordinator) Left() *Session  { return c.left }
func (c *Coordinator) Right() *Session { return c.right }

func (c *Coordinator) Session(side Side) *Session {
	if side == Left {
		return c.left
	}
	return c.right
}

func (c *Coordinator) SnapTurner(side Side) *SnapTurner {
	if side == Left {
		return c.turnLeft
	}
	return c.turnRight
}

// Active is the select-active hand.
func (c *Coordinator) Active() Side {
	if c.left.Enabled() {
		return Left
	}
	return Right
}

// Tick runs one frame: hand selection, snap turns, then both pointers.
func (c *Coordinator) Tick(deltaTime float32) {
	if !c.enabled || c.disposed {
		return
	}
	c.sec += deltaTime
	if c.sec < c.intervalSec {
		return
	}
	c.sec = 0

	var hands Hands
	if c.hands != nil {
		hands = c.hands.Hands()
	}

	c.resolveActiveHand(hands)

	if hands.LeftGamepad != nil {
		c.turnLeft.Tick(hands.LeftGamepad.Axes)
	}
	if hands.RightGamepad != nil {
		c.turnRight.Tick(hands.RightGamepad.Axes)
	}
	c.left.Tick(deltaTime, hands.Left)
	c.right.Tick(deltaTime, hands.Right)
}

// resolveActiveHand hands select to the other controller when the active
// one is idle while the other is in use, or when the active one is gone.
// When both are idle the active hand stays.
func (c *Coordinator) resolveActiveHand(h Hands) {
	var active Side
	switch {
	case c.left.Enabled():
		active = Left
	case c.right.Enabled():
		active = Right
	default:
		return
	}
	other := Right
	if active == Right {
		other = Left
	}

	mine, theirs := h.Gamepad(active), h.Gamepad(other)
	if theirs == nil {
		return
	}
	if mine != nil && !(mine.Quiet() && !theirs.Quiet()) {
		return
	}
	c.Session(active).SetEnabled(false)
	c.Session(other).SetEnabled(true)
	c.keepHidden()
	c.log.Debug("active hand changed", zap.Stringer("hand", other))
}

// keepHidden re-hides both lines while a snap-turn hide is running, since
// enabling a session shows its line.
func (c *Coordinator) keepHidden() {
	if c.hideCount > 0 {
		c.left.HidePointerLine()
		c.right.HidePointerLine()
	}
}

func (c *Coordinator) handleTurn() {
	c.hideCount++
	if c.hideCount == 1 && c.scheduler != nil {
		c.left.HidePointerLine()
		c.right.HidePointerLine()
		c.log.Debug("pointer lines hidden")
		c.scheduler.AfterFunc(c.hideDelay, c.hideTimeout)
	} else if c.scheduler == nil {
		c.hideCount = 0
	}
	if c.onTurn != nil {
		c.onTurn()
	}
}

func (c *Coordinator) hideTimeout() {
	if c.disposed {
		c.hideCount = 0
		return
	}
	if c.hideCount == 1 {
		c.hideCount = 0
		c.left.ResetPointerLineVisible()
		c.right.ResetPointerLineVisible()
		c.log.Debug("pointer lines restored")
		return
	}
	c.hideCount = 1
	c.scheduler.AfterFunc(c.hideDelay, c.hideTimeout)
}

// Hidden reports whether a snap turn is currently hiding the pointer lines.
func (c *Coordinator) Hidden() bool { return c.hideCount > 0 }

func (c *Coordinator) Enabled() bool { return c.enabled }

func (c *Coordinator) SetEnabled(v bool) {
	if c.enabled == v {
		return
	}
	c.enabled = v
	c.updateState()
}

func (c *Coordinator) NonVRMode() bool { return c.nonVR }

// SetNonVRMode switches both pointers to the mouse ray and disables snap
// turning.
func (c *Coordinator) SetNonVRMode(v bool) {
	if c.nonVR == v {
		return
	}
	c.nonVR = v
	c.updateState()
}

func (c *Coordinator) updateState() {
	if c.disposed {
		return
	}
	c.left.SetEnabled(false)
	c.right.SetEnabled(c.enabled)
	c.turnLeft.SetEnabled(c.enabled && !c.nonVR)
	c.turnRight.SetEnabled(c.enabled && !c.nonVR)
	c.left.SetNonVRMode(c.nonVR)
	c.right.SetNonVRMode(c.nonVR)
	c.keepHidden()
}

// Dispose releases both pointers and stops snap turning. A pending hide
// timer fires without effect. It is safe to call more than once.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.turnLeft.SetEnabled(false)
	c.turnRight.SetEnabled(false)
	c.left.Dispose()
	c.right.Dispose()
	c.log.Debug("coordinator disposed")
}
