package xr

import (
	"time"

	"xrpointer/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newPad() *Gamepad {
	return &Gamepad{Axes: make([]float32, 4), Buttons: make([]Button, 2)}
}

var _ = Describe("Coordinator", func() {
	var (
		tr       *testRig
		timers   *engine.Timers
		holder   *HandHolder
		leftPad  *Gamepad
		rightPad *Gamepad
		leftSrc  InputSource
		rightSrc InputSource
		turns    int
		hovered  []string
		c        *Coordinator
	)

	var turn = func() {
		rightPad.Axes[2] = 0.9
		c.Tick(dt)
		rightPad.Axes[2] = 0
		c.Tick(dt)
	}

	BeforeEach(func() {
		tr = newTestRig()
		timers = engine.NewTimers()
		turns = 0
		hovered = nil

		// The player sits at world x=10; put both controllers over the floor.
		holder = NewHandHolder(tr.player, 2)
		for _, ctl := range holder.Controllers {
			ctl.Transform.Position = mgl32.Vec3{-9.7, 1.5, -0.7}
			ctl.Transform.Rotation = mgl32.QuatRotate(-mgl32.DegToRad(60), mgl32.Vec3{1, 0, 0})
		}

		leftPad, rightPad = newPad(), newPad()
		leftSrc = InputSource{Handedness: HandednessLeft, TargetRayMode: TargetRayTrackedPointer, Gamepad: leftPad}
		rightSrc = InputSource{Handedness: HandednessRight, TargetRayMode: TargetRayTrackedPointer, Gamepad: rightPad}
		holder.Connected(holder.Controllers[0], leftSrc)
		holder.Connected(holder.Controllers[1], rightSrc)

		opts := DefaultCoordinatorOptions()
		opts.IntervalSec = 0
		opts.Session.Targets = &StaticTargets{Teleport: objs(tr.floor)}
		opts.Session.OnCursorHover = func(o *engine.GameObject) { hovered = append(hovered, o.Name) }
		opts.SnapTurn.OnTurn = func() { turns++ }
		c = NewCoordinator(tr.Rig, holder, timers, opts)
	})

	AfterEach(func() {
		c.Dispose()
	})

	Describe("active hand", func() {
		It("starts on the right hand", func() {
			Expect(c.Active()).To(Equal(Right))
			Expect(c.Left().Enabled()).To(BeFalse())
			Expect(c.Right().Enabled()).To(BeTrue())
		})

		It("follows the hand that is in use", func() {
			leftPad.Axes[1] = 0.3
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Left))

			leftPad.Axes[1] = 0
			rightPad.Buttons[0].Pressed = true
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Right))
		})

		It("keeps the active hand when both are quiet", func() {
			leftPad.Axes[0] = -0.2
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Left))

			leftPad.Axes[0] = 0
			for i := 0; i < 5; i++ {
				c.Tick(dt)
			}
			Expect(c.Active()).To(Equal(Left))
		})

		It("keeps the active hand when both are in use", func() {
			leftPad.Axes[1] = 0.3
			rightPad.Axes[1] = 0.3
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Right))
		})

		It("moves to the remaining hand when the active one disconnects", func() {
			holder.Disconnected(rightSrc)
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Left))
			Expect(holder.Hands().Right).To(BeNil())
		})

		It("stays put without another gamepad", func() {
			holder.Disconnected(leftSrc)
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Right))
		})

		It("ignores input sources that are not tracked pointers", func() {
			gaze := InputSource{Handedness: HandednessLeft, TargetRayMode: "gaze", Gamepad: newPad()}
			holder.Disconnected(gaze)
			holder.Connected(engine.NewGameObject("gaze"), gaze)
			Expect(holder.Hands().LeftGamepad).To(BeIdenticalTo(leftPad))
		})

		It("ticks only the active pointer", func() {
			c.Tick(dt)
			Expect(hovered).To(Equal([]string{"floor"}))
			Expect(c.Right().Hovered()).To(BeIdenticalTo(tr.floor))
			Expect(c.Left().Hovered()).To(BeNil())
		})
	})

	Describe("snap turn", func() {
		It("turns the rotation target and reports the turn", func() {
			turn()
			Expect(turns).To(Equal(1))
			Expect(tr.player.Yaw()).To(BeNumerically("~", -mgl32.DegToRad(45), 1e-4))
		})

		It("hides both pointer lines until the delay has passed", func() {
			turn()
			Expect(c.Hidden()).To(BeTrue())
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(199 * time.Millisecond)
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(time.Millisecond)
			Expect(c.Hidden()).To(BeFalse())
			Expect(c.Right().PointerLine().Object.Visible).To(BeTrue())
			Expect(c.Left().PointerLine().Object.Visible).To(BeFalse())
		})

		It("extends the hide by exactly one cycle for repeated turns", func() {
			turn()
			turn()
			turn()
			Expect(turns).To(Equal(3))

			timers.Advance(DefaultHideDelay)
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(DefaultHideDelay - time.Millisecond)
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(time.Millisecond)
			Expect(c.Right().PointerLine().Object.Visible).To(BeTrue())
			Expect(timers.Pending()).To(BeZero())
		})

		It("keeps both lines hidden when the active hand changes mid-hide", func() {
			rightPad.Axes[2] = 0.9
			c.Tick(dt)
			Expect(turns).To(Equal(1))

			rightPad.Axes[2] = 0
			leftPad.Buttons[0].Pressed = true
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Left))
			Expect(c.Hidden()).To(BeTrue())
			Expect(c.Left().PointerLine().Object.Visible).To(BeFalse())
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(DefaultHideDelay)
			Expect(c.Hidden()).To(BeFalse())
			Expect(c.Left().PointerLine().Object.Visible).To(BeTrue())
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())
		})

		It("keeps both lines hidden across a mode toggle mid-hide", func() {
			turn()
			c.SetEnabled(false)
			c.SetEnabled(true)
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			timers.Advance(DefaultHideDelay)
			Expect(c.Right().PointerLine().Object.Visible).To(BeTrue())
		})

		It("turns from either hand", func() {
			leftPad.Axes[2] = -0.9
			c.Tick(dt)
			Expect(turns).To(Equal(1))
			Expect(c.Active()).To(Equal(Left))
			Expect(tr.player.Yaw()).To(BeNumerically("~", mgl32.DegToRad(45), 1e-4))
		})
	})

	Describe("modes", func() {
		It("disables snap turning in non-VR mode", func() {
			c.SetNonVRMode(true)
			Expect(c.SnapTurner(Left).Enabled()).To(BeFalse())
			Expect(c.SnapTurner(Right).Enabled()).To(BeFalse())
			Expect(c.Right().NonVRMode()).To(BeTrue())
			Expect(c.Right().PointerLine().Object.Visible).To(BeFalse())

			rightPad.Axes[2] = 0.9
			c.Tick(dt)
			Expect(turns).To(BeZero())

			c.SetNonVRMode(false)
			Expect(c.SnapTurner(Right).Enabled()).To(BeTrue())
			Expect(c.Right().PointerLine().Object.Visible).To(BeTrue())
		})

		It("resets to the right hand when toggled", func() {
			leftPad.Axes[0] = 0.2
			c.Tick(dt)
			Expect(c.Active()).To(Equal(Left))

			c.SetNonVRMode(true)
			Expect(c.Active()).To(Equal(Right))
			Expect(c.Left().NonVRMode()).To(BeTrue())
		})

		It("stops everything while disabled", func() {
			c.SetEnabled(false)
			Expect(c.Left().Enabled()).To(BeFalse())
			Expect(c.Right().Enabled()).To(BeFalse())

			rightPad.Axes[2] = 0.9
			c.Tick(dt)
			Expect(turns).To(BeZero())
			Expect(hovered).To(BeEmpty())

			c.SetEnabled(true)
			Expect(c.Right().Enabled()).To(BeTrue())
			Expect(c.Left().Enabled()).To(BeFalse())
		})
	})

	Describe("Dispose", func() {
		It("removes the cues and can be repeated", func() {
			line := c.Right().PointerLine().Object
			Expect(tr.Scene.Contains(line)).To(BeTrue())
			c.Dispose()
			c.Dispose()
			Expect(tr.Scene.Contains(line)).To(BeFalse())
		})

		It("stops turning and polling afterwards", func() {
			yaw := tr.player.Yaw()
			c.Dispose()
			Expect(c.SnapTurner(Left).Enabled()).To(BeFalse())
			Expect(c.SnapTurner(Right).Enabled()).To(BeFalse())

			rightPad.Axes[2] = 0.9
			leftPad.Buttons[0].Pressed = true
			c.Tick(dt)
			Expect(turns).To(BeZero())
			Expect(tr.player.Yaw()).To(Equal(yaw))
			Expect(c.Active()).To(Equal(Right))
		})

		It("lets a pending hide timer lapse without re-arming", func() {
			turn()
			turn()
			Expect(timers.Pending()).To(Equal(1))
			c.Dispose()

			timers.Advance(DefaultHideDelay)
			Expect(timers.Pending()).To(BeZero())
			Expect(c.Hidden()).To(BeFalse())
		})
	})
})
