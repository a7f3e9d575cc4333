package game

import (
	"time"

	"xrpointer/internal/camera"
	"xrpointer/internal/config"
	"xrpointer/internal/engine"
	"xrpointer/internal/sim"
	"xrpointer/internal/world"
	"xrpointer/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Game struct {
	World     *world.World
	Camera    *camera.FPSCamera
	Events    *xr.InputEvents
	Timers    *engine.Timers
	Pointers  *xr.Coordinator
	Hands     *sim.Controllers
	Highlight *sim.Highlighter
	Flash     sim.Flash
	DebugMode bool

	cfg      *config.Config
	log      *zap.Logger
	renderer *Renderer
	vr       bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New loads the configured scene, or the built-in one, and wires the
// pointers to it. The window is opened by Run.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	w := world.New(log)
	var err error
	if cfg.Scene != "" {
		err = w.LoadScene(cfg.Scene)
	} else {
		err = w.Load(world.DefaultScene())
	}
	if err != nil {
		return nil, err
	}

	g := &Game{
		World:     w,
		Camera:    camera.New(w.Player, w.Camera),
		Events:    xr.NewInputEvents(),
		Timers:    engine.NewTimers(),
		Highlight: sim.NewHighlighter(),
		cfg:       cfg,
		log:       log,
		renderer:  NewRenderer(),
	}
	g.Camera.MoveSpeed = cfg.Window.MoveSpeed
	g.Camera.LookSpeed = cfg.Window.MouseLook
	g.Hands = sim.NewControllers(w.Player, g.Events, log)

	opts := cfg.CoordinatorOptions(log)
	opts.Session.Targets = w
	opts.Session.Input = g.Events
	g.Highlight.Bind(&opts.Session)
	opts.Session.OnTeleport = func(mgl32.Vec3, float32) { g.Flash.Trigger() }
	g.Pointers = xr.NewCoordinator(w.Rig(), g.Hands, g.Timers, opts)
	g.Pointers.SetNonVRMode(true)
	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.cfg.Window.Width), int32(g.cfg.Window.Height), g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))
	defer g.Pointers.Dispose()

	g.World.Scene.Start()
	g.log.Info("demo started", zap.Int("width", g.cfg.Window.Width), zap.Int("height", g.cfg.Window.Height))

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// SetVR switches between the mouse pointer and the simulated controllers.
func (g *Game) SetVR(on bool) {
	if g.vr == on {
		return
	}
	g.vr = on
	if on {
		g.Hands.Connect()
	} else {
		g.Hands.Disconnect()
	}
	g.Pointers.SetNonVRMode(!on)
	g.log.Info("input mode changed", zap.Bool("vr", on))
}

func (g *Game) VR() bool { return g.vr }

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.Timers.AdvanceSeconds(deltaTime)

	if rl.IsKeyPressed(rl.KeyV) {
		g.SetVR(!g.vr)
	}
	// Toggle debug mode
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}

	if cam := g.World.CameraComponent(); cam != nil {
		cam.Aspect = float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	}
	g.Camera.Update(deltaTime, readCameraInput())

	if g.vr {
		g.Hands.Apply(readControllerInput())
	} else {
		g.mousePointer()
	}

	g.World.Update(deltaTime)
	g.Pointers.Tick(deltaTime)
	if g.vr {
		// After the tick, so select goes to the hand that was just pressed.
		g.Hands.Select()
	}
	g.Flash.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) mousePointer() {
	pos := rl.GetMousePosition()
	if rl.CheckCollisionPointRec(pos, hudBounds) {
		return
	}
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	g.Events.PointerMove.Invoke(xr.NDCFromClient(pos.X, pos.Y, w, h))
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		g.Events.PointerDown.Invoke()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		g.Events.PointerUp.Invoke()
	}
}

func (g *Game) Draw() {
	cam := g.World.CameraComponent()
	if cam == nil {
		return
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(raylibCamera(cam))
	g.renderer.DrawScene(g.World.Scene, cam)
	g.renderer.DrawPointer(g.Pointers.Left())
	g.renderer.DrawPointer(g.Pointers.Right())
	if g.vr {
		g.renderer.DrawControllers(g.Hands.Hands())
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	if g.Flash.Active() {
		rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), rl.Fade(rl.White, g.Flash.Alpha*0.8))
	}
	g.DrawUI()
	rl.EndDrawing()
}
