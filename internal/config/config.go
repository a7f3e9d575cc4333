package config

import (
	"fmt"
	"os"
	"time"

	"xrpointer/internal/logging"
	"xrpointer/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultTargetFPS   = 60
	DefaultTurnDegrees = 45.0
	DefaultMoveSpeed   = 3.0
	DefaultMouseLook   = 0.003
)

type Config struct {
	Pointer     PointerConfig  `yaml:"pointer"`
	SnapTurn    SnapTurnConfig `yaml:"snap_turn"`
	HideDelayMs int            `yaml:"hide_delay_ms"`
	Window      WindowConfig   `yaml:"window"`
	Log         logging.Config `yaml:"log"`
	// Scene is a scene file path; empty uses the built-in demo scene.
	Scene string `yaml:"scene"`
}

type PointerConfig struct {
	Far              float32 `yaml:"far"`
	IntervalSec      float32 `yaml:"interval_sec"`
	FirstPersonLayer uint32  `yaml:"first_person_layer"`
}

type SnapTurnConfig struct {
	ActiveThreshold   float32 `yaml:"active_threshold"`
	DeactiveThreshold float32 `yaml:"deactive_threshold"`
	TurnDegrees       float32 `yaml:"turn_degrees"`
}

type WindowConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Title     string  `yaml:"title"`
	TargetFPS int     `yaml:"target_fps"`
	MoveSpeed float32 `yaml:"move_speed"`
	MouseLook float32 `yaml:"mouse_look"`
}

func DefaultConfig() *Config {
	return &Config{
		Pointer: PointerConfig{
			Far:              xr.DefaultFar,
			IntervalSec:      xr.DefaultIntervalSec,
			FirstPersonLayer: xr.DefaultFirstPersonOnlyLayer,
		},
		SnapTurn: SnapTurnConfig{
			ActiveThreshold:   xr.DefaultActiveThreshold,
			DeactiveThreshold: xr.DefaultDeactiveThreshold,
			TurnDegrees:       DefaultTurnDegrees,
		},
		HideDelayMs: int(xr.DefaultHideDelay / time.Millisecond),
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     "xrpointer",
			TargetFPS: DefaultTargetFPS,
			MoveSpeed: DefaultMoveSpeed,
			MouseLook: DefaultMouseLook,
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	p, s := c.Pointer, c.SnapTurn
	switch {
	case p.Far <= 0:
		return fmt.Errorf("pointer.far must be positive, got %v", p.Far)
	case p.IntervalSec < 0:
		return fmt.Errorf("pointer.interval_sec must not be negative, got %v", p.IntervalSec)
	case p.FirstPersonLayer > 31:
		return fmt.Errorf("pointer.first_person_layer must be below 32, got %d", p.FirstPersonLayer)
	case s.ActiveThreshold <= 0 || s.ActiveThreshold > 1:
		return fmt.Errorf("snap_turn.active_threshold must be in (0, 1], got %v", s.ActiveThreshold)
	case s.DeactiveThreshold <= 0 || s.DeactiveThreshold >= s.ActiveThreshold:
		return fmt.Errorf("snap_turn.deactive_threshold must be in (0, active_threshold), got %v", s.DeactiveThreshold)
	case s.TurnDegrees <= 0 || s.TurnDegrees > 180:
		return fmt.Errorf("snap_turn.turn_degrees must be in (0, 180], got %v", s.TurnDegrees)
	case c.HideDelayMs <= 0:
		return fmt.Errorf("hide_delay_ms must be positive, got %d", c.HideDelayMs)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return c.Log.Validate()
}

// CoordinatorOptions converts the pointer and snap turn settings. Callbacks
// and targets are left for the caller.
func (c *Config) CoordinatorOptions(log *zap.Logger) xr.CoordinatorOptions {
	opts := xr.DefaultCoordinatorOptions()
	opts.IntervalSec = c.Pointer.IntervalSec
	opts.HideDelay = time.Duration(c.HideDelayMs) * time.Millisecond
	opts.Logger = log

	opts.Session.Far = c.Pointer.Far
	opts.Session.FirstPersonOnlyLayer = c.Pointer.FirstPersonLayer
	opts.Session.Logger = log

	opts.SnapTurn.ActiveThreshold = c.SnapTurn.ActiveThreshold
	opts.SnapTurn.DeactiveThreshold = c.SnapTurn.DeactiveThreshold
	opts.SnapTurn.TurnAmount = mgl32.DegToRad(c.SnapTurn.TurnDegrees)
	opts.SnapTurn.Logger = log
	return opts
}
