package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vedantwpatil/FocusFrame/internal/motion"
	"github.com/vedantwpatil/FocusFrame/internal/pose"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/viewport"
)

type Config struct {
	Motion    MotionConfig    `toml:"motion"`
	Trail     TrailConfig     `toml:"trail"`
	Effects   EffectsConfig   `toml:"effects"`
	Cursor    CursorConfig    `toml:"cursor"`
	Zoom      ZoomConfig      `toml:"zoom"`
	Display   DisplayConfig   `toml:"display"`
	Recording RecordingConfig `toml:"recording"`
}

type MotionConfig struct {
	MinSpeedThreshold     float64 `toml:"min_speed_threshold"`
	MaxSpeed              float64 `toml:"max_speed"`
	MinDistanceThreshold  float64 `toml:"min_distance_threshold"`
	AccelerationThreshold float64 `toml:"acceleration_threshold"`
	Intensity             float64 `toml:"intensity"`
}

type TrailConfig struct {
	Steps            int     `toml:"steps"`
	OpacityBase      float64 `toml:"opacity_base"`
	OffsetMultiplier float64 `toml:"offset_multiplier"`
}

type EffectsConfig struct {
	BlurBase float64 `toml:"blur_base"`
	// MovementAngle is in degrees.
	MovementAngle float64 `toml:"movement_angle"`
	SkewFactor    float64 `toml:"skew_factor"`
	StretchFactor float64 `toml:"stretch_factor"`
}

type CursorConfig struct {
	Transition             string  `toml:"transition"`
	LargeDistanceThreshold float64 `toml:"large_distance_threshold"`
	Size                   float64 `toml:"size"`
	AutoHide               bool    `toml:"auto_hide"`
	InactivityMs           int     `toml:"inactivity_ms"`
}

type ZoomConfig struct {
	Smoothing float64 `toml:"smoothing"`
}

// DisplayConfig describes the surface poses are computed for. A zero width
// or height shows the recording at its own size.
type DisplayConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	DPR    float64 `toml:"dpr"`
}

type RecordingConfig struct {
	TargetFPS int    `toml:"target_fps"`
	OutputDir string `toml:"output_dir"`
}

func NewConfig() *Config {
	return &Config{
		Motion: MotionConfig{
			MinSpeedThreshold:     1.5,
			MaxSpeed:              150,
			MinDistanceThreshold:  0.6,
			AccelerationThreshold: 15,
			Intensity:             60,
		},
		Trail: TrailConfig{
			Steps:            5,
			OpacityBase:      0.35,
			OffsetMultiplier: 0.6,
		},
		Effects: EffectsConfig{
			BlurBase:      0.05,
			MovementAngle: 12,
			SkewFactor:    0.12,
			StretchFactor: 0.25,
		},
		Cursor: CursorConfig{
			Transition:             motion.TransitionEase.String(),
			LargeDistanceThreshold: motion.DefaultLargeDistanceThreshold,
			Size:                   pose.DefaultCursorSize,
			AutoHide:               true,
			InactivityMs:           int(pose.DefaultInactivity / time.Millisecond),
		},
		Zoom: ZoomConfig{
			Smoothing: 0.1,
		},
		Display: DisplayConfig{
			DPR: 1,
		},
		Recording: RecordingConfig{
			TargetFPS: 60,
			OutputDir: "output",
		},
	}
}

// LoadConfig reads the configuration at path. A missing file is created
// with the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return readConfig(path)
}

func readConfig(path string) (*Config, error) {
	cfg := NewConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports every out-of-range option.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	m := c.Motion
	check(m.MinSpeedThreshold >= 0, "motion.min_speed_threshold must not be negative")
	check(m.MaxSpeed > m.MinSpeedThreshold, "motion.max_speed must exceed motion.min_speed_threshold")
	check(m.MinDistanceThreshold >= 0, "motion.min_distance_threshold must not be negative")
	check(m.AccelerationThreshold > 0, "motion.acceleration_threshold must be positive")
	check(m.Intensity >= 0 && m.Intensity <= 100, "motion.intensity %v outside 0..100", m.Intensity)

	check(c.Trail.Steps >= 0, "trail.steps must not be negative")
	check(c.Trail.OpacityBase >= 0 && c.Trail.OpacityBase <= 1, "trail.opacity_base %v outside 0..1", c.Trail.OpacityBase)
	check(c.Trail.OffsetMultiplier >= 0, "trail.offset_multiplier must not be negative")

	check(c.Effects.BlurBase >= 0, "effects.blur_base must not be negative")
	check(c.Effects.SkewFactor >= 0 && c.Effects.SkewFactor < 1, "effects.skew_factor %v outside 0..1", c.Effects.SkewFactor)
	check(c.Effects.StretchFactor >= 0, "effects.stretch_factor must not be negative")

	if _, err := motion.ParseTransitionType(c.Cursor.Transition); err != nil {
		errs = append(errs, fmt.Errorf("cursor.transition: %w", err))
	}
	check(c.Cursor.LargeDistanceThreshold > 0, "cursor.large_distance_threshold must be positive")
	check(c.Cursor.Size > 0, "cursor.size must be positive")
	check(c.Cursor.InactivityMs > 0, "cursor.inactivity_ms must be positive")

	check(c.Zoom.Smoothing > 0 && c.Zoom.Smoothing <= 1, "zoom.smoothing %v outside (0,1]", c.Zoom.Smoothing)

	check(c.Display.Width >= 0 && c.Display.Height >= 0, "display size must not be negative")
	check(c.Display.DPR > 0, "display.dpr must be positive")

	check(c.Recording.TargetFPS > 0, "recording.target_fps must be positive")
	check(c.Recording.OutputDir != "", "recording.output_dir must be set")

	return errors.Join(errs...)
}

// EffectConfig converts the motion-effect options.
func (c *Config) EffectConfig() motion.EffectConfig {
	e := motion.DefaultEffectConfig()
	e.MinSpeedThreshold = c.Motion.MinSpeedThreshold
	e.MaxSpeed = c.Motion.MaxSpeed
	e.AccelerationThreshold = c.Motion.AccelerationThreshold
	e.Intensity = c.Motion.Intensity
	e.TrailSteps = c.Trail.Steps
	e.TrailOpacityBase = c.Trail.OpacityBase
	e.TrailOffsetMultiplier = c.Trail.OffsetMultiplier
	e.BlurBase = c.Effects.BlurBase
	e.MovementAngle = c.Effects.MovementAngle
	e.SkewFactor = c.Effects.SkewFactor
	e.StretchFactor = c.Effects.StretchFactor
	return e
}

// PoseConfig converts the options used by the pose assembler.
func (c *Config) PoseConfig() (pose.Config, error) {
	transition, err := motion.ParseTransitionType(c.Cursor.Transition)
	if err != nil {
		return pose.Config{}, err
	}
	p := pose.DefaultConfig()
	p.Stabilizer.MinDistance = c.Motion.MinDistanceThreshold
	p.Effects = c.EffectConfig()
	p.Transition = transition
	p.LargeDistanceThreshold = c.Cursor.LargeDistanceThreshold
	p.CursorSize = c.Cursor.Size
	p.AutoHide = c.Cursor.AutoHide
	p.Inactivity = time.Duration(c.Cursor.InactivityMs) * time.Millisecond
	p.ZoomSmoothing = c.Zoom.Smoothing
	p.ZoomFallback = tracking.Point{X: 50, Y: 50}
	return p, nil
}

// DisplayFor returns the display a canvas of the given size is shown on.
func (c *Config) DisplayFor(canvasWidth, canvasHeight float64) viewport.Display {
	d := viewport.IdentityDisplay(canvasWidth, canvasHeight)
	if c.Display.Width > 0 && c.Display.Height > 0 {
		d.Width, d.Height = c.Display.Width, c.Display.Height
	}
	if c.Display.DPR > 0 {
		d.DPR = c.Display.DPR
	}
	return d
}
