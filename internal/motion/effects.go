package motion

import (
	"math"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// EffectConfig holds the motion-effect tuning options.
type EffectConfig struct {
	MinSpeedThreshold     float64
	MaxSpeed              float64
	AccelerationThreshold float64
	// Intensity of the effects, 0..100. Effects are off at 8 and below.
	Intensity             float64
	TrailSteps            int
	TrailOpacityBase      float64
	TrailOffsetMultiplier float64
	BlurBase              float64
	// MovementAngle is the maximum tilt in degrees.
	MovementAngle float64
	SkewFactor    float64
	StretchFactor float64
	// Hysteresis keeps effects on this long after speed drops below the
	// threshold.
	Hysteresis time.Duration
}

// DefaultEffectConfig returns the tuned defaults.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		MinSpeedThreshold:     1.5,
		MaxSpeed:              150,
		AccelerationThreshold: 15,
		Intensity:             60,
		TrailSteps:            5,
		TrailOpacityBase:      0.35,
		TrailOffsetMultiplier: 0.6,
		BlurBase:              0.05,
		MovementAngle:         12,
		SkewFactor:            0.12,
		StretchFactor:         0.25,
		Hysteresis:            300 * time.Millisecond,
	}
}

// minEffectIntensity is the intensity at or below which no effect is drawn.
const minEffectIntensity = 8

// TrailGhost is one faded copy of the cursor drawn behind it.
type TrailGhost struct {
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	Opacity float64 `json:"opacity"`
}

// MotionEffect is the effect parameter set for one frame.
type MotionEffect struct {
	SpeedFactor        float64
	AccelerationFactor float64
	AccelerationBoost  float64
	Deform             float64
	BlurPx             float64
	// Rotation in degrees.
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Active   bool
	Trail    []TrailGhost
}

// neutralEffect leaves the cursor untouched.
var neutralEffect = MotionEffect{ScaleX: 1, ScaleY: 1}

// SpeedFactor maps a speed onto [0,1] with an ease-out so slow motion
// already gets a visible response.
func SpeedFactor(speed float64, cfg EffectConfig) float64 {
	span := cfg.MaxSpeed - cfg.MinSpeedThreshold
	if span <= 0 {
		return 0
	}
	return easeOutCubic((speed - cfg.MinSpeedThreshold) / span)
}

// AccelerationFactor maps an acceleration onto [0,1].
func AccelerationFactor(accel float64, cfg EffectConfig) float64 {
	if cfg.AccelerationThreshold <= 0 {
		return 0
	}
	return easeOutCubic(accel / cfg.AccelerationThreshold)
}

// EffectCalculator turns kinematics into effect parameters. It remembers when
// an effect was last active to apply the hysteresis.
type EffectCalculator struct {
	cfg          EffectConfig
	lastActiveAt time.Time
}

func NewEffectCalculator(cfg EffectConfig) *EffectCalculator {
	return &EffectCalculator{cfg: cfg}
}

// SetConfig replaces the tuning options.
func (c *EffectCalculator) SetConfig(cfg EffectConfig) { c.cfg = cfg }

// Reset forgets the hysteresis state.
func (c *EffectCalculator) Reset() { c.lastActiveAt = time.Time{} }

// Compute derives the effect for k at time now.
func (c *EffectCalculator) Compute(k Kinematics, now time.Time) MotionEffect {
	cfg := c.cfg
	fast := k.Speed > cfg.MinSpeedThreshold
	recent := !c.lastActiveAt.IsZero() && now.Sub(c.lastActiveAt) < cfg.Hysteresis
	if !(fast || recent) || cfg.Intensity <= minEffectIntensity {
		return neutralEffect
	}
	if fast {
		c.lastActiveAt = now
	}

	intensity := clamp(cfg.Intensity, 0, 100)
	easedIntensity := easeOutCubic(intensity / 100)
	speedFactor := SpeedFactor(k.Speed, cfg)
	accelFactor := AccelerationFactor(k.Acceleration, cfg)

	var boost float64
	if k.Acceleration > cfg.AccelerationThreshold {
		boost = math.Min(k.Acceleration/cfg.AccelerationThreshold, 1) * 2.5 * easedIntensity
	}

	deform := speedFactor * (intensity / 100) * 0.9
	e := MotionEffect{
		SpeedFactor:        speedFactor,
		AccelerationFactor: accelFactor,
		AccelerationBoost:  boost,
		Deform:             deform,
		BlurPx:             speedFactor*intensity*cfg.BlurBase + boost,
		Rotation:           cfg.MovementAngle * speedFactor * k.Direction.X,
		ScaleX:             1 + deform*cfg.StretchFactor,
		ScaleY:             1 - deform*cfg.SkewFactor,
		Active:             true,
	}
	e.Trail = trail(k, speedFactor, cfg)
	return e
}

// trail places the ghosts behind the cursor along its direction of travel.
func trail(k Kinematics, speedFactor float64, cfg EffectConfig) []TrailGhost {
	if cfg.TrailSteps <= 0 || speedFactor <= 0 || k.Direction == (tracking.Point{}) {
		return nil
	}
	ghosts := make([]TrailGhost, cfg.TrailSteps)
	steps := float64(cfg.TrailSteps)
	for i := range ghosts {
		f := float64(i+1) / steps
		back := k.Direction.Scale(-k.Speed * cfg.TrailOffsetMultiplier * f)
		ghosts[i] = TrailGhost{
			DX:      back.X,
			DY:      back.Y,
			Opacity: cfg.TrailOpacityBase * speedFactor * (1 - float64(i+1)/(steps+1)),
		}
	}
	return ghosts
}
