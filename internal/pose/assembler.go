// Package pose turns a recorded cursor trajectory into a render pose for
// every displayed frame.
package pose

import (
	"errors"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/motion"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/viewport"
)

// ErrClockRegression is logged when the playback time moves backwards
// without an explicit Reset. The assembler resets itself and continues.
var ErrClockRegression = errors.New("playback clock regression")

// DefaultCursorSize is the cursor size in CSS pixels.
const DefaultCursorSize = 32.0

// RenderPose is everything the canvas needs to draw the cursor for one
// frame. Positions and sizes are in device pixels.
type RenderPose struct {
	// Time is the playback time in sample-clock milliseconds.
	Time    float64             `json:"t"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
	DrawX   float64             `json:"drawX"`
	DrawY   float64             `json:"drawY"`
	Width   float64             `json:"width"`
	Height  float64             `json:"height"`
	Hotspot tracking.Point      `json:"hotspot"`
	Cursor  tracking.CursorType `json:"cursorType"`
	// Rotation in degrees.
	Rotation float64 `json:"rotation"`
	// ScaleX and ScaleY combine the motion warp with the click pulse.
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	ClickScale float64 `json:"clickScale"`
	BlurPx     float64 `json:"blurPx"`
	// Trail offsets are relative to (X, Y) in device pixels.
	Trail   []motion.TrailGhost `json:"trail,omitempty"`
	Visible bool                `json:"visible"`
}

// Config tunes a pose assembler.
type Config struct {
	Stabilizer motion.StabilizerConfig
	Effects    motion.EffectConfig
	Transition motion.TransitionType
	// LargeDistanceThreshold is in CSS pixels.
	LargeDistanceThreshold float64
	CursorSize             float64
	AutoHide               bool
	Inactivity             time.Duration
	ZoomSmoothing          float64
	// ZoomFallback is the zoom origin, in percent, used before any zoom
	// range has been active.
	ZoomFallback tracking.Point
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Stabilizer:             motion.DefaultStabilizerConfig(),
		Effects:                motion.DefaultEffectConfig(),
		Transition:             motion.TransitionEase,
		LargeDistanceThreshold: motion.DefaultLargeDistanceThreshold,
		CursorSize:             DefaultCursorSize,
		AutoHide:               true,
		Inactivity:             DefaultInactivity,
		ZoomSmoothing:          viewport.DefaultZoomSmoothing,
		ZoomFallback:           tracking.Point{X: 50, Y: 50},
	}
}

// Assembler produces one RenderPose per frame. It owns all per-session
// state, so every playback view needs its own Assembler. It is not safe for
// concurrent use.
type Assembler struct {
	store *tracking.SampleStore
	cfg   Config
	clock motion.Clock

	stab       *motion.StabilizationState
	effects    *motion.EffectCalculator
	pulse      motion.ClickPulse
	zoom       *viewport.ZoomTracker
	visibility visibilityTracker

	started  bool
	lastTime float64
	// eventIdx is the number of samples already fed to the click pulse.
	eventIdx int
}

// NewAssembler returns an assembler over store. A nil clock uses the wall
// clock.
func NewAssembler(store *tracking.SampleStore, cfg Config, clock motion.Clock) *Assembler {
	if clock == nil {
		clock = motion.SystemClock{}
	}
	return &Assembler{
		store:   store,
		cfg:     cfg,
		clock:   clock,
		stab:    motion.NewStabilizationState(),
		effects: motion.NewEffectCalculator(cfg.Effects),
		zoom:    viewport.NewZoomTracker(cfg.ZoomSmoothing, cfg.ZoomFallback),
	}
}

// Config returns the active configuration.
func (a *Assembler) Config() Config { return a.cfg }

// SetConfig swaps the configuration. Motion history is kept.
func (a *Assembler) SetConfig(cfg Config) {
	a.cfg = cfg
	a.effects.SetConfig(cfg.Effects)
	a.zoom.Smoothing = cfg.ZoomSmoothing
	if a.zoom.Smoothing <= 0 || a.zoom.Smoothing > 1 {
		a.zoom.Smoothing = viewport.DefaultZoomSmoothing
	}
}

// Reset drops all motion history. Call it on seek, scrub or loop.
func (a *Assembler) Reset() {
	a.stab.Reset()
	a.effects.Reset()
	a.pulse.Reset()
	a.zoom.Reset()
	a.visibility.reset()
	a.started = false
	a.lastTime = 0
	a.eventIdx = 0
}

// Frame computes the pose at playback time t (sample-clock milliseconds).
// An empty store yields ErrEmptySampleStore and no pose.
func (a *Assembler) Frame(t float64, display viewport.Display, zooms []viewport.ZoomRange) (RenderPose, error) {
	samples := a.store.Samples()
	if len(samples) == 0 {
		return RenderPose{}, tracking.ErrEmptySampleStore
	}
	log := logging.Logger()

	if a.started && t < a.lastTime {
		log.Warn("resetting cursor motion", "err", ErrClockRegression, "from", a.lastTime, "to", t)
		a.Reset()
	}

	b, err := motion.Locate(samples, t)
	if err != nil {
		return RenderPose{}, err
	}
	raw, cursor := a.rawPosition(samples, b, display)
	clickScale := a.updatePulse(samples, t)

	now := a.clock.Now()
	k := a.stab.Stabilize(raw, now, a.cfg.Stabilizer)
	effect := a.effects.Compute(k, now)
	zoom := a.zoom.Update(t, zooms)

	size := a.cfg.CursorSize
	if size <= 0 {
		size = DefaultCursorSize
	}
	place := viewport.Map(k.Position, cursor, size, display, zoom)
	vis := a.visibility.update(raw, now, a.cfg.AutoHide, a.cfg.Inactivity)

	a.started = true
	a.lastTime = t

	log.Debug("frame", "t", t, "low", b.Low, "high", b.High, "progress", b.Progress, "speed", k.Speed, "visibility", vis.String())

	return RenderPose{
		Time:       t,
		X:          place.Device.X,
		Y:          place.Device.Y,
		DrawX:      place.DrawX,
		DrawY:      place.DrawY,
		Width:      place.Width,
		Height:     place.Height,
		Hotspot:    place.Hotspot,
		Cursor:     cursor,
		Rotation:   effect.Rotation,
		ScaleX:     effect.ScaleX * clickScale,
		ScaleY:     effect.ScaleY * clickScale,
		ClickScale: clickScale,
		BlurPx:     effect.BlurPx,
		Trail:      deviceTrail(effect.Trail, viewport.DeviceScale(display, zoom)),
		Visible:    vis == Visible,
	}, nil
}

// rawPosition interpolates the canvas position and picks the cursor shape
// in effect at the bracket.
func (a *Assembler) rawPosition(samples []tracking.MouseSample, b motion.Bracket, display viewport.Display) (tracking.Point, tracking.CursorType) {
	if len(samples) == 1 {
		return samples[0].Position(), samples[0].Cursor
	}
	low, high := samples[b.Low], samples[b.High]
	in := motion.Interpolator{
		Threshold:  a.cfg.LargeDistanceThreshold,
		Transition: a.cfg.Transition,
	}
	in.ScaleX = viewport.RecordingToDisplayScale(display)
	in.ScaleY = in.ScaleX
	cursor := low.Cursor
	if b.Progress >= 1 {
		cursor = high.Cursor
	}
	return in.Position(low, high, b.Progress), cursor
}

// updatePulse feeds the click events crossed since the previous frame to the
// pulse. After a reset the pulse is rebuilt from the last button event at or
// before t.
func (a *Assembler) updatePulse(samples []tracking.MouseSample, t float64) float64 {
	upto := a.store.UpperBound(t)
	if !a.started {
		a.derivePulse(samples[:upto])
	} else {
		for _, s := range samples[a.eventIdx:upto] {
			a.applyEvent(s)
		}
	}
	a.eventIdx = upto
	return a.pulse.Scale(t)
}

func (a *Assembler) derivePulse(past []tracking.MouseSample) {
	a.pulse.Reset()
	for i := len(past) - 1; i >= 0; i-- {
		s := past[i]
		if !s.Event.IsClick() {
			continue
		}
		if s.Event == tracking.EventClick && releasedBefore(past[:i], s.Timestamp) {
			continue
		}
		if s.Event == tracking.EventUp {
			a.pulse.Press()
		}
		a.applyEvent(s)
		return
	}
}

func (a *Assembler) applyEvent(s tracking.MouseSample) {
	switch s.Event {
	case tracking.EventDown:
		a.pulse.Press()
	case tracking.EventUp:
		a.pulse.Release(s.Timestamp)
	case tracking.EventClick:
		// A click that trails the release of the same press is already
		// animating.
		if a.pulse.Phase() == motion.PulseReleasing {
			return
		}
		a.pulse.Press()
		a.pulse.Release(s.Timestamp)
	}
}

// releasedBefore reports whether the latest button event in past is a
// release whose ease is still running at time at.
func releasedBefore(past []tracking.MouseSample, at float64) bool {
	for i := len(past) - 1; i >= 0; i-- {
		if past[i].Event.IsClick() {
			return past[i].Event == tracking.EventUp && at-past[i].Timestamp < motion.ReleaseDurationMs
		}
	}
	return false
}

func deviceTrail(trail []motion.TrailGhost, scale float64) []motion.TrailGhost {
	if len(trail) == 0 {
		return nil
	}
	out := make([]motion.TrailGhost, len(trail))
	for i, g := range trail {
		out[i] = motion.TrailGhost{DX: g.DX * scale, DY: g.DY * scale, Opacity: g.Opacity}
	}
	return out
}
