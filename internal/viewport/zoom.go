package viewport

import (
	"math"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

const (
	// DefaultZoomSmoothing is the per-frame lerp factor of the zoom scale.
	DefaultZoomSmoothing = 0.1
	zoomSnapEpsilon      = 1e-3
)

// ZoomRange magnifies the display between Start and End (playback ms).
type ZoomRange struct {
	Start    float64        `json:"start" toml:"start"`
	End      float64        `json:"end" toml:"end"`
	Scale    float64        `json:"scale" toml:"scale"`
	Position tracking.Point `json:"position" toml:"position"`
}

// Contains reports whether t falls inside the range.
func (r ZoomRange) Contains(t float64) bool {
	return t >= r.Start && t <= r.End
}

// ActiveZoom returns the first range containing t.
func ActiveZoom(ranges []ZoomRange, t float64) (ZoomRange, bool) {
	for _, r := range ranges {
		if r.Contains(t) {
			return r, true
		}
	}
	return ZoomRange{}, false
}

// ZoomTracker eases the zoom scale between ranges so range boundaries do not
// snap. Outside every range it zooms back out about the last used origin.
type ZoomTracker struct {
	Smoothing float64

	scale        float64
	lastPosition tracking.Point
	fallback     tracking.Point
}

// NewZoomTracker returns a tracker at scale 1. fallback is the origin used
// before any range has been seen.
func NewZoomTracker(smoothing float64, fallback tracking.Point) *ZoomTracker {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultZoomSmoothing
	}
	return &ZoomTracker{Smoothing: smoothing, scale: 1, lastPosition: fallback, fallback: fallback}
}

// Reset returns to scale 1 and forgets the last origin.
func (z *ZoomTracker) Reset() {
	z.scale = 1
	z.lastPosition = z.fallback
}

// Update advances one frame at playback time t.
func (z *ZoomTracker) Update(t float64, ranges []ZoomRange) ZoomState {
	target := 1.0
	origin := z.lastPosition
	if r, ok := ActiveZoom(ranges, t); ok {
		target = max(r.Scale, 1)
		origin = r.Position
		z.lastPosition = r.Position
	}
	z.scale += (target - z.scale) * z.Smoothing
	if math.Abs(target-z.scale) < zoomSnapEpsilon {
		z.scale = target
	}
	logging.Logger().Debug("zoom", "t", t, "scale", z.scale, "target", target)
	return ZoomState{Scale: z.scale, Origin: origin}
}
