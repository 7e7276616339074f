package motion

import "github.com/vedantwpatil/FocusFrame/internal/tracking"

// DefaultLargeDistanceThreshold is the jump length, in CSS pixels, above
// which the eased transition replaces linear interpolation.
const DefaultLargeDistanceThreshold = 80.0

// Interpolator resolves the raw cursor position between two samples.
type Interpolator struct {
	// Threshold is the large-distance threshold in CSS pixels.
	Threshold float64
	// Transition selects the curve family for large jumps.
	Transition TransitionType
	// ScaleX and ScaleY convert recording pixels to CSS pixels so the
	// threshold is applied in display space. Zero means 1.
	ScaleX, ScaleY float64
}

// NewInterpolator returns an interpolator with the default threshold and an
// identity recording-to-display scale.
func NewInterpolator(transition TransitionType) Interpolator {
	return Interpolator{Threshold: DefaultLargeDistanceThreshold, Transition: transition, ScaleX: 1, ScaleY: 1}
}

// DisplayDistance is the distance between a and b in CSS pixels.
func (in Interpolator) DisplayDistance(a, b tracking.Point) float64 {
	sx, sy := in.ScaleX, in.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	d := b.Subtract(a)
	return tracking.Point{X: d.X * sx, Y: d.Y * sy}.Length()
}

// EasedProgress returns the progress actually applied between low and high
// and whether the large-distance transition was used.
func (in Interpolator) EasedProgress(low, high tracking.MouseSample, progress float64) (float64, bool) {
	progress = clamp01(progress)
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = DefaultLargeDistanceThreshold
	}
	dist := in.DisplayDistance(low.Position(), high.Position())
	if dist <= threshold {
		return progress, false
	}
	click := low.Event.IsClick() || high.Event.IsClick()
	profile := SelectProfile(in.Transition, dist/threshold, click)
	return profile.Ease(progress), true
}

// Position interpolates between low and high at progress in [0,1]. The
// result is in recording canvas space and equals low at 0 and high at 1.
func (in Interpolator) Position(low, high tracking.MouseSample, progress float64) tracking.Point {
	t, _ := in.EasedProgress(low, high, progress)
	switch {
	case t <= 0:
		return low.Position()
	case t >= 1:
		return high.Position()
	}
	return low.Position().Lerp(high.Position(), t)
}
