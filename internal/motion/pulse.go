package motion

// PulsePhase is the state of the click pulse animation.
type PulsePhase uint8

const (
	PulseIdle PulsePhase = iota
	PulsePressed
	PulseReleasing
)

func (p PulsePhase) String() string {
	switch p {
	case PulsePressed:
		return "pressed"
	case PulseReleasing:
		return "releasing"
	default:
		return "idle"
	}
}

const (
	// PressedScale is the cursor scale while a button is held.
	PressedScale = 0.8
	// ReleaseDurationMs is how long the cursor takes to grow back.
	ReleaseDurationMs = 150.0
)

// ClickPulse animates the cursor scale around a click. Times are on the
// sample clock in milliseconds so the animation follows the recording.
type ClickPulse struct {
	phase        PulsePhase
	releaseStart float64
}

func (p *ClickPulse) Phase() PulsePhase { return p.phase }

// Press shrinks the cursor.
func (p *ClickPulse) Press() {
	p.phase = PulsePressed
}

// Release starts growing the cursor back at time at. A release without a
// preceding press is ignored.
func (p *ClickPulse) Release(at float64) {
	if p.phase != PulsePressed {
		return
	}
	p.phase = PulseReleasing
	p.releaseStart = at
}

// Reset returns to idle.
func (p *ClickPulse) Reset() {
	*p = ClickPulse{}
}

// Scale returns the cursor scale at time at and settles the animation once
// the release has finished.
func (p *ClickPulse) Scale(at float64) float64 {
	switch p.phase {
	case PulsePressed:
		return PressedScale
	case PulseReleasing:
		t := (at - p.releaseStart) / ReleaseDurationMs
		if t >= 1 {
			p.phase = PulseIdle
			return 1
		}
		return PressedScale + (1-PressedScale)*easeOutCubic(t)
	default:
		return 1
	}
}
