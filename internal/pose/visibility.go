package pose

import (
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// DefaultInactivity is how long the cursor may rest before it is hidden.
const DefaultInactivity = 3000 * time.Millisecond

// Visibility is the auto-hide state of the cursor.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// visibilityTracker hides the cursor after a period without movement. Any
// change of position shows it again and restarts the timer.
type visibilityTracker struct {
	state      Visibility
	lastPos    tracking.Point
	lastMoveAt time.Time
	seen       bool
}

func (v *visibilityTracker) reset() {
	*v = visibilityTracker{}
}

func (v *visibilityTracker) update(pos tracking.Point, now time.Time, autoHide bool, inactivity time.Duration) Visibility {
	if !v.seen || pos != v.lastPos {
		v.seen = true
		v.lastPos = pos
		v.lastMoveAt = now
		v.state = Visible
		return v.state
	}
	if !autoHide {
		v.state = Visible
		return v.state
	}
	if inactivity <= 0 {
		inactivity = DefaultInactivity
	}
	if now.Sub(v.lastMoveAt) >= inactivity {
		v.state = Hidden
	}
	return v.state
}
