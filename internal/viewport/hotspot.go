package viewport

import (
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// hotspotReference is the cursor size, in pixels, the offsets below are
// measured at.
const hotspotReference = 20.0

type hotspotGeometry struct {
	// offset of the pointer tip inside a hotspotReference-sized image.
	offset tracking.Point
	// correction trims the offset for artwork with padding around the tip.
	correction float64
}

var hotspots = [tracking.CursorTypeCount]hotspotGeometry{
	tracking.CursorDefault:  {offset: tracking.Point{X: 1, Y: 1}, correction: 1},
	tracking.CursorPointer:  {offset: tracking.Point{X: 6, Y: 1}, correction: 0.9},
	tracking.CursorGrabbing: {offset: tracking.Point{X: 10, Y: 10}, correction: 0.85},
	tracking.CursorText:     {offset: tracking.Point{X: 10, Y: 10}, correction: 0.95},
	tracking.CursorGrab:     {offset: tracking.Point{X: 10, Y: 10}, correction: 0.85},
	tracking.CursorResize:   {offset: tracking.Point{X: 10, Y: 10}, correction: 1},
}

func hotspotFor(c tracking.CursorType) hotspotGeometry {
	if !c.Valid() {
		logging.Logger().Warn("unknown cursor type, using default hotspot",
			"cursor", c.String(), "err", tracking.ErrUnknownCursorType)
		return hotspots[tracking.CursorDefault]
	}
	return hotspots[c]
}

// Hotspot returns the pointer tip inside a cursor image of the given size,
// in the same units as size.
func Hotspot(c tracking.CursorType, size float64) tracking.Point {
	h := hotspotFor(c)
	return h.offset.Scale(size / hotspotReference * h.correction)
}
