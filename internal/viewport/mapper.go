// Package viewport maps recording-space cursor positions onto the display,
// including letterboxing, zoom and device pixel ratio.
package viewport

import (
	"golang.org/x/image/math/f64"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// Display describes where the recording is shown.
type Display struct {
	// CanvasWidth and CanvasHeight are the recording size in pixels.
	CanvasWidth, CanvasHeight float64
	// Width and Height are the display surface size in CSS pixels.
	Width, Height float64
	// DPR is the device pixel ratio of the display surface.
	DPR float64
}

// IdentityDisplay shows a w×h recording 1:1 at DPR 1.
func IdentityDisplay(w, h float64) Display {
	return Display{CanvasWidth: w, CanvasHeight: h, Width: w, Height: h, DPR: 1}
}

func (d Display) dpr() float64 {
	if d.DPR <= 0 {
		return 1
	}
	return d.DPR
}

// Fit returns the uniform scale and letterbox offsets (CSS pixels) that fit
// the canvas inside the display.
func (d Display) Fit() (scale, offX, offY float64) {
	if d.CanvasWidth <= 0 || d.CanvasHeight <= 0 || d.Width <= 0 || d.Height <= 0 {
		return 1, 0, 0
	}
	scale = min(d.Width/d.CanvasWidth, d.Height/d.CanvasHeight)
	offX = (d.Width - d.CanvasWidth*scale) / 2
	offY = (d.Height - d.CanvasHeight*scale) / 2
	return scale, offX, offY
}

// ZoomState is the zoom applied to the display at one instant.
type ZoomState struct {
	Scale float64
	// Origin is the zoom focus in percent of the display (0..100).
	Origin tracking.Point
}

// NoZoom is the unmagnified state.
var NoZoom = ZoomState{Scale: 1, Origin: tracking.Point{X: 50, Y: 50}}

func (z ZoomState) scale() float64 {
	if z.Scale <= 0 {
		return 1
	}
	return z.Scale
}

// displayTransform maps canvas pixels to zoomed CSS pixels.
func displayTransform(d Display, z ZoomState) f64.Aff3 {
	s, offX, offY := d.Fit()
	zs := z.scale()
	ox := z.Origin.X / 100 * d.Width
	oy := z.Origin.Y / 100 * d.Height
	return f64.Aff3{
		s * zs, 0, offX*zs + ox*(1-zs),
		0, s * zs, offY*zs + oy*(1-zs),
	}
}

// deviceTransform maps canvas pixels to device pixels.
func deviceTransform(d Display, z ZoomState) f64.Aff3 {
	m := displayTransform(d, z)
	r := d.dpr()
	for i := range m {
		m[i] *= r
	}
	return m
}

func apply(m f64.Aff3, p tracking.Point) tracking.Point {
	return tracking.Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// invert returns the inverse of m. A singular matrix yields the identity.
func invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return f64.Aff3{1, 0, 0, 0, 1, 0}
	}
	inv := 1 / det
	a := m[4] * inv
	b := -m[1] * inv
	d := -m[3] * inv
	e := m[0] * inv
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}
}

// CanvasToDisplay maps a recording position to CSS pixels on the display.
func CanvasToDisplay(p tracking.Point, d Display, z ZoomState) tracking.Point {
	return apply(displayTransform(d, z), p)
}

// DisplayToCanvas is the inverse of CanvasToDisplay.
func DisplayToCanvas(p tracking.Point, d Display, z ZoomState) tracking.Point {
	return apply(invert(displayTransform(d, z)), p)
}

// CanvasToDevice maps a recording position to device pixels.
func CanvasToDevice(p tracking.Point, d Display, z ZoomState) tracking.Point {
	return apply(deviceTransform(d, z), p)
}

// DeviceToCanvas is the inverse of CanvasToDevice.
func DeviceToCanvas(p tracking.Point, d Display, z ZoomState) tracking.Point {
	return apply(invert(deviceTransform(d, z)), p)
}

// RecordingToDisplayScale is the factor from recording pixels to CSS pixels,
// ignoring zoom. The large-jump threshold is measured in these units.
func RecordingToDisplayScale(d Display) float64 {
	s, _, _ := d.Fit()
	return s
}

// DeviceScale is the factor from recording pixels to device pixels under z.
func DeviceScale(d Display, z ZoomState) float64 {
	s, _, _ := d.Fit()
	return s * z.scale() * d.dpr()
}

// Placement is where and how large to draw the cursor image.
type Placement struct {
	// Device is the logical pointer position in device pixels.
	Device tracking.Point
	// DrawX and DrawY are the top-left corner of the cursor image.
	DrawX, DrawY  float64
	Width, Height float64
	// Hotspot is the pointer tip inside the image, in device pixels.
	Hotspot tracking.Point
	Zoom    float64
}

// Map places a cursor of the given size (CSS pixels) for a canvas position.
// It is a pure function of its inputs.
func Map(canvas tracking.Point, cursor tracking.CursorType, size float64, d Display, z ZoomState) Placement {
	device := CanvasToDevice(canvas, d, z)
	k := z.scale() * d.dpr()
	hs := Hotspot(cursor, size).Scale(k)
	return Placement{
		Device:  device,
		DrawX:   device.X - hs.X,
		DrawY:   device.Y - hs.Y,
		Width:   size * k,
		Height:  size * k,
		Hotspot: hs,
		Zoom:    z.scale(),
	}
}
