package tracking

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptySampleStore is returned when there is nothing to interpolate.
	// Renderers skip drawing the cursor for that frame.
	ErrEmptySampleStore = errors.New("empty sample store")

	// ErrUnknownCursorType marks a cursor name outside the known set. The
	// cursor falls back to CursorDefault.
	ErrUnknownCursorType = errors.New("unknown cursor type")

	// ErrMalformedSample marks a recorded sample missing x, y or timestamp.
	ErrMalformedSample = errors.New("malformed sample")
)

// SampleError describes a sample that was skipped while decoding.
type SampleError struct {
	Index  int
	Reason string
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d: %s", e.Index, e.Reason)
}

func (e *SampleError) Unwrap() error { return ErrMalformedSample }

// CursorType is the cursor shape active when a sample was captured.
type CursorType uint8

const (
	CursorDefault CursorType = iota
	CursorPointer
	CursorGrabbing
	CursorText
	CursorGrab
	CursorResize

	cursorTypeCount
)

var cursorNames = [cursorTypeCount]string{
	CursorDefault:  "default",
	CursorPointer:  "pointer",
	CursorGrabbing: "grabbing",
	CursorText:     "text",
	CursorGrab:     "grab",
	CursorResize:   "resize",
}

// CursorTypeCount is the number of known cursor types.
const CursorTypeCount = int(cursorTypeCount)

func (c CursorType) String() string {
	if c.Valid() {
		return cursorNames[c]
	}
	return fmt.Sprintf("CursorType(%d)", uint8(c))
}

// Valid reports whether c is one of the known cursor types.
func (c CursorType) Valid() bool { return c < cursorTypeCount }

func (c CursorType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the recorded cursor names. Unknown names decode to
// CursorDefault and report ErrUnknownCursorType.
func (c *CursorType) UnmarshalText(b []byte) error {
	v, err := ParseCursorType(string(b))
	*c = v
	return err
}

// ParseCursorType maps a recorded cursor name to a CursorType. Unknown names
// yield CursorDefault together with ErrUnknownCursorType.
func ParseCursorType(name string) (CursorType, error) {
	if name == "" {
		return CursorDefault, nil
	}
	for i, n := range cursorNames {
		if n == name {
			return CursorType(i), nil
		}
	}
	return CursorDefault, fmt.Errorf("%w: %q", ErrUnknownCursorType, name)
}

// EventType is the pointer event that produced a sample.
type EventType uint8

const (
	EventMove EventType = iota
	EventDown
	EventUp
	EventDrag
	EventWheel
	EventClick
)

var eventNames = [...]string{
	EventMove:  "move",
	EventDown:  "down",
	EventUp:    "up",
	EventDrag:  "drag",
	EventWheel: "wheel",
	EventClick: "click",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("EventType(%d)", uint8(e))
}

// IsClick reports whether the event belongs to a click gesture.
func (e EventType) IsClick() bool {
	return e == EventDown || e == EventUp || e == EventClick
}

// ParseEventType maps a recorded event name. Unknown or empty names are
// treated as moves.
func ParseEventType(name string) EventType {
	for i, n := range eventNames {
		if n == name {
			return EventType(i)
		}
	}
	return EventMove
}

// MouseSample is one recorded pointer observation. Coordinates are pixels in
// recording canvas space, Timestamp is milliseconds since recording start.
type MouseSample struct {
	X          float64
	Y          float64
	Timestamp  float64
	Cursor     CursorType
	Event      EventType
	Button     int
	ClickCount int
}

// Position returns the sample coordinates.
func (s MouseSample) Position() Point {
	return Point{X: s.X, Y: s.Y}
}

// Point is a position or vector in pixels.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Scale scales a Point by a scalar.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Add adds two Points.
func (p1 Point) Add(p2 Point) Point {
	return Point{X: p1.X + p2.X, Y: p1.Y + p2.Y}
}

// Subtract subtracts p2 from p1.
func (p1 Point) Subtract(p2 Point) Point {
	return Point{X: p1.X - p2.X, Y: p1.Y - p2.Y}
}

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p1 and p2.
func (p1 Point) Distance(p2 Point) float64 {
	return p1.Subtract(p2).Length()
}

// Normalize returns the unit vector in the direction of p, or the zero
// vector when p has no length.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Lerp interpolates from p1 towards p2 by t.
func (p1 Point) Lerp(p2 Point, t float64) Point {
	return Point{X: p1.X + (p2.X-p1.X)*t, Y: p1.Y + (p2.Y-p1.Y)*t}
}
