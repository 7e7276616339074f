package tracking

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseCursorType(t *testing.T) {
	tests := []struct {
		name    string
		want    CursorType
		wantErr bool
	}{
		{"default", CursorDefault, false},
		{"pointer", CursorPointer, false},
		{"grabbing", CursorGrabbing, false},
		{"text", CursorText, false},
		{"grab", CursorGrab, false},
		{"resize", CursorResize, false},
		{"", CursorDefault, false},
		{"crosshair", CursorDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseCursorType(tt.name)
		if got != tt.want {
			t.Errorf("ParseCursorType(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if tt.wantErr != errors.Is(err, ErrUnknownCursorType) {
			t.Errorf("ParseCursorType(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestCursorTypeString(t *testing.T) {
	if got := CursorResize.String(); got != "resize" {
		t.Errorf("String() = %q", got)
	}
	if CursorType(42).Valid() {
		t.Error("CursorType(42) should not be valid")
	}
}

func TestEventTypeIsClick(t *testing.T) {
	for e, want := range map[EventType]bool{
		EventMove: false, EventDown: true, EventUp: true,
		EventDrag: false, EventWheel: false, EventClick: true,
	} {
		if got := e.IsClick(); got != want {
			t.Errorf("%v.IsClick() = %v, want %v", e, got, want)
		}
	}
	if ParseEventType("bogus") != EventMove {
		t.Error("unknown event names should parse as moves")
	}
}

func TestNewSampleStoreSortsStable(t *testing.T) {
	in := []MouseSample{
		{X: 3, Timestamp: 20},
		{X: 1, Timestamp: 10, Event: EventMove},
		{X: 2, Timestamp: 10, Event: EventDown},
	}
	s := NewSampleStore(in)
	want := []float64{1, 2, 3}
	for i, x := range want {
		if s.At(i).X != x {
			t.Errorf("At(%d).X = %v, want %v", i, s.At(i).X, x)
		}
	}
	in[0].X = 99
	if s.At(2).X != 3 {
		t.Error("store must not alias the input slice")
	}
	first, last, ok := s.Span()
	if !ok || first != 10 || last != 20 {
		t.Errorf("Span() = %v, %v, %v", first, last, ok)
	}
	if got := s.UpperBound(10); got != 2 {
		t.Errorf("UpperBound(10) = %d, want 2", got)
	}
}

func TestEmptyStore(t *testing.T) {
	var s *SampleStore
	if s.Len() != 0 {
		t.Error("nil store should be empty")
	}
	if _, _, ok := NewSampleStore(nil).Span(); ok {
		t.Error("Span() of empty store should not be ok")
	}
}

func TestParseSamplesSkipsMalformed(t *testing.T) {
	data := []byte(`[
		{"x": 1, "y": 2, "timestamp": 0, "cursorType": "pointer", "type": "move"},
		{"y": 2, "timestamp": 5},
		{"x": 1, "y": "two", "timestamp": 6},
		42,
		{"x": 3, "y": 4, "timestamp": 10, "cursorType": "hand", "type": "down", "button": 0, "clickCount": 1}
	]`)
	samples, skipped, err := ParseSamples(data)
	if err != nil {
		t.Fatalf("ParseSamples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if len(skipped) != 3 {
		t.Fatalf("got %d skipped, want 3", len(skipped))
	}
	for _, e := range skipped {
		if !errors.Is(e, ErrMalformedSample) {
			t.Errorf("skipped error %v should wrap ErrMalformedSample", e)
		}
	}
	var se *SampleError
	if !errors.As(skipped[0], &se) || se.Index != 1 {
		t.Errorf("first skipped = %v, want index 1", skipped[0])
	}
	if samples[0].Cursor != CursorPointer {
		t.Errorf("samples[0].Cursor = %v", samples[0].Cursor)
	}
	if samples[1].Cursor != CursorDefault || samples[1].Event != EventDown || samples[1].ClickCount != 1 {
		t.Errorf("samples[1] = %+v", samples[1])
	}
}

func TestParseSamplesRejectsNonArray(t *testing.T) {
	if _, _, err := ParseSamples([]byte(`{"x":1}`)); err == nil {
		t.Error("expected error for object document")
	}
	if _, _, err := ParseSamples([]byte(`[{"x":`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.cursor.json")
	in := []MouseSample{
		{X: 10, Y: 20, Timestamp: 0, Cursor: CursorText},
		{X: 15, Y: 25, Timestamp: 16, Event: EventDown, Button: 1, ClickCount: 1},
		{X: 15, Y: 25, Timestamp: 120, Event: EventUp, Button: 1, ClickCount: 1},
	}
	if err := SaveSamples(path, in); err != nil {
		t.Fatalf("SaveSamples: %v", err)
	}
	store, err := LoadSamples(path)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if store.Len() != len(in) {
		t.Fatalf("Len() = %d, want %d", store.Len(), len(in))
	}
	for i := range in {
		if store.At(i) != in[i] {
			t.Errorf("sample %d = %+v, want %+v", i, store.At(i), in[i])
		}
	}
}

func TestRecordingSnapshot(t *testing.T) {
	var r Recording
	r.Append(MouseSample{X: 1})
	snap := r.Snapshot()
	r.Append(MouseSample{X: 2})
	if len(snap) != 1 || r.Len() != 2 {
		t.Errorf("snapshot len %d, recording len %d", len(snap), r.Len())
	}
}

func TestHookedCursorFollowsDrag(t *testing.T) {
	var c hookedCursor
	steps := []struct {
		event EventType
		want  CursorType
	}{
		{EventMove, CursorDefault},
		{EventDown, CursorDefault},
		{EventDrag, CursorGrabbing},
		{EventMove, CursorGrabbing},
		{EventWheel, CursorGrabbing},
		{EventUp, CursorDefault},
		{EventMove, CursorDefault},
	}
	for i, st := range steps {
		c.observe(st.event)
		if got := c.current(); got != st.want {
			t.Errorf("step %d (%v): cursor = %v, want %v", i, st.event, got, st.want)
		}
	}
}

func TestPointOps(t *testing.T) {
	a := Point{X: 3, Y: 4}
	if a.Length() != 5 {
		t.Errorf("Length() = %v", a.Length())
	}
	if got := a.Normalize(); got != (Point{X: 0.6, Y: 0.8}) {
		t.Errorf("Normalize() = %v", got)
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("zero Normalize() = %v", got)
	}
	if got := (Point{}).Lerp(Point{X: 10, Y: -10}, 0.5); got != (Point{X: 5, Y: -5}) {
		t.Errorf("Lerp() = %v", got)
	}
	if got := a.Subtract(Point{X: 1, Y: 1}).Add(Point{X: 1}).Scale(2); got != (Point{X: 6, Y: 6}) {
		t.Errorf("chained ops = %v", got)
	}
}
