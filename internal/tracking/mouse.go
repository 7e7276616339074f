package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
)

// Recording accumulates samples from the capture goroutines.
type Recording struct {
	mu      sync.Mutex
	samples []MouseSample
}

func (r *Recording) Append(s MouseSample) {
	r.mu.Lock()
	r.samples = append(r.samples, s)
	r.mu.Unlock()
}

// Snapshot returns a copy of the samples captured so far.
func (r *Recording) Snapshot() []MouseSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MouseSample, len(r.samples))
	copy(out, r.samples)
	return out
}

func (r *Recording) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// hookEventTypes maps gohook event kinds onto sample events. gohook reports
// a press as MouseHold and a completed click as MouseDown.
var hookEventTypes = map[uint8]EventType{
	hook.MouseHold:  EventDown,
	hook.MouseUp:    EventUp,
	hook.MouseDown:  EventClick,
	hook.MouseDrag:  EventDrag,
	hook.MouseWheel: EventWheel,
}

// hookedCursor remembers the cursor shape implied by the latest hook event
// so polled positions carry the same shape.
type hookedCursor struct {
	v atomic.Uint32
}

func (c *hookedCursor) observe(kind EventType) {
	switch kind {
	case EventDrag:
		c.v.Store(uint32(CursorGrabbing))
	case EventUp, EventClick:
		c.v.Store(uint32(CursorDefault))
	}
}

func (c *hookedCursor) current() CursorType {
	return CursorType(c.v.Load())
}

// StartMouseTracking captures the pointer into rec until ctx is cancelled.
// Positions are polled at targetFPS and button/wheel/drag events come from
// the global hook. Coordinates are converted from screen points to pixels
// using the display scale so they match the recorded video.
func StartMouseTracking(ctx context.Context, rec *Recording, startingTime time.Time, targetFPS int) {
	log := logging.Logger()
	if targetFPS <= 0 {
		targetFPS = 60
	}
	scale := robotgo.ScaleF()
	if scale <= 0 {
		scale = 1
	}
	elapsed := func(now time.Time) float64 {
		return float64(now.Sub(startingTime).Microseconds()) / 1000.0
	}

	var cursor hookedCursor

	// Register mouse location
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(time.Second / time.Duration(targetFPS))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("mouse location tracking stopped")
				return
			case now := <-ticker.C:
				x, y := robotgo.Location()
				rec.Append(MouseSample{
					X:         float64(x) * scale,
					Y:         float64(y) * scale,
					Timestamp: elapsed(now),
					Cursor:    cursor.current(),
					Event:     EventMove,
				})
			}
		}
	}()

	evChan := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()

	log.Info("hook process started, waiting for events")
	for e := range evChan {
		kind, ok := hookEventTypes[e.Kind]
		if !ok {
			continue
		}
		when := e.When
		if when.IsZero() {
			when = time.Now()
		}
		s := MouseSample{
			X:          float64(e.X) * scale,
			Y:          float64(e.Y) * scale,
			Timestamp:  elapsed(when),
			Event:      kind,
			Button:     int(e.Button),
			ClickCount: int(e.Clicks),
		}
		cursor.observe(kind)
		s.Cursor = cursor.current()
		log.Debug("pointer event", "type", kind, "x", s.X, "y", s.Y, "ms", s.Timestamp)
		rec.Append(s)
	}

	wg.Wait()
	log.Info("hook process stopped")
}
