package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
)

// sampleRecord is the persisted form of a MouseSample.
type sampleRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Timestamp  float64 `json:"timestamp"`
	CursorType string  `json:"cursorType"`
	Type       string  `json:"type"`
	Button     *int    `json:"button,omitempty"`
	ClickCount *int    `json:"clickCount,omitempty"`
}

// ParseSamples decodes a JSON array of recorded samples. Elements missing
// x, y or timestamp are skipped and reported in skipped; unknown cursor
// names fall back to the default cursor. Only a document that is not a JSON
// array fails as a whole.
func ParseSamples(data []byte) (samples []MouseSample, skipped []error, err error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, errors.New("invalid sample JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("sample JSON must be an array, got %s", root.Type)
	}

	log := logging.Logger()
	index := 0
	root.ForEach(func(_, value gjson.Result) bool {
		i := index
		index++

		sample, serr := decodeSample(i, value)
		if serr != nil {
			log.Warn("skipping sample", "err", serr)
			skipped = append(skipped, serr)
			return true
		}
		samples = append(samples, sample)
		return true
	})
	return samples, skipped, nil
}

func decodeSample(i int, v gjson.Result) (MouseSample, error) {
	if !v.IsObject() {
		return MouseSample{}, &SampleError{Index: i, Reason: "not an object"}
	}
	for _, field := range []string{"x", "y", "timestamp"} {
		f := v.Get(field)
		if !f.Exists() {
			return MouseSample{}, &SampleError{Index: i, Reason: "missing " + field}
		}
		if f.Type != gjson.Number {
			return MouseSample{}, &SampleError{Index: i, Reason: field + " is not a number"}
		}
	}

	cursor, err := ParseCursorType(v.Get("cursorType").String())
	if err != nil {
		logging.Logger().Warn("cursor type fallback", "index", i, "err", err)
	}

	s := MouseSample{
		X:         v.Get("x").Float(),
		Y:         v.Get("y").Float(),
		Timestamp: v.Get("timestamp").Float(),
		Cursor:    cursor,
		Event:     ParseEventType(v.Get("type").String()),
	}
	if b := v.Get("button"); b.Exists() {
		s.Button = int(b.Int())
	}
	if c := v.Get("clickCount"); c.Exists() {
		s.ClickCount = int(c.Int())
	}
	return s, nil
}

// LoadSamples reads a recorded sample file and returns its samples as a store.
func LoadSamples(path string) (*SampleStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	samples, skipped, err := ParseSamples(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse samples %s: %w", path, err)
	}
	if len(skipped) > 0 {
		logging.Logger().Warn("skipped malformed samples", "path", path, "count", len(skipped))
	}
	return NewSampleStore(samples), nil
}

// MarshalSamples encodes samples in the recording JSON format.
func MarshalSamples(samples []MouseSample) ([]byte, error) {
	records := make([]sampleRecord, len(samples))
	for i, s := range samples {
		r := sampleRecord{
			X:          s.X,
			Y:          s.Y,
			Timestamp:  s.Timestamp,
			CursorType: s.Cursor.String(),
			Type:       s.Event.String(),
		}
		if s.Event != EventMove {
			button, clicks := s.Button, s.ClickCount
			r.Button = &button
			r.ClickCount = &clicks
		}
		records[i] = r
	}
	return json.MarshalIndent(records, "", "  ")
}

// SaveSamples writes samples to path in the recording JSON format.
func SaveSamples(path string, samples []MouseSample) error {
	data, err := MarshalSamples(samples)
	if err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}
