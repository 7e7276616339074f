package recording

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kbinani/screenshot"

	"github.com/vedantwpatil/FocusFrame/internal/viewport"
)

// Metadata is stored next to every recording and ties the video to its
// cursor samples.
type Metadata struct {
	Name string `toml:"name"`
	// Video and Cursor are file names relative to the metadata file.
	Video     string    `toml:"video"`
	Cursor    string    `toml:"cursor"`
	StartedAt time.Time `toml:"started_at"`
	// CanvasWidth and CanvasHeight are the captured display size in pixels.
	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`
	TargetFPS    int `toml:"target_fps"`
	// ClockOffsetMs is the sample-clock time at which the video starts.
	ClockOffsetMs float64              `toml:"clock_offset_ms"`
	Samples       int                  `toml:"samples"`
	Zooms         []viewport.ZoomRange `toml:"zoom"`
}

// Paths returns the video, cursor and metadata paths of a recording.
func Paths(dir, baseName string) (video, cursor, meta string) {
	base := filepath.Join(dir, baseName)
	return base + ".mp4", base + ".cursor.json", base + ".meta.toml"
}

// WriteMetadata saves m to path as TOML.
func WriteMetadata(path string, m *Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads the metadata file at path.
func ReadMetadata(path string) (*Metadata, error) {
	m := &Metadata{}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", path, err)
	}
	return m, nil
}

// Resolve returns a path named in the metadata relative to the metadata
// file at metaPath.
func Resolve(metaPath, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(metaPath), name)
}

// primaryDisplayBounds is the capture area of the main screen.
func primaryDisplayBounds() image.Rectangle {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}
	}
	return screenshot.GetDisplayBounds(0)
}
