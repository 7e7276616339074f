package video

import (
	"fmt"
	"os"

	vidio "github.com/AlexEidt/Vidio"
)

// Info describes a recorded video.
type Info struct {
	Path   string
	Width  int
	Height int
	FPS    float64
	Frames int
	// Duration in seconds.
	Duration float64
}

// FrameCount returns the number of frames, derived from the duration when
// the container does not report it.
func (i Info) FrameCount() int {
	if i.Frames > 0 {
		return i.Frames
	}
	if i.FPS <= 0 || i.Duration <= 0 {
		return 0
	}
	return int(i.Duration * i.FPS)
}

// FrameDurationMs is the time between two frames in milliseconds.
func (i Info) FrameDurationMs() float64 {
	if i.FPS <= 0 {
		return 0
	}
	return 1000 / i.FPS
}

// Probe reads the stream metadata of the video at path.
func Probe(path string) (Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Info{}, fmt.Errorf("input file does not exist: %s", path)
	}

	v, err := vidio.NewVideo(path)
	if err != nil {
		return Info{}, fmt.Errorf("unable to open video %s: %w", path, err)
	}
	defer v.Close()

	return Info{
		Path:     path,
		Width:    v.Width(),
		Height:   v.Height(),
		FPS:      v.FPS(),
		Frames:   v.Frames(),
		Duration: v.Duration(),
	}, nil
}
