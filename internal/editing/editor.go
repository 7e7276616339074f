package editing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/config"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/motion"
	"github.com/vedantwpatil/FocusFrame/internal/pose"
	"github.com/vedantwpatil/FocusFrame/internal/recording"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/video"
)

// Editor turns a finished recording into cursor poses.
type Editor struct {
	pipeline *video.Pipeline
	config   *config.Config
	probe    func(path string) (video.Info, error)
}

func NewEditor(config *config.Config) *Editor {
	return &Editor{
		pipeline: video.NewPipeline(config),
		config:   config,
		probe:    video.Probe,
	}
}

// SetProgressReporter forwards pipeline progress to r.
func (e *Editor) SetProgressReporter(r video.ProgressReporter) {
	e.pipeline.SetProgressReporter(r)
}

// PoseTrackPath is where BuildPoseTrack writes by default.
func PoseTrackPath(metaPath string) string {
	return strings.TrimSuffix(metaPath, ".meta.toml") + ".poses.jsonl"
}

func (e *Editor) load(metaPath string) (*recording.Metadata, *tracking.SampleStore, error) {
	meta, err := recording.ReadMetadata(metaPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := tracking.LoadSamples(recording.Resolve(metaPath, meta.Cursor))
	if err != nil {
		return nil, nil, err
	}
	return meta, store, nil
}

// BuildPoseTrack renders one pose per frame of the recorded video into
// outputPath as JSON lines and returns the number of frames.
func (e *Editor) BuildPoseTrack(ctx context.Context, metaPath, outputPath string) (int, error) {
	meta, store, err := e.load(metaPath)
	if err != nil {
		return 0, err
	}

	info, err := e.probe(recording.Resolve(metaPath, meta.Video))
	if err != nil {
		return 0, fmt.Errorf("failed to probe video: %w", err)
	}
	if info.Width == 0 || info.Height == 0 {
		info.Width, info.Height = meta.CanvasWidth, meta.CanvasHeight
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create pose track: %w", err)
	}
	defer out.Close()

	job := video.Job{
		Samples:       store,
		Video:         info,
		ClockOffsetMs: meta.ClockOffsetMs,
		Zooms:         meta.Zooms,
	}
	n, err := e.pipeline.Process(ctx, job, out)
	if err != nil {
		return n, fmt.Errorf("failed to process video: %w", err)
	}
	return n, nil
}

// Preview replays a recording in real time and prints a summary of every
// pose to w, looping until ctx is done. Configurations received on updates
// apply from the next frame.
func (e *Editor) Preview(ctx context.Context, metaPath string, w io.Writer, updates <-chan *config.Config) error {
	meta, store, err := e.load(metaPath)
	if err != nil {
		return err
	}
	first, last, ok := store.Span()
	if !ok {
		return tracking.ErrEmptySampleStore
	}

	cfg := e.config
	poseCfg, err := cfg.PoseConfig()
	if err != nil {
		return err
	}
	canvasW, canvasH := float64(meta.CanvasWidth), float64(meta.CanvasHeight)
	display := cfg.DisplayFor(canvasW, canvasH)
	assembler := pose.NewAssembler(store, poseCfg, motion.SystemClock{})

	fps := cfg.Recording.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log := logging.Logger()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case c := <-updates:
			pc, err := c.PoseConfig()
			if err != nil {
				log.Warn("ignoring configuration", "err", err)
				continue
			}
			assembler.SetConfig(pc)
			display = c.DisplayFor(canvasW, canvasH)

		case now := <-ticker.C:
			t := first + float64(now.Sub(start))/float64(time.Millisecond)
			if t > last {
				start = now
				t = first
				assembler.Reset()
			}
			p, err := assembler.Frame(t, display, meta.Zooms)
			if err != nil {
				return err
			}
			state := "visible"
			if !p.Visible {
				state = "hidden"
			}
			fmt.Fprintf(w, "t=%8.1f x=%7.1f y=%7.1f rot=%5.1f blur=%4.1f scale=%.2fx%.2f %-8s %s\n",
				p.Time, p.X, p.Y, p.Rotation, p.BlurPx, p.ScaleX, p.ScaleY, p.Cursor, state)
		}
	}
}
