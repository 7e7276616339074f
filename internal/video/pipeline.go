package video

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/config"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/motion"
	"github.com/vedantwpatil/FocusFrame/internal/pose"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/viewport"
)

// ErrNoFrames is returned for a video without a usable frame rate or length.
var ErrNoFrames = errors.New("video has no frames")

// Job is one pose-track render.
type Job struct {
	Samples *tracking.SampleStore
	Video   Info
	// ClockOffsetMs is added to the video time to reach the sample clock.
	ClockOffsetMs float64
	Zooms         []viewport.ZoomRange
}

// Pipeline renders the cursor pose of every video frame.
type Pipeline struct {
	config   *config.Config
	progress ProgressReporter
}

func NewPipeline(config *config.Config) *Pipeline {
	return &Pipeline{config: config}
}

// SetProgressReporter installs a progress sink. nil disables reporting.
func (p *Pipeline) SetProgressReporter(r ProgressReporter) {
	p.progress = r
}

// Process writes one JSON pose per video frame to w and returns the number
// of frames written. Cancelling ctx stops between frames.
func (p *Pipeline) Process(ctx context.Context, job Job, w io.Writer) (int, error) {
	n, err := p.process(ctx, job, w)
	if err != nil && p.progress != nil {
		p.progress.ReportError(err)
	}
	return n, err
}

func (p *Pipeline) process(ctx context.Context, job Job, w io.Writer) (int, error) {
	frames := job.Video.FrameCount()
	frameMs := job.Video.FrameDurationMs()
	if frames <= 0 || frameMs <= 0 {
		return 0, ErrNoFrames
	}
	if job.Samples.Len() == 0 {
		return 0, tracking.ErrEmptySampleStore
	}

	poseCfg, err := p.config.PoseConfig()
	if err != nil {
		return 0, fmt.Errorf("invalid pose configuration: %w", err)
	}
	display := p.config.DisplayFor(float64(job.Video.Width), float64(job.Video.Height))

	// Poses are computed faster than real time, so motion timing follows a
	// clock stepped once per frame.
	clock := motion.NewManualClock(time.Unix(0, 0))
	assembler := pose.NewAssembler(job.Samples, poseCfg, clock)
	frameDur := time.Duration(frameMs * float64(time.Millisecond))

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	log := logging.Logger()
	log.Info("rendering pose track", "frames", frames, "fps", job.Video.FPS, "offset_ms", job.ClockOffsetMs)

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			bw.Flush()
			return i, err
		}

		t := float64(i)*frameMs + job.ClockOffsetMs
		rp, err := assembler.Frame(t, display, job.Zooms)
		if err != nil {
			bw.Flush()
			return i, fmt.Errorf("frame %d: %w", i, err)
		}
		if err := enc.Encode(rp); err != nil {
			return i, fmt.Errorf("failed to write frame %d: %w", i, err)
		}
		clock.Advance(frameDur)

		if p.progress != nil {
			p.progress.Report(float64(i+1) / float64(frames))
		}
	}

	if err := bw.Flush(); err != nil {
		return frames, fmt.Errorf("failed to flush pose track: %w", err)
	}
	if p.progress != nil {
		p.progress.ReportComplete()
	}
	log.Info("pose track done", "frames", frames)
	return frames, nil
}
