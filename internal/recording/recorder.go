package recording

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/config"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// Recorder captures the screen with ffmpeg and the cursor with the tracking
// hooks, then writes the cursor samples and metadata next to the video.
type Recorder struct {
	config      *config.Config
	isRecording bool
	isDone      bool
	baseName    string
	outputPath  string
	cursorPath  string
	metaPath    string
	cursor      *tracking.Recording
	stopChan    chan struct{}
	doneChan    chan struct{}
	startTime   time.Time
	err         error
	mu          sync.Mutex
}

func NewRecorder(config *config.Config) *Recorder {
	return &Recorder{
		config:   config,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

func (r *Recorder) Start(baseName string) error {
	r.mu.Lock()
	if r.isRecording {
		r.mu.Unlock()
		return fmt.Errorf("recording already in progress")
	}
	r.mu.Unlock()

	outputDir := r.config.Recording.OutputDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	video, cursor, meta := Paths(outputDir, baseName)
	cmd, err := screenCommand(runtime.GOOS, r.config.Recording.TargetFPS, video)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.baseName = baseName
	r.outputPath, r.cursorPath, r.metaPath = video, cursor, meta
	r.isRecording = true
	r.isDone = false
	r.err = nil
	r.cursor = &tracking.Recording{}
	r.startTime = time.Now()
	r.stopChan = make(chan struct{})
	r.doneChan = make(chan struct{})
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	trackingDone := make(chan struct{})
	go func() {
		defer close(trackingDone)
		tracking.StartMouseTracking(ctx, r.cursor, r.startTime, r.config.Recording.TargetFPS)
	}()

	go func() {
		offset, err := r.runCapture(cmd)
		cancel()
		<-trackingDone
		r.finish(offset, err)
	}()

	return nil
}

// runCapture drives ffmpeg until Stop is called. It returns the time between
// the start of cursor tracking and the start of the video.
func (r *Recorder) runCapture(cmd *exec.Cmd) (time.Duration, error) {
	log := logging.Logger()

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	defer stdinPipe.Close()

	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	offset := time.Since(r.startTime)
	log.Info("screen capture started", "output", r.outputPath)

	// Wait for stop signal
	go func() {
		<-r.stopChan
		if _, err := io.WriteString(stdinPipe, "q\n"); err != nil {
			log.Warn("failed to signal ffmpeg", "err", err)
		}
		stdinPipe.Close()
	}()

	// ffmpeg exits with 255 when asked to quit, which is the normal path.
	if err := cmd.Wait(); err != nil {
		log.Info("ffmpeg process finished", "status", err)
	}
	return offset, nil
}

func (r *Recorder) finish(offset time.Duration, captureErr error) {
	defer close(r.doneChan)

	samples := r.cursor.Snapshot()
	err := captureErr
	if err == nil {
		err = r.writeSidecars(samples, offset)
	}

	r.mu.Lock()
	r.isRecording = false
	r.isDone = err == nil
	r.err = err
	r.mu.Unlock()

	if err != nil {
		logging.Logger().Warn("recording failed", "err", err)
		return
	}
	logging.Logger().Info("recording saved", "video", r.outputPath, "samples", len(samples))
}

func (r *Recorder) writeSidecars(samples []tracking.MouseSample, offset time.Duration) error {
	if err := tracking.SaveSamples(r.cursorPath, samples); err != nil {
		return err
	}
	bounds := primaryDisplayBounds()
	meta := &Metadata{
		Name:          r.baseName,
		Video:         filepath.Base(r.outputPath),
		Cursor:        filepath.Base(r.cursorPath),
		StartedAt:     r.startTime,
		CanvasWidth:   bounds.Dx(),
		CanvasHeight:  bounds.Dy(),
		TargetFPS:     r.config.Recording.TargetFPS,
		ClockOffsetMs: float64(offset) / float64(time.Millisecond),
		Samples:       len(samples),
	}
	return WriteMetadata(r.metaPath, meta)
}

// Stop ends the recording and waits until the sidecar files are written.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if !r.isRecording {
		r.mu.Unlock()
		return fmt.Errorf("no recording in progress")
	}
	stop, done := r.stopChan, r.doneChan
	r.mu.Unlock()

	close(stop)
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRecording
}

func (r *Recorder) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isDone
}

func (r *Recorder) GetOutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputPath
}

// GetMetadataPath returns the metadata file of the last recording.
func (r *Recorder) GetMetadataPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metaPath
}

// screenCommand builds the ffmpeg invocation that captures the main screen
// without the cursor.
func screenCommand(osType string, targetFPS int, outputFile string) (*exec.Cmd, error) {
	fps := strconv.Itoa(targetFPS)
	switch osType {
	case "windows":
		return exec.Command("ffmpeg",
			"-f", "gdigrab",
			"-draw_mouse", "0",
			"-framerate", fps,
			"-i", "desktop",
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-y",
			outputFile), nil
	case "darwin":
		index, err := findScreenDeviceIndex()
		if err != nil {
			return nil, fmt.Errorf("unable to capture the main screen: %w", err)
		}
		return exec.Command("ffmpeg",
			"-f", "avfoundation",
			"-capture_cursor", "0",
			"-framerate", fps,
			"-i", index+":none",
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-preset", "ultrafast",
			"-y",
			outputFile), nil
	case "linux":
		display := os.Getenv("DISPLAY")
		if display == "" {
			display = ":0.0"
		}
		return exec.Command("ffmpeg",
			"-f", "x11grab",
			"-draw_mouse", "0",
			"-framerate", fps,
			"-i", display,
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-y",
			outputFile), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", osType)
	}
}

func findScreenDeviceIndex() (string, error) {
	cmd := exec.Command("ffmpeg", "-f", "avfoundation", "-list_devices", "true", "-i", "")

	outputBytes, err := cmd.CombinedOutput()
	if err != nil && len(outputBytes) == 0 {
		return "", fmt.Errorf("failed to run ffmpeg list_devices command: %w", err)
	}
	return parseScreenDeviceIndex(string(outputBytes))
}

// parseScreenDeviceIndex finds "Capture screen 0" in the avfoundation
// device listing.
func parseScreenDeviceIndex(output string) (string, error) {
	inVideoDevices := false
	videoDeviceIndex := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "AVFoundation video devices:") {
			inVideoDevices = true
			continue
		}
		if strings.Contains(line, "AVFoundation audio devices:") {
			break
		}
		if !inVideoDevices {
			continue
		}

		trimmedLine := strings.TrimSpace(line)
		if strings.Contains(trimmedLine, "Capture screen 0") {
			return strconv.Itoa(videoDeviceIndex), nil
		}
		if strings.Contains(trimmedLine, "]") {
			videoDeviceIndex++
		}
	}

	return "", errors.New("could not find 'Capture screen 0' in ffmpeg device list")
}
