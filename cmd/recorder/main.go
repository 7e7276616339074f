package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/vedantwpatil/FocusFrame/internal/config"
	"github.com/vedantwpatil/FocusFrame/internal/editing"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/recording"
	"github.com/vedantwpatil/FocusFrame/internal/video"
)

type Application struct {
	configPath string
	config     *config.Config
	input      *bufio.Reader
	ctx        context.Context
	cancel     context.CancelFunc

	// mu guards the fields shared with the signal handler.
	mu       sync.Mutex
	recorder *recording.Recorder
	// previewCancel stops a running live preview.
	previewCancel context.CancelFunc
}

func NewApplication(configPath string, cfg *config.Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		configPath: configPath,
		config:     cfg,
		input:      bufio.NewReader(os.Stdin),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (app *Application) currentRecorder() *recording.Recorder {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.recorder
}

func (app *Application) setPreviewCancel(cancel context.CancelFunc) {
	app.mu.Lock()
	app.setPreviewCancel(cancel)
	app.mu.Unlock()
}

func (app *Application) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go app.handleSignals(sigChan)

	for app.ctx.Err() == nil {
		if err := app.showMenu(); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) showMenu() error {
	fmt.Println("\nCommands:")
	fmt.Println("1. Start recording")
	fmt.Println("2. Stop recording")
	fmt.Println("3. Build cursor pose track")
	fmt.Println("4. Live cursor preview")
	fmt.Println("5. Exit")
	fmt.Print("Choose an option: ")

	choice, err := app.readLine()
	if err != nil {
		return app.cleanup()
	}

	switch choice {
	case "1":
		return app.startRecording()
	case "2":
		return app.stopRecording()
	case "3":
		return app.buildPoseTrack()
	case "4":
		return app.preview()
	case "5":
		return app.cleanup()
	default:
		fmt.Println("Invalid option")
		return nil
	}
}

func (app *Application) readLine() (string, error) {
	line, err := app.input.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (app *Application) startRecording() error {
	if rec := app.currentRecorder(); rec != nil && rec.IsRecording() {
		fmt.Println("Already recording")
		return nil
	}

	fmt.Print("Enter the name you wish to save the file under (Don't include the file format ex .mp4): ")
	baseName, err := app.readLine()
	if err != nil || baseName == "" {
		fmt.Println("A name is required")
		return nil
	}

	rec := recording.NewRecorder(app.config)
	app.mu.Lock()
	app.recorder = rec
	app.mu.Unlock()
	if err := rec.Start(baseName); err != nil {
		fmt.Printf("Unable to start recording: %v\n", err)
		return nil
	}
	fmt.Println("Recording... choose option 2 or press Ctrl+C to stop.")
	return nil
}

func (app *Application) stopRecording() error {
	rec := app.currentRecorder()
	if rec == nil || !rec.IsRecording() {
		fmt.Println("No recording in progress")
		return nil
	}
	if err := rec.Stop(); err != nil {
		fmt.Printf("Recording failed: %v\n", err)
		return nil
	}
	fmt.Printf("Saved %s\n", rec.GetOutputPath())
	return nil
}

// metadataPath returns the last recording, or asks for one.
func (app *Application) metadataPath() (string, bool) {
	if rec := app.currentRecorder(); rec != nil && rec.IsDone() {
		return rec.GetMetadataPath(), true
	}
	fmt.Print("Enter the path of a recording's .meta.toml file: ")
	path, err := app.readLine()
	if err != nil || path == "" {
		fmt.Println("No recording available")
		return "", false
	}
	return path, true
}

func (app *Application) buildPoseTrack() error {
	metaPath, ok := app.metadataPath()
	if !ok {
		return nil
	}
	outputPath := editing.PoseTrackPath(metaPath)

	editor := editing.NewEditor(app.config)
	editor.SetProgressReporter(video.NewProgressBar("Rendering cursor"))
	n, err := editor.BuildPoseTrack(app.ctx, metaPath, outputPath)
	if err != nil {
		fmt.Printf("Unable to build pose track: %v\n", err)
		return nil
	}
	fmt.Printf("Wrote %d poses to %s\n", n, outputPath)
	return nil
}

func (app *Application) preview() error {
	metaPath, ok := app.metadataPath()
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(app.ctx)
	defer cancel()
	app.setPreviewCancel(cancel)

	updates := make(chan *config.Config, 1)
	err := config.Watch(ctx, app.configPath, func(c *config.Config) {
		select {
		case updates <- c:
		case <-ctx.Done():
		}
	})
	if err != nil {
		slog.Warn("config hot reload unavailable", "err", err)
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		app.readLine()
		cancel()
	}()

	fmt.Printf("Previewing %s. Edit %s to tune the motion, press Enter to stop.\n", metaPath, app.configPath)
	editor := editing.NewEditor(app.config)
	if err := editor.Preview(ctx, metaPath, os.Stdout, updates); err != nil {
		fmt.Printf("Preview stopped: %v\n", err)
	}
	app.setPreviewCancel(nil)

	// The stdin reader must finish before the menu reads again.
	select {
	case <-readDone:
	default:
		fmt.Println("Press Enter to return to the menu.")
		<-readDone
	}
	return nil
}

func (app *Application) cleanup() error {
	if rec := app.currentRecorder(); rec != nil && rec.IsRecording() {
		if err := rec.Stop(); err != nil {
			return err
		}
	}
	app.cancel()
	return nil
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	for sig := range sigChan {
		fmt.Printf("\nReceived signal: %v\n", sig)
		app.mu.Lock()
		rec, previewCancel := app.recorder, app.previewCancel
		app.mu.Unlock()
		switch {
		case rec != nil && rec.IsRecording():
			fmt.Println("Stopping recording...")
			if err := rec.Stop(); err != nil {
				slog.Error("error stopping recording", "err", err)
			}
		case previewCancel != nil:
			previewCancel()
		default:
			fmt.Println("Exiting application...")
			app.cancel()
			os.Exit(0)
		}
	}
}

func main() {
	configPath := flag.String("config", "focusframe.toml", "path of the TOML configuration file")
	verbose := flag.Bool("v", false, "log per-frame diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logging.SetLogger(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}

	app := NewApplication(*configPath, cfg)
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
