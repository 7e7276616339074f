package video

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ProgressReporter receives pipeline progress in [0,1].
type ProgressReporter interface {
	Report(progress float64)
	ReportError(err error)
	ReportComplete()
}

// ProgressBar implements the ProgressReporter interface
type ProgressBar struct {
	out         io.Writer
	total       int
	current     int
	startTime   time.Time
	lastUpdate  time.Time
	description string
}

func NewProgressBar(description string) *ProgressBar {
	return NewProgressBarTo(os.Stdout, description)
}

// NewProgressBarTo draws the bar on out.
func NewProgressBarTo(out io.Writer, description string) *ProgressBar {
	return &ProgressBar{
		out:         out,
		total:       100,
		startTime:   time.Now(),
		description: description,
	}
}

func (p *ProgressBar) Report(progress float64) {
	p.current = int(min(max(progress, 0), 1) * float64(p.total))

	// Redraw at most every 100ms
	if time.Since(p.lastUpdate) < 100*time.Millisecond && p.current < p.total {
		return
	}
	p.lastUpdate = time.Now()

	percentage := float64(p.current) / float64(p.total) * 100
	elapsed := time.Since(p.startTime)

	barWidth := 30
	completed := barWidth * p.current / p.total
	bar := strings.Repeat("=", completed) + strings.Repeat("-", barWidth-completed)

	fmt.Fprintf(p.out, "\r%s [%s] %.1f%% Elapsed: %v",
		p.description,
		bar,
		percentage,
		elapsed.Round(time.Second),
	)
}

func (p *ProgressBar) ReportError(err error) {
	fmt.Fprintf(p.out, "\nError: %v\n", err)
}

func (p *ProgressBar) ReportComplete() {
	p.Report(1.0)
	fmt.Fprintln(p.out)
}
