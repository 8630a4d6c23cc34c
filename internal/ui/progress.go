// Package ui provides terminal output for zero-setup-biome.
// This file implements the step reporter used by the create and migrate flows.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/AsierDev/zero-setup-biome/internal/tui"
)

// StepStatus is the state of the step currently shown.
type StepStatus int

const (
	StatusIdle    StepStatus = iota // No step running
	StatusRunning                   // Start called, not finished
	StatusDone                      // Finished successfully
	StatusWarned                    // Finished with a warning
	StatusFailed                    // Finished with an error
)

// Reporter prints step progress. On a terminal a running step is redrawn in
// place when it finishes; otherwise each transition is one plain line.
type Reporter struct {
	mu         sync.Mutex
	out        io.Writer
	isTTY      bool
	step       string
	status     StepStatus
	started    time.Time
	linesDrawn int
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, isTTY bool) *Reporter {
	return &Reporter{out: out, isTTY: isTTY}
}

// NewStdoutReporter creates a Reporter on stdout, detecting the terminal.
func NewStdoutReporter() *Reporter {
	return NewReporter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// Intro prints the run header.
func (r *Reporter) Intro(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isTTY {
		fmt.Fprintf(r.out, "\n%s\n\n", tui.TitleStyle.Render(title))
		return
	}
	fmt.Fprintf(r.out, "== %s ==\n", title)
}

// Start begins a step. A step still running is finished as done first.
func (r *Reporter) Start(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == StatusRunning {
		r.finish(StatusDone, r.step)
	}
	r.step = msg
	r.status = StatusRunning
	r.started = time.Now()

	if r.isTTY {
		fmt.Fprintf(r.out, "%s %s\n", tui.IconActive, msg)
		r.linesDrawn = 1
		return
	}
	fmt.Fprintf(r.out, "[RUNNING] %s\n", msg)
}

// Stop finishes the running step successfully with msg.
func (r *Reporter) Stop(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finish(StatusDone, msg)
}

// StopWarn finishes the running step with a warning.
func (r *Reporter) StopWarn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finish(StatusWarned, msg)
}

// Fail finishes the running step with an error message.
func (r *Reporter) Fail(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finish(StatusFailed, msg)
}

// Warn prints a standalone warning line.
func (r *Reporter) Warn(msg string) {
	r.line(StatusWarned, msg)
}

// Info prints a standalone success line.
func (r *Reporter) Info(msg string) {
	r.line(StatusDone, msg)
}

// Note prints a titled block of lines.
func (r *Reporter) Note(title string, lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linesDrawn = 0

	body := strings.Join(lines, "\n")
	if r.isTTY {
		fmt.Fprintf(r.out, "%s\n%s\n", tui.TitleStyle.Render(title), tui.NoteStyle.Render(body))
		return
	}
	fmt.Fprintf(r.out, "-- %s --\n", title)
	for _, l := range lines {
		fmt.Fprintf(r.out, "  %s\n", l)
	}
}

// Outro prints the closing line.
func (r *Reporter) Outro(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isTTY {
		fmt.Fprintf(r.out, "\n%s\n", tui.SuccessStyle.Render(msg))
		return
	}
	fmt.Fprintf(r.out, "== %s ==\n", msg)
}

// Cancel prints a cancellation line.
func (r *Reporter) Cancel(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isTTY {
		fmt.Fprintf(r.out, "\n%s\n", tui.DimStyle.Render(msg))
		return
	}
	fmt.Fprintf(r.out, "[CANCELLED] %s\n", msg)
}

func (r *Reporter) line(status StepStatus, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linesDrawn = 0
	if r.isTTY {
		fmt.Fprintf(r.out, "%s %s\n", statusIcon(status), msg)
		return
	}
	fmt.Fprintf(r.out, "[%s] %s\n", statusLabel(status), msg)
}

// finish must be called with r.mu held.
func (r *Reporter) finish(status StepStatus, msg string) {
	if r.status != StatusRunning {
		r.linesDrawn = 0
		if r.isTTY {
			fmt.Fprintf(r.out, "%s %s\n", statusIcon(status), msg)
		} else {
			fmt.Fprintf(r.out, "[%s] %s\n", statusLabel(status), msg)
		}
		return
	}

	elapsed := time.Since(r.started)
	r.status = status

	if r.isTTY {
		// Overwrite the running line in place.
		if r.linesDrawn > 0 {
			fmt.Fprintf(r.out, "\033[%dA\033[2K", r.linesDrawn)
		}
		fmt.Fprintf(r.out, "%s %s %s\n", statusIcon(status), msg, tui.DimStyle.Render("["+formatDuration(elapsed)+"]"))
		r.linesDrawn = 0
		return
	}
	fmt.Fprintf(r.out, "[%s] %s [%s]\n", statusLabel(status), msg, formatDuration(elapsed))
}

// statusIcon returns the rendered icon for a status.
func statusIcon(status StepStatus) string {
	switch status {
	case StatusDone:
		return tui.IconDone
	case StatusWarned:
		return tui.IconWarn
	case StatusFailed:
		return tui.IconFailed
	default:
		return tui.IconActive
	}
}

// statusLabel returns the plain-output tag for a status.
func statusLabel(status StepStatus) string {
	switch status {
	case StatusDone:
		return "DONE"
	case StatusWarned:
		return "WARN"
	case StatusFailed:
		return "FAILED"
	case StatusRunning:
		return "RUNNING"
	default:
		return "INFO"
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
