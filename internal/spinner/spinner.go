// Package spinner provides the progress indicator and status lines printed
// during report generation.
package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI escape sequences for terminal control.
const (
	clearLine  = "\r\033[K"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// frames is the growing-dots animation cycled while a stage runs.
var frames = []string{".", "..", "...", "....", "....."}

// Spinner animates a message on a terminal. On non-terminal writers it
// degrades to plain status lines with no animation.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	active  bool
	isTTY   bool
	frame   int
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a spinner writing to stderr.
func New(message string) *Spinner {
	return NewWithWriter(message, os.Stderr)
}

// NewWithWriter creates a spinner on an explicit writer; used by tests.
func NewWithWriter(message string, w io.Writer) *Spinner {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &Spinner{w: w, message: message, isTTY: isTTY}
}

// Start begins the animation. No-op when already running or not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active || !s.isTTY {
		return
	}
	s.active = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.spin()
}

// SetMessage replaces the animated message.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	fmt.Fprint(s.w, clearLine)
}

// Status prints a bracketed status line, suspending the animation so the
// line lands on clean output. Successes render [✓] in green, failures [!]
// in red.
func (s *Spinner) Status(message string, ok bool) {
	wasActive := false
	s.mu.Lock()
	wasActive = s.active
	s.mu.Unlock()
	if wasActive {
		s.Stop()
	}

	if ok {
		if s.isTTY {
			fmt.Fprintf(s.w, "[%s✓%s] %s%s%s\n", colorGreen, colorReset, colorGreen, message, colorReset)
		} else {
			fmt.Fprintf(s.w, "[✓] %s\n", message)
		}
	} else {
		if s.isTTY {
			fmt.Fprintf(s.w, "[%s!%s] %s%s%s\n", colorRed, colorReset, colorRed, message, colorReset)
		} else {
			fmt.Fprintf(s.w, "[!] %s\n", message)
		}
	}

	if wasActive && ok {
		s.Start()
	}
}

func (s *Spinner) spin() {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-s.stopCh:
			close(s.doneCh)
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	frame := frames[s.frame%len(frames)]
	s.frame++
	fmt.Fprintf(s.w, "%s%s %s", clearLine, frame, s.message)
}
