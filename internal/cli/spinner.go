package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	spinnerTick = 80 * time.Millisecond
	// builds shorter than this show no elapsed time
	spinnerShowElapsed = time.Second
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on w while a build runs. Once the build
// has taken a second the elapsed time is appended. The animation ends on
// Stop or when the parent context is done.
type Spinner struct {
	w       io.Writer
	message string
	parent  context.Context

	run      context.Context
	halt     context.CancelFunc
	finished chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	width int // widest line drawn so far, for clearing
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	run, halt := context.WithCancel(ctx)
	return &Spinner{
		w:        w,
		message:  message,
		parent:   ctx,
		run:      run,
		halt:     halt,
		finished: make(chan struct{}),
	}
}

// Start draws frames from a background goroutine.
func (s *Spinner) Start() {
	begun := time.Now()
	go func() {
		defer close(s.finished)
		tick := time.NewTicker(spinnerTick)
		defer tick.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.run.Done():
				s.erase()
				return
			case <-tick.C:
				s.draw(spinnerFrames[frame%len(spinnerFrames)], time.Since(begun))
			}
		}
	}()
}

func (s *Spinner) draw(frame string, elapsed time.Duration) {
	text := s.message
	if elapsed >= spinnerShowElapsed {
		text += fmt.Sprintf(" %ds", int(elapsed.Seconds()))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(text)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation, clears the line and waits for the drawing
// goroutine to exit. Repeated calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(s.halt)
	<-s.finished
}

// Cancelled reports whether the spinner ended because its parent context
// was cancelled rather than through Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
