package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// stopTimeout bounds how long Stop waits for the program to exit.
const stopTimeout = 500 * time.Millisecond

// background runs a Bubbletea model on stderr until stopped.
type background struct {
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	running bool
}

// start launches model unless already running.
func (b *background) start(model tea.Model) {
	if b.running {
		return
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	b.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	b.done = make(chan struct{})
	b.running = true

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(b.program, b.done)
}

// stop quits the program and clears its line. Callers must have marked
// the background as not running under mu.
func (b *background) stop() {
	if b.program != nil {
		b.program.Quit()
	}

	select {
	case <-b.done:
	case <-time.After(stopTimeout):
	}

	// Clear to stderr (UI output shouldn't pollute stdout)
	fmt.Fprint(os.Stderr, "\r\033[K")
}
