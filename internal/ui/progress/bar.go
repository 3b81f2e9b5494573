package progress

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// barUpdate is sent to advance the bar
type barUpdate struct {
	current int
	message string
}

// Bar is a determinate progress bar: [████░░░░] 3/8 card/card.tsx
type Bar struct {
	background
	updateCh chan barUpdate
	total    int
	current  int
	message  string
}

type barModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updateCh chan barUpdate
}

func (m barModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m barModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.current)/float64(m.total), 1)
}

func (m barModel) View() tea.View {
	if m.total <= 0 {
		return tea.NewView("")
	}
	bar := m.progress.ViewAs(m.percent())
	count := styles.MutedStyle.Render(fmt.Sprintf("%d/%d", m.current, m.total))
	return tea.NewView(fmt.Sprintf("%s %s %s", bar, count, m.message))
}

// NewBar creates a progress bar for total steps.
func NewBar(total int, message string) *Bar {
	return &Bar{
		updateCh: make(chan barUpdate, 10),
		total:    total,
		message:  message,
	}
}

func (b *Bar) model() barModel {
	return barModel{
		progress: progress.New(
			progress.WithWidth(30),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		total:    b.total,
		current:  b.current,
		message:  b.message,
		updateCh: b.updateCh,
	}
}

// Start begins the progress bar display.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start(b.model())
}

// Set updates the completed step count and message.
func (b *Bar) Set(current int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = current
	b.message = message
	if !b.running {
		return
	}

	// Drops the update when the program is behind; the next one wins
	select {
	case b.updateCh <- barUpdate{current: current, message: message}:
	default:
	}
}

// Stop stops the bar and clears the line. Safe to call more than once.
func (b *Bar) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	close(b.updateCh)
	b.mu.Unlock()

	b.stop()
}

// Total returns the number of steps.
func (b *Bar) Total() int {
	return b.total
}
