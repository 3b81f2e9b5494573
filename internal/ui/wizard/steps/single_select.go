package steps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
)

// SingleSelectStep allows selecting one option from a list.
type SingleSelectStep struct {
	id       string
	title    string
	prompt   string
	options  []framework.Option
	cursor   int
	selected int // -1 if nothing selected yet
}

// NewSingleSelect creates a new single-select step with the cursor on the
// first option.
func NewSingleSelect(id, title, prompt string, options []framework.Option) *SingleSelectStep {
	return &SingleSelectStep{
		id:       id,
		title:    title,
		prompt:   prompt,
		options:  options,
		selected: -1,
	}
}

// WithCursor places the cursor on option i (e.g., the current theme).
func (s *SingleSelectStep) WithCursor(i int) *SingleSelectStep {
	if i >= 0 && i < len(s.options) {
		s.cursor = i
	}
	return s
}

func (s *SingleSelectStep) ID() string    { return s.id }
func (s *SingleSelectStep) Title() string { return s.title }

func (s *SingleSelectStep) Init() tea.Cmd {
	return nil
}

func (s *SingleSelectStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up", "k":
		s.cursor = max(0, s.cursor-1)
	case "down", "j":
		s.cursor = min(len(s.options)-1, s.cursor+1)
	case "home", "pgup":
		s.cursor = 0
	case "end", "pgdown":
		s.cursor = max(0, len(s.options)-1)
	case "enter":
		if len(s.options) > 0 {
			s.selected = s.cursor
			return s, nil, framework.StepSubmitIfReady
		}
	case "right":
		if len(s.options) > 0 {
			s.selected = s.cursor
			return s, nil, framework.StepAdvance
		}
	case "left":
		return s, nil, framework.StepBack
	}
	return s, nil, framework.StepContinue
}

func (s *SingleSelectStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt)
	b.WriteString("\n\n")

	if len(s.options) == 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  No options available") + "\n")
		return b.String()
	}

	for i, opt := range s.options {
		cursor := "  "
		style := framework.OptionNormalStyle()
		if i == s.cursor {
			cursor = "> "
			style = framework.OptionSelectedStyle()
		}

		b.WriteString(cursor + style.Render(opt.Label) + "\n")
		if opt.Description != "" {
			b.WriteString("    " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}
	return b.String()
}

func (s *SingleSelectStep) Help() string {
	return "↑/↓ select • ←/→ navigate • enter confirm • esc cancel"
}

func (s *SingleSelectStep) Value() framework.StepValue {
	if s.selected < 0 || s.selected >= len(s.options) {
		return framework.StepValue{Key: s.id}
	}
	opt := s.options[s.selected]
	return framework.StepValue{
		Key:   s.id,
		Label: opt.Label,
		Raw:   opt.Value,
	}
}

func (s *SingleSelectStep) IsComplete() bool {
	return s.selected >= 0
}

func (s *SingleSelectStep) Reset() {
	s.selected = -1
	s.cursor = 0
}

func (s *SingleSelectStep) HasClearableInput() bool { return false }
func (s *SingleSelectStep) ClearInput() tea.Cmd     { return nil }

// GetCursor returns the current cursor position.
func (s *SingleSelectStep) GetCursor() int {
	return s.cursor
}

// String implements fmt.Stringer for debugging.
func (s *SingleSelectStep) String() string {
	return fmt.Sprintf("SingleSelectStep{id=%s, cursor=%d, selected=%d, options=%d}",
		s.id, s.cursor, s.selected, len(s.options))
}
