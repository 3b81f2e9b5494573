package steps

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
)

// TextInputStep allows entering free-form text.
type TextInputStep struct {
	id              string
	title           string
	prompt          string
	input           textinput.Model
	validate        func(string) error
	submitted       bool
	submitValue     string
	validationError string
}

// NewTextInput creates a new text input step with a blinking bar cursor.
func NewTextInput(id, title, prompt, placeholder string) *TextInputStep {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.SetWidth(40)

	styles := ti.Styles()
	styles.Cursor.Shape = tea.CursorBar
	styles.Cursor.Blink = true
	ti.SetStyles(styles)

	return &TextInputStep{
		id:     id,
		title:  title,
		prompt: prompt,
		input:  ti,
	}
}

// WithDefault pre-fills the input. The step is still incomplete until the
// user confirms it.
func (s *TextInputStep) WithDefault(value string) *TextInputStep {
	s.input.SetValue(value)
	return s
}

// WithValidate sets a validation function; the step won't advance while
// it returns an error.
func (s *TextInputStep) WithValidate(fn func(string) error) *TextInputStep {
	s.validate = fn
	return s
}

func (s *TextInputStep) ID() string    { return s.id }
func (s *TextInputStep) Title() string { return s.title }

func (s *TextInputStep) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *TextInputStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "enter":
		if s.submit() {
			return s, nil, framework.StepSubmitIfReady
		}
		return s, nil, framework.StepContinue
	case "right":
		// Only leaves the step when the cursor is at the end of the input
		if s.input.Position() >= len([]rune(s.input.Value())) {
			if s.submit() {
				return s, nil, framework.StepAdvance
			}
			return s, nil, framework.StepContinue
		}
	case "left":
		if s.input.Position() == 0 {
			return s, nil, framework.StepBack
		}
	}

	s.validationError = ""

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, framework.StepContinue
}

// submit validates the input and records it. Returns false on error.
func (s *TextInputStep) submit() bool {
	value := strings.TrimSpace(s.input.Value())
	if value == "" {
		s.validationError = "Value cannot be empty"
		return false
	}
	if s.validate != nil {
		if err := s.validate(value); err != nil {
			s.validationError = err.Error()
			return false
		}
	}
	s.validationError = ""
	s.submitted = true
	s.submitValue = value
	return true
}

func (s *TextInputStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	b.WriteString(s.input.View())
	if s.validationError != "" {
		b.WriteString("\n" + framework.ErrorStyle().Render(s.validationError))
	}
	return b.String()
}

func (s *TextInputStep) Help() string {
	return "type text • ←/→ navigate • enter confirm • esc cancel"
}

func (s *TextInputStep) Value() framework.StepValue {
	return framework.StepValue{
		Key:   s.id,
		Label: s.submitValue,
		Raw:   s.submitValue,
	}
}

func (s *TextInputStep) IsComplete() bool {
	return s.submitted
}

func (s *TextInputStep) Reset() {
	s.input.SetValue("")
	s.submitted = false
	s.submitValue = ""
}

func (s *TextInputStep) HasClearableInput() bool {
	return s.input.Value() != ""
}

func (s *TextInputStep) ClearInput() tea.Cmd {
	s.input.SetValue("")
	s.validationError = ""
	return nil
}

// Input returns the current, not yet submitted, input.
func (s *TextInputStep) Input() string {
	return s.input.Value()
}
