// Package framework provides the core wizard orchestration system.
//
// A wizard is a multi-step interactive flow rendered on stderr. It manages
// step navigation, skip conditions, completion callbacks and a final
// summary the user confirms with enter.
//
// Keys handled by the wizard itself:
//
//	esc, ctrl+c  clear the step's input, or cancel when there is none
//	enter        confirm on the summary
//	left         go back from the summary
package framework

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// summaryID is reported by CurrentStepID while the summary is shown.
const summaryID = "summary"

// Wizard orchestrates a multi-step interactive flow.
type Wizard struct {
	title          string
	steps          []Step
	stepIndex      map[string]int // id -> index
	currentStep    int            // len(steps) while on the summary
	skipConditions map[string]func(*Wizard) bool
	onComplete     map[string]func(*Wizard)
	infoLine       func(*Wizard) string
	summaryTitle   string
	confirmLabel   string
	skipSummary    bool
	done           bool
	cancelled      bool
	width          int
	height         int
	confirmed      map[string]bool // steps the user advanced past
}

// NewWizard creates a new wizard with the given title.
func NewWizard(title string) *Wizard {
	return &Wizard{
		title:          title,
		stepIndex:      make(map[string]int),
		skipConditions: make(map[string]func(*Wizard) bool),
		onComplete:     make(map[string]func(*Wizard)),
		summaryTitle:   "Review and confirm",
		confirmLabel:   "Press enter to confirm, ← to go back",
		width:          60,
		height:         20,
		confirmed:      make(map[string]bool),
	}
}

// AddStep adds a step to the wizard.
func (w *Wizard) AddStep(step Step) *Wizard {
	w.stepIndex[step.ID()] = len(w.steps)
	w.steps = append(w.steps, step)
	return w
}

// SkipWhen sets a condition for skipping a step.
func (w *Wizard) SkipWhen(stepID string, condition func(*Wizard) bool) *Wizard {
	w.skipConditions[stepID] = condition
	return w
}

// OnComplete sets a callback to run when the user advances past a step.
func (w *Wizard) OnComplete(stepID string, callback func(*Wizard)) *Wizard {
	w.onComplete[stepID] = callback
	return w
}

// WithSummary sets the summary title and the confirmation hint below it.
func (w *Wizard) WithSummary(title, confirmLabel string) *Wizard {
	w.summaryTitle = title
	if confirmLabel != "" {
		w.confirmLabel = confirmLabel
	}
	return w
}

// WithInfoLine sets a dynamic info line shown under the title.
func (w *Wizard) WithInfoLine(fn func(*Wizard) string) *Wizard {
	w.infoLine = fn
	return w
}

// WithSkipSummary finishes the wizard after the last step without a summary.
func (w *Wizard) WithSkipSummary(skip bool) *Wizard {
	w.skipSummary = skip
	return w
}

// GetStep returns a step by ID.
func (w *Wizard) GetStep(id string) Step {
	if idx, ok := w.stepIndex[id]; ok {
		return w.steps[idx]
	}
	return nil
}

// GetValue returns a step's value by ID.
func (w *Wizard) GetValue(id string) StepValue {
	if step := w.GetStep(id); step != nil {
		return step.Value()
	}
	return StepValue{}
}

// GetString returns a step's value as a string.
func (w *Wizard) GetString(id string) string {
	v := w.GetValue(id)
	if s, ok := v.Raw.(string); ok {
		return s
	}
	return v.Label
}

// GetBool returns a step's value as a bool.
func (w *Wizard) GetBool(id string) bool {
	b, _ := w.GetValue(id).Raw.(bool)
	return b
}

// GetStrings returns a step's value as a string slice.
func (w *Wizard) GetStrings(id string) []string {
	switch raw := w.GetValue(id).Raw.(type) {
	case []string:
		return raw
	case []any:
		strs := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				strs = append(strs, s)
			}
		}
		return strs
	}
	return nil
}

// IsCancelled returns true if the wizard was cancelled.
func (w *Wizard) IsCancelled() bool {
	return w.cancelled
}

// Run executes the wizard on stderr and returns when it is confirmed,
// cancelled or ctx is done. A done ctx counts as cancellation.
func (w *Wizard) Run(ctx context.Context) (*Wizard, error) {
	if len(w.steps) == 0 {
		return w, errors.New("wizard has no steps")
	}

	// Detect color profile for stderr (handles piped output, NO_COLOR, etc.)
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	p := tea.NewProgram(w,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if ctx.Err() != nil {
		w.cancelled = true
		return w, nil
	}
	if err != nil {
		return nil, err
	}
	return finalModel.(*Wizard), nil
}

// BubbleTea Model interface

func (w *Wizard) Init() tea.Cmd {
	if len(w.steps) == 0 {
		return nil
	}

	// Start at the first incomplete step; pre-filled steps before it count
	// as confirmed
	w.currentStep = w.findNext(-1, true)
	if w.currentStep < 0 {
		w.currentStep = len(w.steps)
	}
	for i := 0; i < w.currentStep && i < len(w.steps); i++ {
		step := w.steps[i]
		if !w.skipped(step) && step.IsComplete() {
			w.confirmed[step.ID()] = true
		}
	}
	if w.currentStep < len(w.steps) {
		return w.steps[w.currentStep].Init()
	}
	return nil
}

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if w.onStep() && w.steps[w.currentStep].HasClearableInput() {
				return w, w.steps[w.currentStep].ClearInput()
			}
			w.cancelled = true
			w.done = true
			return w, tea.Quit
		}

		if !w.onStep() {
			return w.handleSummaryInput(msg)
		}

		step := w.steps[w.currentStep]
		newStep, cmd, result := step.Update(msg)
		w.steps[w.currentStep] = newStep

		switch result {
		case StepAdvance, StepSubmitIfReady:
			if next := w.advance(step); next != nil {
				return w, next
			}
		case StepBack:
			if prev := w.findPrev(w.currentStep); prev >= 0 {
				w.currentStep = prev
			}
		}
		return w, cmd
	}

	return w, nil
}

// advance confirms step and moves to the next step, the summary, or
// finishes when the summary is skipped.
func (w *Wizard) advance(step Step) tea.Cmd {
	w.confirmed[step.ID()] = true
	if cb, ok := w.onComplete[step.ID()]; ok {
		cb(w)
	}

	next := w.findNext(w.currentStep, false)
	if next >= 0 {
		w.currentStep = next
		return w.steps[next].Init()
	}
	if w.skipSummary {
		w.done = true
		return tea.Quit
	}
	w.currentStep = len(w.steps)
	return nil
}

func (w *Wizard) View() tea.View {
	if w.done {
		return tea.NewView("")
	}

	var b strings.Builder

	b.WriteString(TitleStyle().Render(w.title))
	b.WriteString("\n\n")

	if w.infoLine != nil {
		if info := w.infoLine(w); info != "" {
			b.WriteString(InfoStyle().Render(info))
			b.WriteString("\n\n")
		}
	}

	// Step tabs (skip if single step with no summary)
	if !(len(w.steps) == 1 && w.skipSummary) {
		b.WriteString(w.renderStepTabs())
		b.WriteString("\n\n")
	}

	if w.onStep() {
		b.WriteString(w.steps[w.currentStep].View())
		b.WriteString("\n")
		b.WriteString(HelpStyle().Render(w.steps[w.currentStep].Help()))
	} else {
		b.WriteString(w.renderSummary())
		b.WriteString("\n")
		b.WriteString(HelpStyle().Render("← back • enter confirm • esc cancel"))
	}

	return tea.NewView(BorderStyle().Render(b.String()))
}

func (w *Wizard) handleSummaryInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		w.done = true
		return w, tea.Quit
	case "left":
		if prev := w.findPrev(len(w.steps)); prev >= 0 {
			w.currentStep = prev
		}
	}
	return w, nil
}

func (w *Wizard) renderStepTabs() string {
	var tabs []string
	num := 1

	for i, step := range w.steps {
		if w.skipped(step) {
			continue
		}

		label := fmt.Sprintf("%d. %s", num, step.Title())
		num++

		prefix := "  "
		if w.confirmed[step.ID()] {
			prefix = StepCheckStyle().Render("✓ ")
		}

		style := StepInactiveStyle()
		switch {
		case i == w.currentStep:
			style = StepActiveStyle()
		case w.confirmed[step.ID()]:
			style = StepCompletedStyle()
		}
		tabs = append(tabs, prefix+style.Render(label))
	}

	if !w.skipSummary {
		style := StepInactiveStyle()
		if !w.onStep() {
			style = StepActiveStyle()
		}
		tabs = append(tabs, "  "+style.Render(fmt.Sprintf("%d. Summary", num)))
	}

	return strings.Join(tabs, StepArrowStyle().Render(" → "))
}

func (w *Wizard) renderSummary() string {
	var b strings.Builder
	b.WriteString(w.summaryTitle + ":\n\n")

	for _, step := range w.steps {
		if w.skipped(step) {
			continue
		}
		v := step.Value()
		if v.Label == "" {
			continue
		}
		b.WriteString(SummaryLabelStyle().Render(step.Title()+": ") +
			SummaryValueStyle().Render(v.Label) + "\n")
	}

	b.WriteString("\n" + OptionNormalStyle().Render(w.confirmLabel))
	return b.String()
}

// onStep reports whether a step (not the summary) is current.
func (w *Wizard) onStep() bool {
	return w.currentStep < len(w.steps)
}

func (w *Wizard) skipped(step Step) bool {
	cond, ok := w.skipConditions[step.ID()]
	return ok && cond(w)
}

// findNext returns the index of the next non-skipped step after from,
// optionally only considering incomplete steps. -1 if none.
func (w *Wizard) findNext(from int, incompleteOnly bool) int {
	for i := from + 1; i < len(w.steps); i++ {
		step := w.steps[i]
		if w.skipped(step) || (incompleteOnly && step.IsComplete()) {
			continue
		}
		return i
	}
	return -1
}

// findPrev returns the index of the previous non-skipped step before from.
func (w *Wizard) findPrev(from int) int {
	for i := from - 1; i >= 0; i-- {
		if !w.skipped(w.steps[i]) {
			return i
		}
	}
	return -1
}

// CurrentStepID returns the current step's ID, or "summary" if on summary.
func (w *Wizard) CurrentStepID() string {
	if !w.onStep() {
		return summaryID
	}
	return w.steps[w.currentStep].ID()
}

// StepCount returns the number of steps (excluding summary).
func (w *Wizard) StepCount() int {
	return len(w.steps)
}

// AllStepsComplete returns true if all non-skipped steps have values.
func (w *Wizard) AllStepsComplete() bool {
	for _, step := range w.steps {
		if !w.skipped(step) && !step.IsComplete() {
			return false
		}
	}
	return true
}
