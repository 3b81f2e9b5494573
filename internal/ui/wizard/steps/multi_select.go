package steps

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
)

const maxVisible = 10

// MultiSelectStep allows picking any number of options from a
// fuzzy-filtered list. Space toggles, typing filters.
type MultiSelectStep struct {
	id       string
	title    string
	prompt   string
	options  []framework.Option
	filtered []fuzzy.Match // ranked matches, Index points into options
	checked  map[int]bool  // keyed by option index
	cursor   int           // position in filtered
	filter   string
	done     bool

	runeFilter framework.RuneFilter
}

// optionSource implements fuzzy.Source over option labels.
type optionSource []framework.Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

// NewMultiSelect creates a new fuzzy multi-select step.
func NewMultiSelect(id, title, prompt string, options []framework.Option) *MultiSelectStep {
	s := &MultiSelectStep{
		id:      id,
		title:   title,
		prompt:  prompt,
		options: options,
		checked: make(map[int]bool),
	}
	s.applyFilter()
	return s
}

// WithRuneFilter sets a filter for allowed input characters.
func (s *MultiSelectStep) WithRuneFilter(f framework.RuneFilter) *MultiSelectStep {
	s.runeFilter = f
	return s
}

func (s *MultiSelectStep) ID() string    { return s.id }
func (s *MultiSelectStep) Title() string { return s.title }

func (s *MultiSelectStep) Init() tea.Cmd {
	return nil
}

func (s *MultiSelectStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up":
		s.cursor = max(0, s.cursor-1)
	case "down":
		s.cursor = max(0, min(len(s.filtered)-1, s.cursor+1))
	case "home", "pgup":
		s.cursor = 0
	case "end", "pgdown":
		s.cursor = max(0, len(s.filtered)-1)
	case "space":
		if s.cursor < len(s.filtered) {
			idx := s.filtered[s.cursor].Index
			s.checked[idx] = !s.checked[idx]
		}
	case "ctrl+a":
		s.toggleVisible()
	case "enter":
		s.done = true
		return s, nil, framework.StepSubmitIfReady
	case "right":
		s.done = true
		return s, nil, framework.StepAdvance
	case "left":
		return s, nil, framework.StepBack
	case "backspace":
		if s.filter != "" {
			r := []rune(s.filter)
			s.filter = string(r[:len(r)-1])
			s.applyFilter()
		}
	case "alt+backspace", "ctrl+w":
		if s.filter != "" {
			s.filter = framework.DeleteLastWord(s.filter)
			s.applyFilter()
		}
	default:
		if text := framework.FilterText(msg.Text, s.runeFilter); text != "" {
			s.filter += text
			s.applyFilter()
		}
	}
	return s, nil, framework.StepContinue
}

// toggleVisible checks every visible option, or unchecks them all when
// they are already checked.
func (s *MultiSelectStep) toggleVisible() {
	all := len(s.filtered) > 0
	for _, m := range s.filtered {
		if !s.checked[m.Index] {
			all = false
			break
		}
	}
	for _, m := range s.filtered {
		s.checked[m.Index] = !all
	}
}

func (s *MultiSelectStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + ":\n")
	b.WriteString(framework.FilterLabelStyle().Render("Filter: ") + framework.FilterStyle().Render(s.filter) + "\n\n")

	start := 0
	if s.cursor >= maxVisible {
		start = s.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(s.filtered))

	if start > 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := s.filtered[i]
		opt := s.options[match.Index]

		cursor := "  "
		if i == s.cursor {
			cursor = "> "
		}
		box := "[ ] "
		if s.checked[match.Index] {
			box = framework.CheckboxStyle().Render("[✓]") + " "
		}

		b.WriteString(cursor + box + s.renderLabel(opt.Label, match.MatchedIndexes, i == s.cursor) + "\n")
		if opt.Description != "" {
			b.WriteString("      " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}

	if end < len(s.filtered) {
		b.WriteString(framework.OptionNormalStyle().Render("  ↓ more below") + "\n")
	}
	if len(s.filtered) == 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  No matching items") + "\n")
	}

	if n := len(s.selectedIndexes()); n > 0 {
		b.WriteString("\n" + framework.InfoStyle().Render(pluralize(n, "item")+" selected") + "\n")
	}
	return b.String()
}

// renderLabel highlights the fuzzy-matched bytes of label.
func (s *MultiSelectStep) renderLabel(label string, matched []int, isCursor bool) string {
	style := framework.OptionNormalStyle()
	if isCursor {
		style = framework.OptionSelectedStyle()
	}
	if s.filter == "" || len(matched) == 0 {
		return style.Render(label)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	for i, r := range label {
		if set[i] {
			b.WriteString(framework.MatchHighlightStyle().Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

func (s *MultiSelectStep) Help() string {
	return "↑/↓ move • space toggle • ctrl+a toggle all • type to filter • enter confirm • esc cancel"
}

// Value returns the checked options in their original order. Raw holds
// the option values as []string.
func (s *MultiSelectStep) Value() framework.StepValue {
	var labels, values []string
	for _, idx := range s.selectedIndexes() {
		opt := s.options[idx]
		labels = append(labels, opt.Label)
		if v, ok := opt.Value.(string); ok {
			values = append(values, v)
		} else {
			values = append(values, opt.Label)
		}
	}
	label := "none"
	if len(labels) > 0 {
		label = strings.Join(labels, ", ")
	}
	return framework.StepValue{Key: s.id, Label: label, Raw: values}
}

func (s *MultiSelectStep) selectedIndexes() []int {
	var out []int
	for i := range s.options {
		if s.checked[i] {
			out = append(out, i)
		}
	}
	return out
}

// IsComplete reports whether the user confirmed the step. An empty
// selection is a valid answer.
func (s *MultiSelectStep) IsComplete() bool {
	return s.done
}

// Reset keeps checked items and the filter so navigating back preserves them.
func (s *MultiSelectStep) Reset() {
	s.done = false
}

func (s *MultiSelectStep) HasClearableInput() bool {
	return s.filter != ""
}

func (s *MultiSelectStep) ClearInput() tea.Cmd {
	s.filter = ""
	s.applyFilter()
	return nil
}

// Filter returns the current filter text.
func (s *MultiSelectStep) Filter() string {
	return s.filter
}

// VisibleCount returns the number of options matching the filter.
func (s *MultiSelectStep) VisibleCount() int {
	return len(s.filtered)
}

func (s *MultiSelectStep) applyFilter() {
	if s.filter == "" {
		s.filtered = make([]fuzzy.Match, len(s.options))
		for i := range s.options {
			s.filtered[i] = fuzzy.Match{Str: s.options[i].Label, Index: i}
		}
	} else {
		s.filtered = fuzzy.FindFrom(s.filter, optionSource(s.options))
	}
	if s.cursor >= len(s.filtered) {
		s.cursor = max(0, len(s.filtered)-1)
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
