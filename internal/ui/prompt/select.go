package prompt

import (
	"context"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

// Option is one entry of a selection prompt.
type Option struct {
	Label       string
	Description string
}

type listItem struct {
	title       string
	description string
	index       int
}

func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.title }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// While filtering, keys belong to the filter input
		if m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func newSelectModel(prompt string, options []Option, initial int) selectModel {
	items := make([]list.Item, len(options))
	withDescriptions := false
	for i, opt := range options {
		items[i] = listItem{title: opt.Label, description: opt.Description, index: i}
		if opt.Description != "" {
			withDescriptions = true
		}
	}

	// Custom delegate with minimal styling
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = withDescriptions
	delegate.SetSpacing(0)

	selectedStyle := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = styles.MutedStyle

	height := len(options) + 6
	if withDescriptions {
		height = 2*len(options) + 6
	}

	l := list.New(items, delegate, 60, min(height, 20))
	l.Title = prompt
	l.Styles.Title = styles.AccentStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(len(options) > 8)
	l.DisableQuitKeybindings()
	if initial > 0 && initial < len(options) {
		l.Select(initial)
	}

	return selectModel{
		list:     l,
		selected: -1,
	}
}

// Select shows a list selection prompt and returns the user's selection.
// The option at index initial is highlighted when the prompt opens.
func Select(ctx context.Context, prompt string, options []Option, initial int) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	final, err := run(ctx, newSelectModel(prompt, options, initial))
	if err != nil {
		return SelectResult{}, err
	}
	m := final.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true}, nil
	}

	return SelectResult{
		Value: options[m.selected].Label,
		Index: m.selected,
	}, nil
}
