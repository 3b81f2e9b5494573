package steps

import (
	tea "charm.land/bubbletea/v2"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
)

// keyMsg builds a key press for a named key or a single printable rune.
func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "alt+backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace, Mod: tea.ModAlt}
	case "ctrl+a":
		return tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// typeText sends each rune of s as a separate key press.
func typeText(step framework.Step, s string) {
	for _, r := range s {
		step.Update(keyMsg(string(r)))
	}
}

func updateStep[T framework.Step](s T, key string) (T, framework.StepResult) {
	next, _, result := s.Update(keyMsg(key))
	return next.(T), result
}
