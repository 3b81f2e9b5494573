package steps

import (
	"strings"
	"testing"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
)

func languageOptions() []framework.Option {
	return []framework.Option{
		{Label: "TypeScript", Value: true},
		{Label: "JavaScript", Value: false},
	}
}

func TestSingleSelect_Navigation(t *testing.T) {
	t.Parallel()

	s := NewSingleSelect("language", "Language", "Pick a language", languageOptions())
	if s.GetCursor() != 0 {
		t.Fatalf("initial cursor = %d, want 0", s.GetCursor())
	}

	s, _ = updateStep(s, "down")
	if s.GetCursor() != 1 {
		t.Errorf("cursor after down = %d, want 1", s.GetCursor())
	}
	s, _ = updateStep(s, "down")
	if s.GetCursor() != 1 {
		t.Errorf("cursor past end = %d, want 1", s.GetCursor())
	}
	s, _ = updateStep(s, "up")
	s, _ = updateStep(s, "up")
	if s.GetCursor() != 0 {
		t.Errorf("cursor past start = %d, want 0", s.GetCursor())
	}
	s, _ = updateStep(s, "end")
	if s.GetCursor() != 1 {
		t.Errorf("cursor after end = %d, want 1", s.GetCursor())
	}
	s, _ = updateStep(s, "home")
	if s.GetCursor() != 0 {
		t.Errorf("cursor after home = %d, want 0", s.GetCursor())
	}
}

func TestSingleSelect_Select(t *testing.T) {
	t.Parallel()

	s := NewSingleSelect("language", "Language", "Pick a language", languageOptions())
	if s.IsComplete() {
		t.Fatal("new step should not be complete")
	}
	if v := s.Value(); v.Raw != nil {
		t.Errorf("Value().Raw = %v before selection, want nil", v.Raw)
	}

	s, _ = updateStep(s, "down")
	s, result := updateStep(s, "enter")
	if result != framework.StepSubmitIfReady {
		t.Errorf("enter result = %v, want StepSubmitIfReady", result)
	}
	if !s.IsComplete() {
		t.Fatal("step should be complete after enter")
	}
	v := s.Value()
	if v.Label != "JavaScript" || v.Raw != false {
		t.Errorf("Value() = %+v, want JavaScript/false", v)
	}

	s.Reset()
	if s.IsComplete() || s.GetCursor() != 0 {
		t.Errorf("after Reset: complete=%v cursor=%d", s.IsComplete(), s.GetCursor())
	}
}

func TestSingleSelect_ArrowKeys(t *testing.T) {
	t.Parallel()

	s := NewSingleSelect("language", "Language", "Pick", languageOptions())
	s, result := updateStep(s, "right")
	if result != framework.StepAdvance || !s.IsComplete() {
		t.Errorf("right: result=%v complete=%v, want StepAdvance and complete", result, s.IsComplete())
	}
	_, result = updateStep(s, "left")
	if result != framework.StepBack {
		t.Errorf("left result = %v, want StepBack", result)
	}
}

func TestSingleSelect_WithCursor(t *testing.T) {
	t.Parallel()

	s := NewSingleSelect("theme", "Theme", "Pick", languageOptions()).WithCursor(1)
	if s.GetCursor() != 1 {
		t.Errorf("cursor = %d, want 1", s.GetCursor())
	}
	s = NewSingleSelect("theme", "Theme", "Pick", languageOptions()).WithCursor(5)
	if s.GetCursor() != 0 {
		t.Errorf("out of range cursor = %d, want 0", s.GetCursor())
	}
}

func TestSingleSelect_Empty(t *testing.T) {
	t.Parallel()

	s := NewSingleSelect("theme", "Theme", "Pick", nil)
	s, result := updateStep(s, "enter")
	if result != framework.StepContinue || s.IsComplete() {
		t.Errorf("enter on empty list: result=%v complete=%v", result, s.IsComplete())
	}
	if !strings.Contains(s.View(), "No options available") {
		t.Errorf("View() = %q, want empty notice", s.View())
	}
}

func TestSingleSelect_View(t *testing.T) {
	t.Parallel()

	opts := []framework.Option{
		{Label: "ignix-dark", Value: "ignix-dark", Description: "Default dark theme"},
		{Label: "ignix-light", Value: "ignix-light"},
	}
	s := NewSingleSelect("theme", "Theme", "Pick a theme", opts)
	view := s.View()
	for _, want := range []string{"Pick a theme", "> ", "ignix-dark", "Default dark theme", "ignix-light"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if s.HasClearableInput() {
		t.Error("single select has no clearable input")
	}
}
