package interactive

import (
	"fmt"

	"github.com/100xmanas/ignix-ui/internal/project"
)

// MenuChoice is one entry of the main menu.
type MenuChoice int

const (
	ChoiceInit MenuChoice = iota
	ChoiceAdd
	ChoiceList
	ChoiceThemes
	ChoiceWizard
	ChoiceExit
)

// MenuChoices lists the menu entries in display order. The first entry is
// highlighted when the menu opens.
var MenuChoices = []MenuChoice{ChoiceInit, ChoiceAdd, ChoiceList, ChoiceThemes, ChoiceWizard, ChoiceExit}

func (c MenuChoice) String() string {
	switch c {
	case ChoiceInit:
		return "init"
	case ChoiceAdd:
		return "add"
	case ChoiceList:
		return "list"
	case ChoiceThemes:
		return "themes"
	case ChoiceWizard:
		return "wizard"
	case ChoiceExit:
		return "exit"
	}
	return fmt.Sprintf("MenuChoice(%d)", int(c))
}

// Label is the text shown for the choice in the menu.
func (c MenuChoice) Label() string {
	switch c {
	case ChoiceInit:
		return "Initialize Ignix UI in your project"
	case ChoiceAdd:
		return "Add components or themes"
	case ChoiceList:
		return "List available components or themes"
	case ChoiceThemes:
		return "Manage themes"
	case ChoiceWizard:
		return "Start the setup wizard"
	case ChoiceExit:
		return "Exit"
	}
	return c.String()
}

// NamespaceLabel is the text shown for a namespace in the secondary prompts.
func NamespaceLabel(ns project.Namespace) string {
	switch ns {
	case project.Theme:
		return "Theme"
	default:
		return "Component"
	}
}
