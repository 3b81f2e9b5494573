package prompt

import (
	"context"

	"github.com/100xmanas/ignix-ui/internal/interactive"
	"github.com/100xmanas/ignix-ui/internal/project"
)

// Menu answers the questions of the interactive session with terminal prompts.
type Menu struct{}

var _ interactive.Prompter = Menu{}

// SelectChoice shows the main menu with the first choice highlighted.
func (Menu) SelectChoice(ctx context.Context, title string, choices []interactive.MenuChoice) (interactive.MenuChoice, bool, error) {
	opts := make([]Option, len(choices))
	for i, c := range choices {
		opts[i] = Option{Label: c.String(), Description: c.Label()}
	}
	res, err := Select(ctx, title, opts, 0)
	if err != nil || res.Cancelled {
		return 0, false, ignoreCancel(ctx, err)
	}
	return choices[res.Index], true, nil
}

// SelectNamespace asks for component or theme.
func (Menu) SelectNamespace(ctx context.Context, title string) (project.Namespace, bool, error) {
	opts := make([]Option, len(project.Namespaces))
	for i, ns := range project.Namespaces {
		opts[i] = Option{Label: interactive.NamespaceLabel(ns)}
	}
	res, err := Select(ctx, title, opts, 0)
	if err != nil || res.Cancelled {
		return "", false, ignoreCancel(ctx, err)
	}
	return project.Namespaces[res.Index], true, nil
}

// Text asks for a line of free text.
func (Menu) Text(ctx context.Context, title, placeholder string) (string, bool, error) {
	res, err := TextInput(ctx, title, placeholder)
	if err != nil || res.Cancelled {
		return "", false, ignoreCancel(ctx, err)
	}
	return res.Value, true, nil
}

// ignoreCancel treats an interrupted context as an abandoned prompt.
func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
