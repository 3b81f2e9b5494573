package flows

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/100xmanas/ignix-ui/internal/ui/wizard/framework"
	"github.com/100xmanas/ignix-ui/internal/ui/wizard/steps"
)

// SetupOptions holds the options gathered from the setup wizard.
type SetupOptions struct {
	ComponentsDir string
	TypeScript    bool
	Theme         string // empty when no theme was chosen
	Components    []string
	Cancelled     bool
}

// ItemInfo describes a registry item offered by the wizard.
type ItemInfo struct {
	Name        string
	Description string
}

// SetupWizardParams contains parameters for the setup wizard.
type SetupWizardParams struct {
	ProjectDir    string     // shown in the info line
	Initialized   bool       // project already has ignix.toml; skips dir and language
	ComponentsDir string     // pre-filled components directory
	Themes        []ItemInfo // available themes
	CurrentTheme  string     // pre-highlighted theme
	Components    []ItemInfo // available components
}

// SetupInteractive runs the project setup wizard.
func SetupInteractive(ctx context.Context, params SetupWizardParams) (SetupOptions, error) {
	w, err := newSetupWizard(params).Run(ctx)
	if err != nil {
		return SetupOptions{}, err
	}
	return setupOptions(w), nil
}

func newSetupWizard(params SetupWizardParams) *framework.Wizard {
	w := framework.NewWizard("Ignix UI Setup")

	if params.ProjectDir != "" {
		w.WithInfoLine(func(*framework.Wizard) string {
			return "Project: " + params.ProjectDir
		})
	}

	dirStep := steps.NewTextInput("dir", "Directory", "Where should components be placed?", "src/components/ui").
		WithDefault(params.ComponentsDir).
		WithValidate(validateComponentsDir)
	w.AddStep(dirStep)
	w.SkipWhen("dir", func(*framework.Wizard) bool { return params.Initialized })

	langStep := steps.NewSingleSelect("language", "Language", "Which language does the project use?", []framework.Option{
		{Label: "TypeScript", Value: true, Description: ".tsx components"},
		{Label: "JavaScript", Value: false, Description: ".jsx components"},
	})
	w.AddStep(langStep)
	w.SkipWhen("language", func(*framework.Wizard) bool { return params.Initialized })

	themeOptions, current := buildThemeOptions(params.Themes, params.CurrentTheme)
	w.AddStep(steps.NewSingleSelect("theme", "Theme", "Pick a theme", themeOptions).WithCursor(current))

	w.AddStep(steps.NewMultiSelect("components", "Components", "Select components to add", buildItemOptions(params.Components)).
		WithRuneFilter(framework.RuneFilterIdentifier))

	w.WithSummary("Ready to set up", "Press enter to install, ← to go back")
	return w
}

func setupOptions(w *framework.Wizard) SetupOptions {
	if w.IsCancelled() {
		return SetupOptions{Cancelled: true}
	}
	return SetupOptions{
		ComponentsDir: w.GetString("dir"),
		TypeScript:    w.GetBool("language"),
		Theme:         w.GetString("theme"),
		Components:    w.GetStrings("components"),
	}
}

func validateComponentsDir(dir string) error {
	if filepath.IsAbs(dir) {
		return errors.New("directory must be relative to the project")
	}
	if strings.HasPrefix(filepath.Clean(dir), "..") {
		return errors.New("directory must stay inside the project")
	}
	return nil
}

// buildThemeOptions returns the theme options followed by a "none" option,
// and the index of current (0 when absent).
func buildThemeOptions(themes []ItemInfo, current string) ([]framework.Option, int) {
	opts := buildItemOptions(themes)
	cursor := 0
	for i, t := range themes {
		if strings.EqualFold(t.Name, current) {
			cursor = i
		}
	}
	opts = append(opts, framework.Option{Label: "none", Value: "", Description: "Skip theme installation"})
	return opts, cursor
}

func buildItemOptions(items []ItemInfo) []framework.Option {
	opts := make([]framework.Option, len(items))
	for i, it := range items {
		opts[i] = framework.Option{
			Label:       it.Name,
			Value:       it.Name,
			Description: it.Description,
		}
	}
	return opts
}
