package prompt

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// run executes model on stderr. A cancelled ctx stops the program and
// is reported through ctx.Err().
func run(ctx context.Context, model tea.Model) (tea.Model, error) {
	// Detect color profile for stderr (handles piped output, NO_COLOR, etc.)
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return final, err
}
