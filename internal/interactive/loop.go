package interactive

import (
	"context"
	"fmt"
	"io"

	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// Prompter asks the user questions. Each method reports ok=false when the
// user abandoned the prompt. A non-nil error means the prompt itself failed.
type Prompter interface {
	SelectChoice(ctx context.Context, title string, choices []MenuChoice) (MenuChoice, bool, error)
	SelectNamespace(ctx context.Context, title string) (project.Namespace, bool, error)
	Text(ctx context.Context, title, placeholder string) (string, bool, error)
}

// Runner executes one sub-command invocation.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, inv Invocation) error

func (f RunnerFunc) Run(ctx context.Context, inv Invocation) error {
	return f(ctx, inv)
}

// Messages printed by the loop.
const (
	Farewell      = "Goodbye! Happy building with Ignix UI."
	Cancelled     = "Cancelled."
	NothingToAdd  = "Nothing to add."
	menuTitle     = "What would you like to do?"
	namespaceAdd  = "What would you like to add?"
	namespaceList = "What would you like to list?"
)

// Loop is the interactive menu session.
type Loop struct {
	Prompter Prompter
	Runner   Runner
	Out      io.Writer // farewell, notices and errors
}

// maxMenuFailures is how many menu prompt failures in a row end the session.
const maxMenuFailures = 3

// Run shows the menu until the user exits or abandons the menu. Errors of
// the menu prompt itself are printed and the menu is shown again; after
// maxMenuFailures consecutive failures the session ends as if abandoned.
func (l *Loop) Run(ctx context.Context) {
	failures := 0
	for {
		done, err := l.step(ctx)
		if err != nil {
			fmt.Fprintln(l.Out, styles.Failed(err.Error()))
			failures++
			done = failures >= maxMenuFailures
		} else {
			failures = 0
		}
		if done {
			fmt.Fprintln(l.Out, styles.PrimaryStyle.Render(Farewell))
			return
		}
	}
}

// step runs one iteration and reports whether the session is over. The
// returned error is a failure of the menu prompt; dispatch errors are
// printed here.
func (l *Loop) step(ctx context.Context) (bool, error) {
	if ctx.Err() != nil {
		return true, nil
	}

	choice, ok, err := l.Prompter.SelectChoice(ctx, menuTitle, MenuChoices)
	if err != nil {
		return false, fmt.Errorf("menu prompt: %w", err)
	}
	if !ok || choice == ChoiceExit {
		return true, nil
	}

	if err := l.dispatch(ctx, choice); err != nil {
		fmt.Fprintln(l.Out, styles.Failed(err.Error()))
	}
	return false, nil
}

// dispatch builds and runs the invocation for choice. Errors of the
// sub-command and of secondary prompts are returned for printing.
func (l *Loop) dispatch(ctx context.Context, choice MenuChoice) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s failed: %v", choice, r)
		}
	}()

	switch choice {
	case ChoiceInit, ChoiceThemes, ChoiceWizard:
		return l.run(ctx, Invocation{Name: choice.String()})

	case ChoiceAdd:
		ns, ok, err := l.Prompter.SelectNamespace(ctx, namespaceAdd)
		if err != nil {
			return err
		}
		if !ok {
			l.notice(Cancelled)
			return nil
		}
		text, ok, err := l.Prompter.Text(ctx,
			fmt.Sprintf("Enter %s name(s) (space-separated):", ns), "button card")
		if err != nil {
			return err
		}
		if !ok {
			l.notice(Cancelled)
			return nil
		}
		ids := ParseIdentifiers(text)
		if len(ids) == 0 {
			l.notice(NothingToAdd)
			return nil
		}
		return l.run(ctx, Invocation{Name: "add", Args: append([]string{string(ns)}, ids...)})

	case ChoiceList:
		ns, ok, err := l.Prompter.SelectNamespace(ctx, namespaceList)
		if err != nil {
			return err
		}
		if !ok {
			l.notice(Cancelled)
			return nil
		}
		return l.run(ctx, Invocation{Name: "list", Args: []string{string(ns)}})

	case ChoiceExit:
		return nil
	}
	return fmt.Errorf("unhandled menu choice %s", choice)
}

func (l *Loop) run(ctx context.Context, inv Invocation) error {
	log.FromContext(ctx).Debug("dispatching", "command", inv.String())
	return l.Runner.Run(ctx, inv)
}

func (l *Loop) notice(msg string) {
	fmt.Fprintln(l.Out, styles.Note(msg))
}
