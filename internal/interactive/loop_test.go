package interactive

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/100xmanas/ignix-ui/internal/project"
)

// answer is one scripted prompt result. ok=false means abandoned.
type answer struct {
	choice MenuChoice
	ns     project.Namespace
	text   string
	ok     bool
	err    error
}

func pick(c MenuChoice) answer { return answer{choice: c, ok: true} }
func namespace(ns project.Namespace) answer { return answer{ns: ns, ok: true} }
func text(s string) answer { return answer{text: s, ok: true} }
func abandon() answer { return answer{} }

// scriptedPrompter replays answers in order and fails the test when a
// prompt is shown that was not scripted.
type scriptedPrompter struct {
	t       *testing.T
	answers []answer
	prompts []string
}

func (p *scriptedPrompter) next(kind string) answer {
	p.t.Helper()
	p.prompts = append(p.prompts, kind)
	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected %s prompt after script ended (prompts: %v)", kind, p.prompts)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scriptedPrompter) SelectChoice(_ context.Context, _ string, choices []MenuChoice) (MenuChoice, bool, error) {
	if diff := cmp.Diff(MenuChoices, choices); diff != "" {
		p.t.Errorf("menu choices mismatch (-want +got):\n%s", diff)
	}
	a := p.next("menu")
	return a.choice, a.ok, a.err
}

func (p *scriptedPrompter) SelectNamespace(context.Context, string) (project.Namespace, bool, error) {
	a := p.next("namespace")
	return a.ns, a.ok, a.err
}

func (p *scriptedPrompter) Text(context.Context, string, string) (string, bool, error) {
	a := p.next("text")
	return a.text, a.ok, a.err
}

// recordingRunner records invocations and fails those listed in errs.
type recordingRunner struct {
	calls [][]string
	errs  map[string]error
}

func (r *recordingRunner) Run(_ context.Context, inv Invocation) error {
	r.calls = append(r.calls, inv.Tokens())
	return r.errs[inv.Name]
}

func runLoop(t *testing.T, runner *recordingRunner, answers ...answer) (*scriptedPrompter, string) {
	t.Helper()
	p := &scriptedPrompter{t: t, answers: answers}
	var out bytes.Buffer
	loop := &Loop{Prompter: p, Runner: runner, Out: &out}
	loop.Run(context.Background())
	return p, ansi.Strip(out.String())
}

func TestLoop_ExitStopsProcessing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		answers  []answer
		wantRuns [][]string
	}{
		{
			name:    "exit immediately",
			answers: []answer{pick(ChoiceExit), pick(ChoiceInit)},
		},
		{
			name:    "abandoned menu",
			answers: []answer{abandon(), pick(ChoiceInit)},
		},
		{
			name:     "actions then exit",
			answers:  []answer{pick(ChoiceInit), pick(ChoiceThemes), pick(ChoiceWizard), pick(ChoiceExit), pick(ChoiceInit)},
			wantRuns: [][]string{{"ignix", "init"}, {"ignix", "themes"}, {"ignix", "wizard"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := &recordingRunner{}
			p, out := runLoop(t, runner, tt.answers...)
			if diff := cmp.Diff(tt.wantRuns, runner.calls); diff != "" {
				t.Errorf("invocations mismatch (-want +got):\n%s", diff)
			}
			if len(p.answers) != 1 {
				t.Errorf("choice after exit was consumed (remaining %d)", len(p.answers))
			}
			if !strings.Contains(out, Farewell) {
				t.Errorf("output missing farewell: %q", out)
			}
		})
	}
}

func TestLoop_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		answers    []answer
		wantRuns   [][]string
		wantNotice string
	}{
		{
			name:     "extra whitespace dropped",
			answers:  []answer{pick(ChoiceAdd), namespace(project.Component), text("button card  "), pick(ChoiceExit)},
			wantRuns: [][]string{{"ignix", "add", "component", "button", "card"}},
		},
		{
			name:     "theme",
			answers:  []answer{pick(ChoiceAdd), namespace(project.Theme), text("\tignix-dark\n"), pick(ChoiceExit)},
			wantRuns: [][]string{{"ignix", "add", "theme", "ignix-dark"}},
		},
		{
			name:       "empty identifiers",
			answers:    []answer{pick(ChoiceAdd), namespace(project.Component), text(""), pick(ChoiceExit)},
			wantNotice: NothingToAdd,
		},
		{
			name:       "whitespace-only identifiers",
			answers:    []answer{pick(ChoiceAdd), namespace(project.Component), text("   \t "), pick(ChoiceExit)},
			wantNotice: NothingToAdd,
		},
		{
			name:       "abandoned namespace",
			answers:    []answer{pick(ChoiceAdd), abandon(), pick(ChoiceExit)},
			wantNotice: Cancelled,
		},
		{
			name:       "abandoned identifiers",
			answers:    []answer{pick(ChoiceAdd), namespace(project.Component), abandon(), pick(ChoiceExit)},
			wantNotice: Cancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := &recordingRunner{}
			p, out := runLoop(t, runner, tt.answers...)
			if diff := cmp.Diff(tt.wantRuns, runner.calls); diff != "" {
				t.Errorf("invocations mismatch (-want +got):\n%s", diff)
			}
			if len(p.answers) != 0 {
				t.Errorf("script not fully consumed: %d answers left", len(p.answers))
			}
			if tt.wantNotice != "" && !strings.Contains(out, tt.wantNotice) {
				t.Errorf("output %q missing %q", out, tt.wantNotice)
			}
			if strings.Contains(out, "Error:") {
				t.Errorf("skipped add should not print an error: %q", out)
			}
		})
	}
}

func TestLoop_List(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	p, out := runLoop(t, runner,
		pick(ChoiceList), abandon(),
		pick(ChoiceList), namespace(project.Theme),
		pick(ChoiceExit),
	)

	want := [][]string{{"ignix", "list", "theme"}}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{"menu", "namespace", "menu", "namespace", "menu"}
	if diff := cmp.Diff(wantPrompts, p.prompts); diff != "" {
		t.Errorf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, Cancelled) {
		t.Errorf("output missing %q: %q", Cancelled, out)
	}
}

func TestLoop_ErrorsDoNotEndSession(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{errs: map[string]error{
		"init": errors.New("ignix.toml already exists"),
		"list": errors.New("registry unreachable"),
	}}
	p, out := runLoop(t, runner,
		pick(ChoiceInit),
		pick(ChoiceList), namespace(project.Component),
		pick(ChoiceInit),
		pick(ChoiceExit),
	)
	if len(runner.calls) != 3 {
		t.Errorf("got %d invocations, want 3", len(runner.calls))
	}
	if got := strings.Count(out, "Error: ignix.toml already exists"); got != 2 {
		t.Errorf("init error printed %d times, want 2; output %q", got, out)
	}
	if !strings.Contains(out, "Error: registry unreachable") {
		t.Errorf("output missing list error: %q", out)
	}
	if wantMenus := 4; strings.Count(strings.Join(p.prompts, ","), "menu") != wantMenus {
		t.Errorf("menu shown %v, want %d times", p.prompts, wantMenus)
	}
}

func TestLoop_PanicIsContained(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{t: t, answers: []answer{pick(ChoiceWizard), pick(ChoiceExit)}}
	var out bytes.Buffer
	loop := &Loop{
		Prompter: p,
		Runner:   RunnerFunc(func(context.Context, Invocation) error { panic("boom") }),
		Out:      &out,
	}
	loop.Run(context.Background())
	if got := ansi.Strip(out.String()); !strings.Contains(got, "Error: wizard failed: boom") {
		t.Errorf("output %q missing contained panic", got)
	}
}

func TestLoop_SecondaryPromptError(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	_, out := runLoop(t, runner,
		pick(ChoiceAdd), answer{err: errors.New("terminal closed")},
		pick(ChoiceExit),
	)
	if !strings.Contains(out, "Error: terminal closed") {
		t.Errorf("output missing prompt error: %q", out)
	}
	if len(runner.calls) != 0 {
		t.Errorf("unexpected invocations: %v", runner.calls)
	}
}

func TestLoop_MenuPromptErrorShowsMenuAgain(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	p, out := runLoop(t, runner,
		answer{err: errors.New("transient read error")},
		pick(ChoiceInit),
		pick(ChoiceExit),
	)
	if !strings.Contains(out, "Error: menu prompt: transient read error") {
		t.Errorf("output missing menu error: %q", out)
	}
	if diff := cmp.Diff([]string{"menu", "menu", "menu"}, p.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"ignix", "init"}}, runner.calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), Farewell) {
		t.Errorf("session did not end with farewell: %q", out)
	}
}

func TestLoop_RepeatedMenuFailuresEndSession(t *testing.T) {
	t.Parallel()

	fail := answer{err: errors.New("no tty")}
	answers := make([]answer, maxMenuFailures)
	for i := range answers {
		answers[i] = fail
	}
	p, out := runLoop(t, &recordingRunner{}, answers...)
	if len(p.prompts) != maxMenuFailures {
		t.Errorf("menu shown %d times, want %d", len(p.prompts), maxMenuFailures)
	}
	if got := strings.Count(out, "Error: menu prompt: no tty"); got != maxMenuFailures {
		t.Errorf("menu error printed %d times, want %d", got, maxMenuFailures)
	}
	if !strings.Contains(out, Farewell) {
		t.Errorf("farewell missing: %q", out)
	}
}

func TestLoop_MenuFailureCountResetsOnSuccess(t *testing.T) {
	t.Parallel()

	fail := answer{err: errors.New("flaky")}
	var answers []answer
	for i := 0; i < maxMenuFailures-1; i++ {
		answers = append(answers, fail)
	}
	answers = append(answers, pick(ChoiceThemes))
	for i := 0; i < maxMenuFailures-1; i++ {
		answers = append(answers, fail)
	}
	answers = append(answers, pick(ChoiceExit))

	runner := &recordingRunner{}
	p, _ := runLoop(t, runner, answers...)
	if len(p.prompts) != len(answers) {
		t.Errorf("menu shown %d times, want %d", len(p.prompts), len(answers))
	}
	if diff := cmp.Diff([][]string{{"ignix", "themes"}}, runner.calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoop_CancelledContextEndsSession(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedPrompter{t: t}
	var out bytes.Buffer
	loop := &Loop{Prompter: p, Runner: &recordingRunner{}, Out: &out}
	loop.Run(ctx)
	if len(p.prompts) != 0 {
		t.Errorf("prompts shown after cancellation: %v", p.prompts)
	}
}

func TestDispatch_UnknownChoice(t *testing.T) {
	t.Parallel()

	loop := &Loop{Prompter: &scriptedPrompter{t: t}, Runner: &recordingRunner{}, Out: &bytes.Buffer{}}
	if err := loop.dispatch(context.Background(), MenuChoice(42)); err == nil {
		t.Error("dispatch() of unknown choice should fail")
	}
}
