package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/100xmanas/ignix-ui/internal/log"
)

func logCtx(buf *bytes.Buffer, verbose bool) context.Context {
	return log.WithLogger(context.Background(), log.New(buf, verbose, false))
}

func TestRunContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string // empty means success
	}{
		{"success", []string{"sh", "-c", "exit 0"}, ""},
		{"failure without stderr", []string{"sh", "-c", "exit 3"}, "exit status 3"},
		{"failure with stderr", []string{"sh", "-c", "echo 'npm ERR! 404' >&2; exit 1"}, "npm ERR! 404: exit status 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := RunContext(logCtx(&bytes.Buffer{}, false), "", tt.args[0], tt.args[1:]...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("RunContext() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("RunContext() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunContext_KeepsExitStatus(t *testing.T) {
	t.Parallel()

	err := RunContext(logCtx(&bytes.Buffer{}, false), "", "sh", "-c", "echo 'ERR_PNPM_FETCH_404' >&2; exit 7")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("RunContext() = %v, want wrapped *exec.ExitError", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Errorf("ExitCode() = %d, want 7", exitErr.ExitCode())
	}
	if !strings.HasPrefix(err.Error(), "ERR_PNPM_FETCH_404") {
		t.Errorf("error = %q, want stderr first", err)
	}
}

func TestRunContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(logCtx(&bytes.Buffer{}, false))
	cancel()
	if err := RunContext(ctx, "", "sleep", "10"); !errors.Is(err, context.Canceled) {
		t.Errorf("RunContext() = %v, want context.Canceled", err)
	}
}

func TestRunContext_LogsCommandWhenVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := RunContext(logCtx(&buf, true), "", "echo", "clsx"); err != nil {
		t.Fatalf("RunContext() = %v", err)
	}
	if !strings.Contains(buf.String(), "$ echo clsx") {
		t.Errorf("log = %q, want command line", buf.String())
	}
}
