package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
)

const testIndex = `{
  "components": [
    {"name": "button", "description": "A clickable button", "files": ["button.tsx"], "dependencies": ["clsx"]},
    {"name": "card", "description": "A content card", "files": ["card.tsx"], "dependencies": ["framer-motion"], "registryDependencies": ["button"]},
    {"name": "dialog", "files": ["dialog.tsx", "dialog.types.ts"], "registryDependencies": ["card"]}
  ],
  "themes": [
    {"name": "ignix-dark", "description": "Default dark theme", "files": ["ignix-dark.css"]},
    {"name": "ignix-light", "files": ["ignix-light.css"]}
  ]
}`

// writeTestRegistry creates a local registry directory.
func writeTestRegistry(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.json":                         testIndex,
		"components/utils/utils.ts":          "export function cn() {}\n",
		"components/button/button.tsx":       "export const Button = () => null\n",
		"components/card/card.tsx":           "export const Card = () => null\n",
		"components/dialog/dialog.tsx":       "export const Dialog = () => null\n",
		"components/dialog/dialog.types.ts":  "export type DialogProps = {}\n",
		"themes/ignix-dark/ignix-dark.css":   ":root { --primary: #ff6b35; }\n",
		"themes/ignix-light/ignix-light.css": ":root { --primary: #e8552a; }\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// testEnv is a project directory wired to a local registry.
type testEnv struct {
	ctx      context.Context
	dir      string // project working directory
	registry string
	stdout   *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		dir:      t.TempDir(),
		registry: writeTestRegistry(t),
		stdout:   &bytes.Buffer{},
	}
	cfg := config.Default()
	cfg.Registry = env.registry
	cfg.Timeout = 5 * time.Second

	ctx := config.WithConfig(context.Background(), &cfg)
	ctx = config.WithWorkDir(ctx, env.dir)
	env.ctx = output.WithPrinter(ctx, env.stdout)
	return env
}

// run executes a command line on a fresh command tree and returns stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetContext(e.ctx)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stderr.String(), err
}

// mustRun is run that fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) {
	t.Helper()
	if stderr, err := e.run(t, args...); err != nil {
		t.Fatalf("ignix %v: %v\nstderr: %s", args, err, stderr)
	}
}

func (e *testEnv) project(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.Load(e.dir)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	return p
}

func (e *testEnv) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.dir, filepath.FromSlash(rel)))
	return err == nil
}
