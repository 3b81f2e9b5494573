// Package cmd runs external programs (npm, pnpm, yarn, bun) for ignix.
//
// Failures carry the program's stderr so that a failed
// "npm install" surfaces npm's own message to the user:
//
//	if err := cmd.RunContext(ctx, root, "npm", "install", "clsx"); err != nil {
//	    return fmt.Errorf("install dependencies: %w", err)
//	}
//
// Every invocation is logged through the context logger when verbose.
package cmd
