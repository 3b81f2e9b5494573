// Package flows provides command-specific wizard implementations.
//
// Each flow is a complete interactive wizard for a specific ignix command.
// Flows use the framework and steps packages to gather options; the
// command performs the work.
//
// Available flows:
//   - [SetupInteractive]: project setup wizard (ignix wizard)
package flows
