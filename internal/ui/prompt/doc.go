// Package prompt provides simple interactive prompts.
//
// This package contains standalone interactive prompts for common
// user input scenarios. For more complex multi-step flows, see
// the wizard package.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
//   - [Select]: Single selection from a list
//
// [Menu] adapts these prompts to the interactive menu session.
// All prompts render to stderr.
package prompt
