// Package steps provides reusable step components for wizards.
//
// This package contains implementations of the framework.Step interface
// that are composed into the flows of the flows package:
//
//   - [SingleSelectStep]: pick one option (language, theme)
//   - [TextInputStep]: free text with validation (directories)
//   - [MultiSelectStep]: fuzzy-filtered multi-select (components)
package steps
