package config

import (
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidPackageManagers = []string{"npm", "pnpm", "yarn", "bun"}
	ValidThemeNames      = []string{"none", "ignix", "dracula", "nord", "catppuccin"}
	ValidThemeModes      = []string{"auto", "light", "dark"}
)

// ValidatePackageManager validates a package manager name against ValidPackageManagers.
// Exported for use in CLI flag validation.
func ValidatePackageManager(pm string) error {
	return validateEnum(pm, "package_manager", ValidPackageManagers)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
