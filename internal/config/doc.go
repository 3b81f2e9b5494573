// Package config handles loading and validation of the global ignix configuration.
//
// Configuration is read from ~/.config/ignix/config.toml. The file location
// can be moved with IGNIX_CONFIG; IGNIX_REGISTRY overrides the registry.
//
// # Configuration Sources (highest priority first)
//
//   - IGNIX_REGISTRY env var: registry base URL or absolute directory
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - registry: where index.json and component sources live (http(s) URL or absolute path)
//   - package_manager: force npm, pnpm, yarn or bun instead of lockfile detection
//   - timeout: registry request timeout as a Go duration (default "30s")
//   - [theme]: terminal palette used by prompts and tables
//
// Per-project settings (component directories, installed items) live in
// ignix.toml next to package.json and are handled by the project package.
package config
