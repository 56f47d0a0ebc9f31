// Package config loads and validates skycast's TOML configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/skycast/config.toml, then ./skycast.toml, falling back to
// built-in defaults when no file exists. Paths support ~ expansion and are
// normalized to absolute form before validation.
package config
