// Package config loads, normalizes, and validates castedit configuration.
//
// Settings live in a TOML file (default ~/.config/castedit/config.toml) split
// into sections for paths, editor behaviour, the numeric adjustment
// controller, logging, and the edit journal. Missing files are not an error:
// Load falls back to Default and still expands paths and applies environment
// fallbacks such as CASTEDIT_SAVE_FILE.
//
// Always obtain settings through this package so callers receive expanded
// paths, canonical log formats, and descriptive validation errors.
package config
