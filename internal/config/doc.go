// Package config loads, normalizes, and validates montage configuration from
// TOML. Configuration covers directory layout, canvas dimensions, the fixed
// interaction-surface geometry, export pacing, and logging.
package config
