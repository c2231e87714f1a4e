// Package config provides configuration structures and utilities for htrdiff.
// It defines the classifier thresholds, page handling, concurrency and
// report output options, and loads them from an optional YAML or TOML file.
package config
