// Package config loads the daybook client configuration from environment
// variables, command-line flags, and an optional JSON file, merging the
// sources with first-non-zero-wins priority and validating the result.
package config
