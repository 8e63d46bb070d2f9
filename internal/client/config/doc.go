// Package config loads the client's runtime settings with three-stage
// precedence: built-in defaults, then an optional JSON file (-c/-config),
// then command-line flags.
package config
