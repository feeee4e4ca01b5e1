// Package config loads simulator configuration from an optional YAML file
// and the process environment.
package config
