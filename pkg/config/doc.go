// Package config handles configuration management for logreader.
// It layers the embedded defaults, an optional TOML file, LOGREADER_*
// environment variables and command-line overrides, in that order.
package config
