// Package config handles configuration management for winregi.
// It layers the embedded defaults, an optional user file (TOML or YAML) and
// WINREGI_ environment variables, and decodes the result into Config.
package config
