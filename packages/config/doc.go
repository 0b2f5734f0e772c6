// Package config handles configuration loading for wireprobe.
//
// It provides functionality for:
//   - Loading configuration from .wireprobe.yml files
//   - Default endpoint and output values
//   - Merging file configuration with CLI flag overrides
package config
