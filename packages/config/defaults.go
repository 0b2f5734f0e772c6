package config

import "github.com/abdul-hamid-achik/wireprobe/packages/probe"

// OutputPlain writes the decoded response body followed by a newline,
// nothing else. OutputConsole adds a colored summary line; OutputJSON emits
// a machine-readable report.
const (
	OutputPlain   = "plain"
	OutputConsole = "console"
	OutputJSON    = "json"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Host:   probe.DefaultHost,
		Port:   probe.DefaultPort,
		Output: OutputPlain,
	}
}
