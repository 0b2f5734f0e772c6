package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
)

// Exit codes for wireprobe CLI
const (
	// ExitSuccess indicates the probe completed
	ExitSuccess = 0

	// ExitFailure indicates a write or decode failure during the exchange
	ExitFailure = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates the endpoint refused or dropped the connection
	ExitNetworkError = 4

	// ExitInputClosed indicates stdin closed before the trigger byte arrived
	ExitInputClosed = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitCodeFor maps a probe error to its exit code.
func exitCodeFor(err error) int {
	var (
		connErr   *probe.ConnectionError
		inputErr  *probe.InputClosedError
		writeErr  *probe.WriteError
		decodeErr *probe.DecodeError
	)
	switch {
	case errors.As(err, &connErr):
		return ExitNetworkError
	case errors.As(err, &inputErr):
		return ExitInputClosed
	case errors.As(err, &writeErr), errors.As(err, &decodeErr):
		return ExitFailure
	default:
		return ExitFailure
	}
}
