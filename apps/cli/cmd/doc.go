// Package cmd implements the wireprobe CLI commands using Cobra.
//
// Available commands:
//   - send: Run the probe against an endpoint
//   - listen: Start a debug listener to probe against
//   - template: Print the request bytes the probe would send
//   - init: Create a .wireprobe.yml config file
//   - version: Show wireprobe version information
package cmd
