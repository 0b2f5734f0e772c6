package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wireprobe",
	Short: "One-shot raw HTTP request probe.",
	Long: `wireprobe sends a single hand-written HTTP request over a raw TCP
connection and prints whatever the server sends back. It waits for one
byte on stdin before writing, so you can line the request up with a
debugger breakpoint on the server side.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
