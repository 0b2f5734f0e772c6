package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abdul-hamid-achik/wireprobe/packages/config"
	"github.com/abdul-hamid-achik/wireprobe/packages/output"
	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Run the probe against an endpoint",
	Long: `Open one TCP connection, wait for a byte on stdin, write the fixed
request, read up to 1024 bytes of the reply and print it.

The stdin wait is a rendezvous gate: press enter (or pipe a byte in) once
the server side is ready. Use --no-wait for scripted runs.

Examples:
  wireprobe send
  wireprobe send --host 10.0.0.5 --port 9000
  echo | wireprobe send --output json
  wireprobe send --no-wait --output console -v`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          sendCommand,
}

var (
	hostFlag    string
	portFlag    int
	configFlag  string
	outputFlag  string
	verboseFlag bool
	noColorFlag bool
	noWaitFlag  bool
)

func init() {
	sendCmd.Flags().StringVarP(&hostFlag, "host", "H", getEnvString("WIREPROBE_HOST", ""), "Endpoint host (env: WIREPROBE_HOST)")
	sendCmd.Flags().IntVarP(&portFlag, "port", "p", getEnvInt("WIREPROBE_PORT", 0), "Endpoint port (env: WIREPROBE_PORT)")
	sendCmd.Flags().StringVar(&configFlag, "config", getEnvString("WIREPROBE_CONFIG", ""), "Path to config file (env: WIREPROBE_CONFIG)")
	sendCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output format: plain, console, json")
	sendCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose console output")
	sendCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("WIREPROBE_NO_COLOR", false), "Disable colored output (env: WIREPROBE_NO_COLOR)")
	sendCmd.Flags().BoolVar(&noWaitFlag, "no-wait", false, "Skip the stdin rendezvous gate")
}

func sendCommand(cmd *cobra.Command, args []string) error {
	cfg, err := sendConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wireprobe: %v\n", err)
		os.Exit(ExitConfigError)
	}

	var opts []probe.Option
	if cfg.GetNoWait() {
		opts = append(opts, probe.WithoutTrigger())
	} else {
		opts = append(opts, probe.WithTrigger(cmd.InOrStdin()))
	}

	runner := probe.NewRunner(cfg.Host, cfg.Port, opts...)
	outcome, err := runner.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wireprobe: %v\n", err)
		os.Exit(exitCodeFor(err))
	}

	switch cfg.Output {
	case config.OutputJSON:
		if err := output.NewJSONFormatter(cmd.OutOrStdout()).FormatOutcome(outcome); err != nil {
			fmt.Fprintf(os.Stderr, "wireprobe: %v\n", err)
			os.Exit(ExitFailure)
		}
	case config.OutputConsole:
		f := output.NewConsoleFormatter(
			output.WithWriter(cmd.OutOrStdout()),
			output.WithVerbose(cfg.GetVerbose()),
			output.WithNoColor(cfg.GetNoColor()),
		)
		f.FormatOutcome(outcome)
	case config.OutputPlain:
		output.NewPlainFormatter(cmd.OutOrStdout()).FormatOutcome(outcome)
	default:
		fmt.Fprintf(os.Stderr, "wireprobe: unknown output format: %s\n", cfg.Output)
		os.Exit(ExitUsageError)
	}

	return nil
}

// sendConfig loads the config file and layers flag overrides on top.
func sendConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	override := &config.Config{
		Host:   hostFlag,
		Port:   portFlag,
		Output: outputFlag,
	}
	if cmd.Flags().Changed("verbose") {
		override.Verbose = config.BoolPtr(verboseFlag)
	}
	if cmd.Flags().Changed("no-color") {
		override.NoColor = config.BoolPtr(noColorFlag)
	} else if noColorFlag {
		// flag default came from WIREPROBE_NO_COLOR
		override.NoColor = config.BoolPtr(true)
	}
	if cmd.Flags().Changed("no-wait") {
		override.NoWait = config.BoolPtr(noWaitFlag)
	}

	return cfg.Merge(override), nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
