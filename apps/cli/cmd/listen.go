package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/wireprobe/packages/listen"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Start a debug listener to probe against",
	Long: `Start a local TCP listener that logs whatever each connection sends
and replies with a canned HTTP response. Handy as a stand-in target when
the real server is not running.

Examples:
  wireprobe listen
  wireprobe listen --addr 127.0.0.1:9000 --verbose
  wireprobe listen --response-file reply.http`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          listenCommand,
}

var (
	listenAddrFlag    string
	responseFileFlag  string
	listenVerboseFlag bool
)

func init() {
	listenCmd.Flags().StringVar(&listenAddrFlag, "addr", "127.0.0.1:8100", "Listen address")
	listenCmd.Flags().StringVar(&responseFileFlag, "response-file", "", "File whose bytes are sent as the reply")
	listenCmd.Flags().BoolVarP(&listenVerboseFlag, "verbose", "v", false, "Log received bytes")
}

func listenCommand(cmd *cobra.Command, args []string) error {
	opts := []listen.Option{
		listen.WithAddr(listenAddrFlag),
		listen.WithVerbose(listenVerboseFlag),
	}
	if responseFileFlag != "" {
		response, err := os.ReadFile(responseFileFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wireprobe: %v\n", err)
			os.Exit(ExitConfigError)
		}
		opts = append(opts, listen.WithResponse(response))
	}

	srv := listen.NewServer(opts...)
	if err := srv.Listen(); err != nil {
		fmt.Fprintf(os.Stderr, "wireprobe: %v\n", err)
		os.Exit(ExitNetworkError)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "listening on %s (ctrl-c to stop)\n", srv.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	select {
	case <-ctx.Done():
		_ = srv.Close()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
