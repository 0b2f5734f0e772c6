package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the request bytes the probe would send",
	Long: `Print the fixed request payload that "wireprobe send" writes to the
connection. With --escape the bytes are quoted so CRLF line endings are
visible.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tpl := probe.DefaultTemplate()
		if escapeFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", tpl.String())
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), tpl.String())
	},
}

var escapeFlag bool

func init() {
	templateCmd.Flags().BoolVar(&escapeFlag, "escape", false, "Quote the payload so control characters are visible")
}
