package commands

import (
	"os"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/rpc"
)

var CloseCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "close the deex-cli",
		Run:   closec,
	}
	return cmd
}

func closec(cmd *cobra.Command, args []string) {
	_ = args
	if node, ok := cmd.Context["node"].(*rpc.Node); ok {
		node.Disconnect()
	}
	os.Exit(0)
}
