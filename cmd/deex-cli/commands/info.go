package commands

import (
	"fmt"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/rpc"
)

var InfoCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "display the connected chain's info",
		Run:   info,
	}
	return cmd
}

func info(cmd *cobra.Command, args []string) {
	o := cmd.Context["node"]
	node, ok := o.(*rpc.Node)
	if !ok {
		fmt.Println("not connected to a node")
		return
	}
	chainInfo := node.ChainInfo()
	if chainInfo == nil {
		fmt.Println("not connected to a node")
		return
	}
	fmt.Println("Chain ID:      ", chainInfo.ChainID)
	fmt.Println("Core asset:    ", chainInfo.CoreAssetSymbol)
	fmt.Println("Address prefix:", chainInfo.AddressPrefix)
}
