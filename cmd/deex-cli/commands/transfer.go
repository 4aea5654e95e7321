package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/shopspring/decimal"
)

var TransferCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   "transfer an asset to another account",
		Long:    "transfer an asset to another account by name, should login first",
		Example: "transfer bob DX 5.5 [memo]",
		Args:    cobra.MinimumNArgs(3),
		Run:     transfer,
	}
	return cmd
}

func transfer(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	to := args[0]
	symbol := args[1]
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		fmt.Println(err)
		return
	}
	memo := ""
	if len(args) > 3 {
		memo = args[3]
	}

	result, err := s.Transfer(context.Background(), to, symbol, amount, memo)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Result: %v", result.TxID))
	}
}
