package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/shopspring/decimal"
)

var sellFillOrKill bool

var SellCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sell",
		Short:   "place a sell order",
		Long:    "sell a quantity of an asset for the base asset at the given price",
		Example: "sell PRED DX 10 2.5",
		Args:    cobra.ExactArgs(4),
		Run:     sell,
	}
	cmd.Flags().BoolVarP(&sellFillOrKill, "fill-or-kill", "k", false, "cancel unless filled entirely")
	return cmd
}

func sell(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		fmt.Println(err)
		return
	}
	price, err := decimal.NewFromString(args[3])
	if err != nil {
		fmt.Println(err)
		return
	}

	order, err := s.Sell(context.Background(), args[0], args[1], amount, price, sellFillOrKill, nil)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Order: %s", order))
	}
}
