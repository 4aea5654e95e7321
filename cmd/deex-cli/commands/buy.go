package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/shopspring/decimal"
)

var buyFillOrKill bool

var BuyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buy",
		Short:   "place a buy order",
		Long:    "buy a quantity of an asset, paying in the base asset at the given price",
		Example: "buy PRED DX 10 2.5",
		Args:    cobra.ExactArgs(4),
		Run:     buy,
	}
	cmd.Flags().BoolVarP(&buyFillOrKill, "fill-or-kill", "k", false, "cancel unless filled entirely")
	return cmd
}

func buy(cmd *cobra.Command, args []string) {
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

	order, err := s.Buy(context.Background(), args[0], args[1], amount, price, buyFillOrKill, nil)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Order: %s", order))
	}
}
