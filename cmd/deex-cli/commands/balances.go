package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
)

var BalancesCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "balances",
		Short:   "show the account's balances for the given asset symbols",
		Example: "balances DX USD",
		Args:    cobra.MinimumNArgs(1),
		Run:     balances,
	}
	return cmd
}

func balances(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	list, err := s.Balances(context.Background(), args...)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range list {
		fmt.Println(fmt.Sprintf("%s: %s", b.Asset.Symbol, b.Amount.String()))
	}
}
