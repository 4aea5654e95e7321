package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/shopspring/decimal"
)

var AssetCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "asset",
	}

	getAssetCmd := &cobra.Command{
		Use:     "get",
		Short:   "look up an asset by symbol",
		Example: "asset get DX",
		Args:    cobra.ExactArgs(1),
		Run:     getAsset,
	}

	issueAssetCmd := &cobra.Command{
		Use:     "issue",
		Short:   "issue units of an asset you control to an account",
		Example: "asset issue bob PRED 100 [memo]",
		Args:    cobra.MinimumNArgs(3),
		Run:     issueAsset,
	}

	reserveAssetCmd := &cobra.Command{
		Use:     "reserve",
		Short:   "burn units of an asset from your balance",
		Example: "asset reserve PRED 100",
		Args:    cobra.ExactArgs(2),
		Run:     reserveAsset,
	}

	cmd.AddCommand(getAssetCmd)
	cmd.AddCommand(issueAssetCmd)
	cmd.AddCommand(reserveAssetCmd)

	return cmd
}

func getAsset(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	asset, err := client.LookupAssetSymbol(context.Background(), args[0])
	if err != nil {
		fmt.Println(err)
	} else {
		buf, _ := json.MarshalIndent(asset, "", "\t")
		fmt.Println(string(buf))
	}
}

func issueAsset(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		fmt.Println(err)
		return
	}
	memo := ""
	if len(args) > 3 {
		memo = args[3]
	}

	result, err := s.AssetIssue(context.Background(), args[0], args[1], amount, memo)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Result: %v", result.TxID))
	}
}

func reserveAsset(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}

	result, err := s.AssetReserve(context.Background(), args[0], amount)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Result: %v", result.TxID))
	}
}
