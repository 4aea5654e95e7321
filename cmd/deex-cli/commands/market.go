package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/prototype"
)

const (
	marketBookDefaultLimit   = 25
	marketOrdersDefaultLimit = 50
	marketHistoryBucket      = 3600
	marketHistoryWindow      = 24 * time.Hour
)

var MarketCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "market",
	}

	tickerCmd := &cobra.Command{
		Use:     "ticker",
		Short:   "show the 24h ticker for a market",
		Example: "market ticker DX USD",
		Args:    cobra.ExactArgs(2),
		Run:     marketTicker,
	}

	bookCmd := &cobra.Command{
		Use:     "book",
		Short:   "show the aggregated order book for a market",
		Example: "market book DX USD 10",
		Args:    cobra.RangeArgs(2, 3),
		Run:     marketBook,
	}

	ordersCmd := &cobra.Command{
		Use:     "orders",
		Short:   "show the raw open orders for a market",
		Example: "market orders DX USD 10",
		Args:    cobra.RangeArgs(2, 3),
		Run:     marketOrders,
	}

	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "show hourly trade buckets for the last 24 hours",
		Example: "market history DX USD",
		Args:    cobra.ExactArgs(2),
		Run:     marketHistory,
	}

	cmd.AddCommand(tickerCmd)
	cmd.AddCommand(bookCmd)
	cmd.AddCommand(ordersCmd)
	cmd.AddCommand(historyCmd)

	return cmd
}

func marketTicker(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	ticker, err := client.GetTicker(context.Background(), args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(ticker))
}

// marketPair resolves the two symbols of a market to their asset ids.
func marketPair(cmd *cobra.Command, base, quote string) (string, string, bool) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return "", "", false
	}
	baseAsset, err := client.LookupAssetSymbol(context.Background(), base)
	if err != nil {
		fmt.Println(err)
		return "", "", false
	}
	quoteAsset, err := client.LookupAssetSymbol(context.Background(), quote)
	if err != nil {
		fmt.Println(err)
		return "", "", false
	}
	return baseAsset.ID, quoteAsset.ID, true
}

func marketLimit(args []string, fallback int) (int, error) {
	if len(args) < 3 {
		return fallback, nil
	}
	n, err := strconv.Atoi(args[2])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", args[2])
	}
	return n, nil
}

func marketBook(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	baseID, quoteID, ok := marketPair(cmd, args[0], args[1])
	if !ok {
		return
	}
	limit, err := marketLimit(args, marketBookDefaultLimit)
	if err != nil {
		fmt.Println(err)
		return
	}
	book, err := client.GetOrderBook(context.Background(), baseID, quoteID, limit)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(book))
}

func marketOrders(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	baseID, quoteID, ok := marketPair(cmd, args[0], args[1])
	if !ok {
		return
	}
	limit, err := marketLimit(args, marketOrdersDefaultLimit)
	if err != nil {
		fmt.Println(err)
		return
	}
	orders, err := client.GetLimitOrders(context.Background(), baseID, quoteID, limit)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("no open orders")
		return
	}
	buf, _ := json.MarshalIndent(orders, "", "\t")
	fmt.Println(string(buf))
}

func marketHistory(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	baseID, quoteID, ok := marketPair(cmd, args[0], args[1])
	if !ok {
		return
	}
	now := time.Now()
	buckets, err := client.GetMarketHistory(context.Background(), quoteID, baseID, marketHistoryBucket,
		prototype.NewTimePointSec(now.Add(-marketHistoryWindow)), prototype.NewTimePointSec(now))
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(buckets) == 0 {
		fmt.Println("no trades")
		return
	}
	for _, bucket := range buckets {
		fmt.Println(string(bucket))
	}
}
