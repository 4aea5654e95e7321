package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/shopspring/decimal"
)

var orderFillOrKill bool

var OrderCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "order",
	}

	createOrderCmd := &cobra.Command{
		Use:     "create",
		Short:   "place an order with explicit amounts on both sides",
		Example: "order create DX 20 PRED 10",
		Args:    cobra.ExactArgs(4),
		Run:     createOrder,
	}
	createOrderCmd.Flags().BoolVarP(&orderFillOrKill, "fill-or-kill", "k", false, "cancel unless filled entirely")

	cancelOrderCmd := &cobra.Command{
		Use:     "cancel",
		Short:   "cancel an open order by id",
		Example: "order cancel 1.7.42",
		Args:    cobra.ExactArgs(1),
		Run:     cancelOrder,
	}

	listOrdersCmd := &cobra.Command{
		Use:   "list",
		Short: "list the account's open orders",
		Run:   listOrders,
	}

	getOrderCmd := &cobra.Command{
		Use:     "get",
		Short:   "fetch one order object by id",
		Example: "order get 1.7.42",
		Args:    cobra.ExactArgs(1),
		Run:     getOrder,
	}

	cmd.AddCommand(createOrderCmd)
	cmd.AddCommand(cancelOrderCmd)
	cmd.AddCommand(listOrdersCmd)
	cmd.AddCommand(getOrderCmd)

	return cmd
}

func createOrder(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	sellAmount, err := decimal.NewFromString(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	buyAmount, err := decimal.NewFromString(args[3])
	if err != nil {
		fmt.Println(err)
		return
	}

	order, err := s.LimitOrderCreate(context.Background(), args[0], sellAmount, args[2], buyAmount, orderFillOrKill, nil)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Order: %s", order))
	}
}

func cancelOrder(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	result, err := s.CancelOrder(context.Background(), args[0])
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(fmt.Sprintf("Result: %v", result.TxID))
	}
}

func listOrders(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	orders, err := s.Orders(context.Background())
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

func getOrder(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	order, err := s.GetOrder(context.Background(), args[0])
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(string(order))
	}
}
