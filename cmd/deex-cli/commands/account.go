package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coschain/cobra"
)

var AccountCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "account",
	}

	getAccountCmd := &cobra.Command{
		Use:   "get",
		Short: "get account info",
		Args:  cobra.ExactArgs(1),
		Run:   getAccount,
	}

	cmd.AddCommand(getAccountCmd)

	return cmd
}

func getAccount(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	name := args[0]
	acc, err := client.GetAccountByName(context.Background(), name)
	if err != nil {
		fmt.Println(err)
	} else {
		buf, _ := json.MarshalIndent(acc, "", "\t")
		fmt.Println(fmt.Sprintf("GetAccountByName detail: %s", buf))
	}
}
