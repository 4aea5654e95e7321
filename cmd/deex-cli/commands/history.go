package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/coschain/cobra"
)

// The zero operation-history id, meaning "unbounded" on both ends.
const historyUnbounded = "1.11.0"

const historyDefaultLimit = 20

var HistoryCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "show recent operations for an account, newest first",
		Long:    "history [account] [limit] shows an account's operation history; without an account it uses the logged-in one",
		Example: "history alice 10",
		Args:    cobra.MaximumNArgs(2),
		Run:     accountHistory,
	}
	return cmd
}

func accountHistory(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}

	var accountID string
	if len(args) > 0 {
		acc, err := client.GetAccountByName(context.Background(), args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		accountID = acc.ID
	} else {
		s, ok := sessionFromContext(cmd)
		if !ok {
			return
		}
		acc, err := s.Account(context.Background())
		if err != nil {
			fmt.Println(err)
			return
		}
		accountID = acc.ID
	}

	limit := historyDefaultLimit
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			fmt.Println(fmt.Sprintf("invalid limit %q", args[1]))
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	entries, err := client.GetAccountHistory(context.Background(), accountID, historyUnbounded, limit, historyUnbounded)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("no history")
		return
	}
	for _, entry := range entries {
		fmt.Println(string(entry))
	}
}
