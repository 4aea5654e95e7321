package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/coschain/cobra"
)

var BlockCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "block",
		Short:   "dump a block by number, or the head block when no number is given",
		Example: "block 123456",
		Args:    cobra.MaximumNArgs(1),
		Run:     getBlock,
	}
	return cmd
}

func getBlock(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}

	var blockNum uint64
	if len(args) > 0 {
		num, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Println(fmt.Sprintf("invalid block number %q", args[0]))
			return
		}
		blockNum = num
	} else {
		props, err := client.GetDynamicGlobalProperties(context.Background())
		if err != nil {
			fmt.Println(err)
			return
		}
		var head struct {
			HeadBlockNumber uint64 `json:"head_block_number"`
		}
		if err := json.Unmarshal(props, &head); err != nil {
			fmt.Println(err)
			return
		}
		blockNum = head.HeadBlockNumber
	}

	block, err := client.GetBlock(context.Background(), blockNum)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("Block %d:", blockNum))
	fmt.Println(string(block))
}
