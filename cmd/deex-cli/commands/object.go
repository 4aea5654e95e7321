package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
)

var ObjectCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "object",
		Short:   "fetch raw chain objects by id",
		Example: "object 1.7.42 2.1.0",
		Args:    cobra.MinimumNArgs(1),
		Run:     getObjects,
	}
	return cmd
}

func getObjects(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	objects, err := client.GetObjects(context.Background(), args)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, obj := range objects {
		fmt.Println(string(obj))
	}
}
