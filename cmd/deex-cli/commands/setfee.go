package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
)

var SetFeeCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setfee",
		Short:   "switch the asset operations pay their fee in",
		Example: "setfee USD",
		Args:    cobra.ExactArgs(1),
		Run:     setFee,
	}
	return cmd
}

func setFee(cmd *cobra.Command, args []string) {
	s, ok := sessionFromContext(cmd)
	if !ok {
		return
	}
	if err := s.SetFeeAsset(context.Background(), args[0]); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("fee asset set to %s", args[0]))
}
