package commands

import (
	"fmt"

	"github.com/coschain/cobra"
)

var LogoutCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "drop the current session",
		Run:   logout,
	}
	return cmd
}

func logout(cmd *cobra.Command, args []string) {
	_ = args
	o := cmd.Context["session"]
	ref, ok := o.(*SessionRef)
	if !ok {
		return
	}
	ref.Clear()
	fmt.Println("logged out")
}
