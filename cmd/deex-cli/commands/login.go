package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/cmd/deex-cli/commands/utils"
	"github.com/deexnet/deex-go/wallet"
)

var loginFeeSymbol string

var LoginCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "login with account name and password",
		Example: "login alice",
		Args:    cobra.ExactArgs(1),
		Run:     login,
	}
	cmd.Flags().StringVarP(&loginFeeSymbol, "fee", "f", "", "asset symbol to pay fees in")
	return cmd
}

func login(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	r := cmd.Context["preader"]
	preader := r.(utils.PasswordReader)
	o := cmd.Context["session"]
	ref := o.(*SessionRef)

	name := args[0]
	password, err := utils.GetPassphrase(preader)
	if err != nil {
		fmt.Println(err)
		return
	}

	s, err := wallet.Login(context.Background(), client, name, password, loginFeeSymbol)
	if err != nil {
		fmt.Println(err)
		return
	}
	ref.Set(s)
	fmt.Println(fmt.Sprintf("logged in as %s", name))
}
