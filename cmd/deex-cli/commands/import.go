package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/cmd/deex-cli/commands/utils"
	"github.com/deexnet/deex-go/wallet"
)

var importFeeSymbol string

var ImportCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "login from an encrypted wallet backup file",
		Example: "import alice /path/to/wallet.bin",
		Args:    cobra.ExactArgs(2),
		Run:     importBackup,
	}
	cmd.Flags().StringVarP(&importFeeSymbol, "fee", "f", "", "asset symbol to pay fees in")
	return cmd
}

func importBackup(cmd *cobra.Command, args []string) {
	client, ok := clientFromContext(cmd)
	if !ok {
		return
	}
	r := cmd.Context["preader"]
	preader := r.(utils.PasswordReader)
	o := cmd.Context["session"]
	ref := o.(*SessionRef)

	name := args[0]
	backup, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	password, err := utils.GetPassphrase(preader)
	if err != nil {
		fmt.Println(err)
		return
	}

	s, err := wallet.LoginFromFile(context.Background(), client, backup, password, name, importFeeSymbol)
	if err != nil {
		fmt.Println(err)
		return
	}
	ref.Set(s)
	fmt.Println(fmt.Sprintf("imported backup, logged in as %s", name))
}
