package commands

import (
	"fmt"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/cmd/deex-cli/commands/utils"
	"github.com/deexnet/deex-go/wallet"
)

var GenKeysCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genkeys",
		Short:   "derive the account's key pairs from its password",
		Example: "genkeys alice",
		Args:    cobra.ExactArgs(1),
		Run:     genKeys,
	}
	return cmd
}

func genKeys(cmd *cobra.Command, args []string) {
	r := cmd.Context["preader"]
	preader := r.(utils.PasswordReader)

	name := args[0]
	password, err := utils.GetPassphrase(preader)
	if err != nil {
		fmt.Println(err)
		return
	}

	keys, err := wallet.GenerateKeys(name, password)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, role := range []string{wallet.RoleOwner, wallet.RoleActive, wallet.RoleMemo} {
		fmt.Println(fmt.Sprintf("%-6s public:  %s", role, keys.PubKeys[role].ToWIF()))
		fmt.Println(fmt.Sprintf("%-6s private: %s", role, keys.PrivKeys[role].ToWIF()))
	}
}
