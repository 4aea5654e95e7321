package commands

import (
	"fmt"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/wallet"
)

var SuggestBrainKeyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "suggest a random high-entropy passphrase",
		Run:   suggestBrainKey,
	}
	return cmd
}

func suggestBrainKey(cmd *cobra.Command, args []string) {
	phrase, err := wallet.SuggestBrainKey()
	if err != nil {
		fmt.Println("Generate Brain Key Error:", err)
		return
	}
	fmt.Println(phrase)
}
