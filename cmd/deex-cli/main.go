package main

import (
	"context"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/cmd/deex-cli/commands"
	"github.com/deexnet/deex-go/cmd/deex-cli/commands/utils"
	"github.com/deexnet/deex-go/config"
	"github.com/deexnet/deex-go/logging"
	"github.com/deexnet/deex-go/rpc"
)

var rootCmd = &cobra.Command{
	Use:   "deex-cli",
	Short: "deex-cli is an exchange account client",
}

func pcFromCommands(parent readline.PrefixCompleterInterface, c *cobra.Command) {
	pc := readline.PcItem(c.Use)
	parent.SetChildren(append(parent.GetChildren(), pc))
	for _, child := range c.Commands() {
		pcFromCommands(pc, child)
	}
}

func inheritContext(c *cobra.Command) {
	for _, child := range c.Commands() {
		child.Context = c.Context
		inheritContext(child)
	}
}

func runShell() {
	completer := readline.NewPrefixCompleter()
	for _, child := range rootCmd.Commands() {
		pcFromCommands(completer, child)
	}
	shell, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		AutoComplete: completer,
		EOFPrompt:    "exit",
	})
	if err != nil {
		panic(err)
	}
	defer shell.Close()

shell_loop:
	for {
		l, err := shell.Readline()
		if err != nil {
			break shell_loop
		}
		cmd, flags, err := rootCmd.Find(strings.Fields(l))
		if err != nil {
			shell.Terminal.Write([]byte(err.Error()))
		}
		cmd.ParseFlags(flags)
		cmd.Run(cmd, flags)
	}

}

func addCommands() {
	rootCmd.AddCommand(commands.LoginCmd())
	rootCmd.AddCommand(commands.ImportCmd())
	rootCmd.AddCommand(commands.LogoutCmd())
	rootCmd.AddCommand(commands.GenKeysCmd())
	rootCmd.AddCommand(commands.SuggestBrainKeyCmd())
	rootCmd.AddCommand(commands.TransferCmd())
	rootCmd.AddCommand(commands.BuyCmd())
	rootCmd.AddCommand(commands.SellCmd())
	rootCmd.AddCommand(commands.OrderCmd())
	rootCmd.AddCommand(commands.BalancesCmd())
	rootCmd.AddCommand(commands.HistoryCmd())
	rootCmd.AddCommand(commands.BlockCmd())
	rootCmd.AddCommand(commands.MarketCmd())
	rootCmd.AddCommand(commands.AccountCmd())
	rootCmd.AddCommand(commands.AssetCmd())
	rootCmd.AddCommand(commands.ObjectCmd())
	rootCmd.AddCommand(commands.SetFeeCmd())
	rootCmd.AddCommand(commands.InfoCmd())
	rootCmd.AddCommand(commands.CloseCmd())
}

func init() {
	addCommands()
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		runShell()
	}
}

func main() {
	cfg, err := config.Load(config.DefaultDataDir())
	if err != nil {
		logging.Log().Fatal(err)
	}
	logging.Init(cfg.DataDir, cfg.Log.Level, uint32(cfg.Log.MaxAgeDays))

	node := rpc.NewNode(cfg.NodeURL, cfg.Autoreconnect)
	client, err := node.Connect(context.Background())
	if err != nil {
		logging.Log().Fatalf("cannot reach node %s: %v", cfg.NodeURL, err)
	}
	defer node.Disconnect()

	cached, err := chain.WithCache(client)
	if err != nil {
		logging.Log().Fatal(err)
	}

	rootCmd.SetContext("node", node)
	rootCmd.SetContext("rpcclient", cached)
	rootCmd.SetContext("session", &commands.SessionRef{})
	rootCmd.SetContext("preader", utils.MyPasswordReader{})
	rootCmd.SetContext("config", cfg)

	inheritContext(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
