// cmd/txgen/main.go

// txgen 產生壓力測試用的交易 CSV 並寫到 stdout，可直接接到 ledger：
//
//	txgen -n 100000 -c 500 -e 2 | ledger -
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"payments/internal/gen"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cfg := gen.DefaultConfig()
	cmd := &cobra.Command{
		Use:           "txgen",
		Short:         "Generate a reproducible transaction CSV for load testing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.Generate(stdout, cfg)
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&cfg.Transactions, "transactions", "n", cfg.Transactions, "number of transactions")
	fs.IntVarP(&cfg.Clients, "clients", "c", cfg.Clients, "number of unique clients (max 65535)")
	fs.IntVarP(&cfg.ErrorRate, "error-rate", "e", cfg.ErrorRate, "percentage of corrupted lines, 0-100")
	fs.Uint64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "random seed")
	return cmd
}
