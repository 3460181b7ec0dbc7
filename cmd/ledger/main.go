// cmd/ledger/main.go

// ledger 讀取交易 CSV，依序套用到記憶體中的帳戶，最後將每位客戶的餘額輸出到 stdout。
// 參數 "-" 代表從 stdin 讀取。日誌一律寫到 stderr。
//
//	ledger transactions.csv > accounts.csv
//	txgen -n 100000 | ledger --format table -
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payments/internal/bank"
	"payments/internal/config"
	"payments/internal/logging"
	"payments/internal/pipeline"
	"payments/internal/record"
	"payments/internal/report"
	"payments/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 執行 CLI 並回傳結束碼；致命錯誤印出 "Error: ..." 後回傳 1，不輸出任何報表。
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledger <transactions.csv>",
		Short:         "Apply a CSV stream of transactions and print the final client balances",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			in, closeIn, err := openInput(args[0], stdin)
			if err != nil {
				return err
			}
			defer closeIn()

			return process(cmd.Context(), cfg, in, stdout, logger)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// openInput 開啟輸入檔；"-" 代表 stdin。
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// process 跑完整個輸入後才寫出快照與報表，中途失敗時 stdout 保持空白。
func process(ctx context.Context, cfg config.Config, in io.Reader, stdout io.Writer, logger *zap.Logger) error {
	src, err := record.NewReader(in)
	if err != nil {
		return err
	}

	p := bank.NewProcessor()
	stats, err := pipeline.Run(ctx, src, p, logger)
	if err != nil {
		return err
	}

	if cfg.Snapshot != "" {
		if err := storage.SaveSnapshot(cfg.Snapshot, p.Persist(stats.RunID)); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("snapshot written", zap.String("path", cfg.Snapshot))
	}

	w := bufio.NewWriter(stdout)
	if err := report.Write(w, cfg.Format, p, stats.RunID); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
