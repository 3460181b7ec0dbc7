// internal/config/config.go

// Package config 由命令列旗標與 LEDGER_* 環境變數組合出執行設定。
// 優先順序：旗標 > 環境變數 > 預設值。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"payments/internal/logging"
	"payments/internal/report"
)

const envPrefix = "LEDGER"

// 設定鍵，同時也是旗標名稱。
const (
	KeyFormat   = "format"
	KeySnapshot = "snapshot"
	KeyLogLevel = "log-level"
	KeyEnv      = "env"
)

// Config 為 ledger CLI 的執行設定。
type Config struct {
	Format   report.Format
	Snapshot string
	Logging  logging.Config
}

// RegisterFlags 在 fs 上註冊所有旗標。
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyFormat, "f", string(report.FormatCSV), "output format: csv, json or table")
	fs.String(KeySnapshot, "", "also write the final JSON snapshot to this path")
	fs.String(KeyLogLevel, "", "log level (debug, info, warn, error); defaults by environment")
	fs.String(KeyEnv, string(logging.EnvironmentProduction), "environment: production, development or local")
}

// Load 讀取 fs 與環境變數並驗證。
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", err)
	}

	format, err := report.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Config{
		Format:   format,
		Snapshot: strings.TrimSpace(v.GetString(KeySnapshot)),
		Logging: logging.Config{
			Environment: logging.Environment(strings.ToLower(strings.TrimSpace(v.GetString(KeyEnv)))),
			Level:       v.GetString(KeyLogLevel),
		},
	}, nil
}
