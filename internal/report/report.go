// internal/report/report.go

// Package report 將最終帳戶狀態輸出為 csv、json 或表格。
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"payments/internal/bank"
	"payments/internal/storage"
)

// Format 為輸出格式。
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ErrUnknownFormat 代表不支援的輸出格式。
var ErrUnknownFormat = errors.New("unknown output format")

// Header 為 csv 與表格的欄位名稱。
var Header = []string{"client", "available", "held", "total", "locked"}

// ParseFormat 解析格式名稱；空字串視為 csv。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write 以指定格式輸出 p 的所有帳戶；runID 只出現在 json 格式的 _meta.note。
func Write(w io.Writer, format Format, p *bank.Processor, runID string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, p.Balances())
	case FormatTable:
		return WriteTable(w, p.Balances())
	case FormatJSON:
		return storage.Encode(w, p.Persist(runID))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func row(b bank.Balance) []string {
	return []string{
		strconv.FormatUint(uint64(b.Client), 10),
		b.Available.String(),
		b.Held.String(),
		b.Total.String(),
		strconv.FormatBool(b.Locked),
	}
}

// WriteCSV 輸出標頭與每位客戶一列，換行為 LF。
func WriteCSV(w io.Writer, rows []bank.Balance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, b := range rows {
		if err := cw.Write(row(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable 輸出 ASCII 表格。
func WriteTable(w io.Writer, rows []bank.Balance) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(Header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, b := range rows {
		table.Append(row(b))
	}
	table.Render()
	return nil
}
