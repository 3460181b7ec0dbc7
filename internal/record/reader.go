// internal/record/reader.go

// Package record 將 CSV 輸入轉為 bank.Transaction 串流。
//
// 標頭層級的問題（缺欄位、空輸入、I/O 失敗）為致命錯誤；
// 單列資料格式錯誤以 *ParseError 回報，呼叫端略過後繼續讀取。
package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"payments/internal/bank"
	"payments/internal/money"
)

// Columns 為必要欄位，順序不拘。
var Columns = []string{"type", "client", "tx", "amount"}

type columns struct {
	kind, client, tx, amount int
}

// Reader 逐列讀取交易；非併發安全。
type Reader struct {
	csv  *csv.Reader
	cols columns
	line int
}

// NewReader 讀取並驗證標頭列。
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	find := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var cols columns
	if cols.kind, err = find("type"); err != nil {
		return nil, err
	}
	if cols.client, err = find("client"); err != nil {
		return nil, err
	}
	if cols.tx, err = find("tx"); err != nil {
		return nil, err
	}
	if cols.amount, err = find("amount"); err != nil {
		return nil, err
	}

	return &Reader{csv: cr, cols: cols, line: 1}, nil
}

// Line 回傳最近一次讀取的列號（標頭為第 1 列）。
func (r *Reader) Line() int { return r.line }

// Next 回傳下一筆交易。
// 讀完時回傳 io.EOF；單列錯誤回傳 *ParseError；其他錯誤為致命錯誤。
func (r *Reader) Next() (bank.Transaction, error) {
	rec, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return bank.Transaction{}, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			r.line = pe.StartLine
			return bank.Transaction{}, &ParseError{Line: r.line, Msg: fmt.Sprintf("csv: %v", pe.Err)}
		}
		return bank.Transaction{}, err
	}
	r.line, _ = r.csv.FieldPos(0)
	return r.parse(rec)
}

func (r *Reader) parse(rec []string) (bank.Transaction, error) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	fail := func(format string, args ...any) (bank.Transaction, error) {
		return bank.Transaction{}, &ParseError{Line: r.line, Msg: fmt.Sprintf(format, args...)}
	}

	kindStr := field(r.cols.kind)
	kind, err := bank.ParseKind(kindStr)
	if err != nil {
		return fail("unknown transaction type %q", kindStr)
	}

	clientStr := field(r.cols.client)
	client, err := strconv.ParseUint(clientStr, 10, 16)
	if err != nil {
		return fail("invalid client id %q", clientStr)
	}

	txStr := field(r.cols.tx)
	tx, err := strconv.ParseUint(txStr, 10, 32)
	if err != nil {
		return fail("invalid transaction id %q", txStr)
	}

	t := bank.Transaction{Kind: kind, Client: bank.ClientID(client), Tx: bank.TxID(tx)}

	// 任何種類只要 amount 欄位非空就必須是合法的非負金額；
	// 爭議類交易的金額不帶入 Transaction，以被參照的存款金額為準。
	amountStr := field(r.cols.amount)
	if amountStr == "" {
		if kind.MovesFunds() {
			return fail("%s requires an amount", kind)
		}
		return t, nil
	}
	amount, err := money.Parse(amountStr)
	if err != nil {
		return fail("invalid amount %q", amountStr)
	}
	if amount.IsNegative() {
		return fail("negative amount %q", amountStr)
	}
	if kind.MovesFunds() {
		t.Amount = amount
	}
	return t, nil
}
