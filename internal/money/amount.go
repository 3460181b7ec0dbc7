// internal/money/amount.go

// Package money 定義帳務使用的定點金額型別 Amount。
// 金額固定保留 4 位小數，內部以 shopspring/decimal 表示，不經過二進位浮點數。
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale 為金額的小數位數。
const Scale int32 = 4

// ErrBadAmount 代表字串無法解析為金額。
var ErrBadAmount = errors.New("invalid amount")

// Amount 為帶號定點金額，永遠正規化為 Scale 位小數。
// 零值即為 0.0000，可直接使用。
type Amount struct {
	d decimal.Decimal
}

// Zero 為 0.0000。
var Zero = Amount{}

// New 將任意精度的 decimal 正規化為 4 位小數。
// 超出的位數以銀行家捨入法（round half to even）處理。
func New(d decimal.Decimal) Amount {
	return Amount{d: d.RoundBank(Scale)}
}

// FromUnits 以最小單位（萬分之一）建立金額，例如 FromUnits(15000) == 1.5000。
func FromUnits(units int64) Amount {
	return Amount{d: decimal.New(units, -Scale)}
}

// Parse 解析十進位字串（允許前後空白，不接受指數表示法），並正規化為 4 位小數。
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty", ErrBadAmount)
	}
	// decimal 接受指數表示法，帳務輸入只允許一般十進位寫法
	if strings.ContainsAny(s, "eE") {
		return Zero, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	return New(d), nil
}

// MustParse 與 Parse 相同，但解析失敗時 panic。僅供常數與測試使用。
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// Cmp 回傳 -1、0、+1。
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

func (a Amount) LessThan(b Amount) bool { return a.d.LessThan(b.d) }

func (a Amount) IsNegative() bool { return a.d.IsNegative() }

func (a Amount) IsZero() bool { return a.d.IsZero() }

// Decimal 回傳底層 decimal 值。
func (a Amount) Decimal() decimal.Decimal { return a.d }

// String 以固定 4 位小數輸出，例如 "1.5000"、"-80.0000"。
func (a Amount) String() string { return a.d.StringFixed(Scale) }

// MarshalJSON 以字串輸出，保留完整的 4 位小數。
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON 同時接受字串與數字兩種表示法。
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAmount, err)
	}
	*a = New(d)
	return nil
}
