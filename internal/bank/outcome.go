// internal/bank/outcome.go

package bank

import "fmt"

// Status 描述一筆交易套用後的結果類別。
type Status uint8

const (
	// Applied 代表交易已改變狀態。
	Applied Status = iota
	// Ignored 代表交易違反商業規則，狀態未變，處理繼續。
	Ignored
	// Rejected 代表交易結構不合法（負數金額、未知種類），狀態未變。
	Rejected
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Outcome 為 Processor.Apply 的回傳值；Applied 時 Reason 為 nil。
type Outcome struct {
	Status Status
	Reason error
}

func (o Outcome) String() string {
	if o.Reason == nil {
		return o.Status.String()
	}
	return fmt.Sprintf("%s: %v", o.Status, o.Reason)
}

func applied() Outcome           { return Outcome{Status: Applied} }
func ignored(why error) Outcome  { return Outcome{Status: Ignored, Reason: why} }
func rejected(why error) Outcome { return Outcome{Status: Rejected, Reason: why} }
