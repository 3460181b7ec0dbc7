// internal/bank/deposits.go

package bank

import (
	"fmt"

	"payments/internal/money"
)

// DisputeStatus 為單筆存款的爭議生命週期。
// 只能單向前進：Clean → Disputed → Resolved | ChargedBack。
type DisputeStatus uint8

const (
	StatusClean DisputeStatus = iota
	StatusDisputed
	StatusResolved
	StatusChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusDisputed:
		return "disputed"
	case StatusResolved:
		return "resolved"
	case StatusChargedBack:
		return "charged_back"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// canMoveTo 回報 s → next 是否為合法轉換。
func (s DisputeStatus) canMoveTo(next DisputeStatus) bool {
	switch s {
	case StatusClean:
		return next == StatusDisputed
	case StatusDisputed:
		return next == StatusResolved || next == StatusChargedBack
	default:
		return false
	}
}

// DepositRecord 為一筆成功入帳的存款，金額建立後不可變。
type DepositRecord struct {
	Tx     TxID
	Client ClientID
	Amount money.Amount
	Status DisputeStatus
}

// DepositLedger 記錄所有成功套用的存款（TxID → record）。
// 紀錄永不刪除，只有 Status 會變動。
type DepositLedger struct {
	records map[TxID]*DepositRecord
}

func NewDepositLedger() *DepositLedger {
	return &DepositLedger{records: make(map[TxID]*DepositRecord)}
}

// Get 回傳紀錄的值拷貝。
func (l *DepositLedger) Get(tx TxID) (DepositRecord, bool) {
	r, ok := l.records[tx]
	if !ok {
		return DepositRecord{}, false
	}
	return *r, true
}

// Insert 新增存款紀錄；TxID 已存在時回傳 ErrDuplicateTx 且不覆寫。
func (l *DepositLedger) Insert(rec DepositRecord) error {
	if _, exists := l.records[rec.Tx]; exists {
		return fmt.Errorf("deposit %d: %w", rec.Tx, ErrDuplicateTx)
	}
	r := rec
	l.records[rec.Tx] = &r
	return nil
}

// SetStatus 推進存款的爭議狀態；不合法的轉換回傳 ErrInvalidTransition。
func (l *DepositLedger) SetStatus(tx TxID, next DisputeStatus) error {
	r, ok := l.records[tx]
	if !ok {
		return fmt.Errorf("deposit %d: %w", tx, ErrUnknownTx)
	}
	if !r.Status.canMoveTo(next) {
		return fmt.Errorf("deposit %d %s -> %s: %w", tx, r.Status, next, ErrInvalidTransition)
	}
	r.Status = next
	return nil
}

func (l *DepositLedger) Len() int { return len(l.records) }
