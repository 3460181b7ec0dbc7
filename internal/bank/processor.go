// internal/bank/processor.go

// Package bank 定義核心商業邏輯：依序套用存款、提款、爭議、解除爭議與 chargeback，
// 並維護每位客戶的帳戶與每筆存款的爭議狀態。
//
// Processor 獨佔其 AccountStore、DepositLedger 與 Guard，非併發安全；
// 交易必須依輸入順序逐筆呼叫 Apply。
package bank

import (
	"time"

	"payments/internal/storage"
)

// Processor 為交易狀態機。
type Processor struct {
	accounts *AccountStore
	deposits *DepositLedger
	guard    *Guard
}

// NewProcessor 建立擁有全新空白狀態的 Processor。
func NewProcessor() *Processor {
	return &Processor{
		accounts: NewAccountStore(),
		deposits: NewDepositLedger(),
		guard:    NewGuard(),
	}
}

// Apply 套用單筆交易並回傳結果。
// 商業規則違反一律回傳 Ignored，結構錯誤回傳 Rejected；兩者皆不改變任何狀態。
func (p *Processor) Apply(tx Transaction) Outcome {
	switch tx.Kind {
	case KindDeposit, KindWithdrawal:
		if tx.Amount.IsNegative() {
			return rejected(ErrNegativeAmount)
		}
	case KindDispute, KindResolve, KindChargeback:
	default:
		return rejected(ErrUnknownKind)
	}

	acct := p.accounts.GetOrCreate(tx.Client)

	switch tx.Kind {
	case KindDeposit:
		return p.deposit(acct, tx)
	case KindWithdrawal:
		return p.withdraw(acct, tx)
	case KindDispute:
		return p.dispute(acct, tx)
	case KindResolve:
		return p.resolve(acct, tx)
	default:
		return p.chargeback(acct, tx)
	}
}

func (p *Processor) deposit(acct *Account, tx Transaction) Outcome {
	if p.guard.Seen(tx.Tx) {
		return ignored(ErrDuplicateTx)
	}
	if acct.Locked {
		return ignored(ErrAccountLocked)
	}
	// 先寫入帳本再入帳；帳本與 guard 不一致時拒絕，狀態不變。
	rec := DepositRecord{Tx: tx.Tx, Client: tx.Client, Amount: tx.Amount, Status: StatusClean}
	if err := p.deposits.Insert(rec); err != nil {
		return rejected(err)
	}
	p.guard.Mark(tx.Tx)
	acct.credit(tx.Amount)
	return applied()
}

func (p *Processor) withdraw(acct *Account, tx Transaction) Outcome {
	if p.guard.Seen(tx.Tx) {
		return ignored(ErrDuplicateTx)
	}
	if err := acct.Withdraw(tx.Amount); err != nil {
		return ignored(err)
	}
	p.guard.Mark(tx.Tx)
	return applied()
}

func (p *Processor) dispute(acct *Account, tx Transaction) Outcome {
	rec, reason := p.lookup(tx)
	if reason != nil {
		return ignored(reason)
	}
	if err := p.deposits.SetStatus(rec.Tx, StatusDisputed); err != nil {
		return ignored(ErrNotDisputable)
	}
	acct.Hold(rec.Amount)
	return applied()
}

func (p *Processor) resolve(acct *Account, tx Transaction) Outcome {
	rec, reason := p.lookup(tx)
	if reason != nil {
		return ignored(reason)
	}
	if err := p.deposits.SetStatus(rec.Tx, StatusResolved); err != nil {
		return ignored(ErrNotDisputed)
	}
	acct.Release(rec.Amount)
	return applied()
}

func (p *Processor) chargeback(acct *Account, tx Transaction) Outcome {
	rec, reason := p.lookup(tx)
	if reason != nil {
		return ignored(reason)
	}
	if err := p.deposits.SetStatus(rec.Tx, StatusChargedBack); err != nil {
		return ignored(ErrNotDisputed)
	}
	acct.Chargeback(rec.Amount)
	return applied()
}

// lookup 找出爭議類交易參照的存款，並確認屬於同一位客戶。
func (p *Processor) lookup(tx Transaction) (DepositRecord, error) {
	rec, ok := p.deposits.Get(tx.Tx)
	if !ok {
		return DepositRecord{}, ErrUnknownTx
	}
	if rec.Client != tx.Client {
		return DepositRecord{}, ErrClientMismatch
	}
	return rec, nil
}

// Account 回傳指定客戶帳戶的值拷貝。
func (p *Processor) Account(client ClientID) (Account, bool) {
	return p.accounts.Get(client)
}

// DepositRecord 回傳指定存款紀錄的值拷貝。
func (p *Processor) DepositRecord(tx TxID) (DepositRecord, bool) {
	return p.deposits.Get(tx)
}

// Balances 依 ClientID 排序回傳所有帳戶的輸出列。
func (p *Processor) Balances() []Balance {
	return p.accounts.Snapshot()
}

// Persist 匯出最終帳戶狀態為 storage.Snapshot；runID 記錄於 Meta.Note。
func (p *Processor) Persist(runID string) storage.Snapshot {
	s := storage.Snapshot{
		Meta: storage.Meta{
			Storage:   "json_snapshot",
			Version:   storage.Version,
			Timestamp: time.Now().UTC(),
			Note:      runID,
		},
		Accounts: make([]storage.PersistAccount, 0, p.accounts.Len()),
	}
	for _, b := range p.Balances() {
		s.Accounts = append(s.Accounts, storage.PersistAccount{
			Client:    uint16(b.Client),
			Available: b.Available,
			Held:      b.Held,
			Total:     b.Total,
			Locked:    b.Locked,
		})
	}
	return s
}
