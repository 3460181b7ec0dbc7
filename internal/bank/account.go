// internal/bank/account.go
//
// 本檔定義 Account 結構與其餘額操作，不含任何解析或輸出細節。

package bank

import "payments/internal/money"

// Account represents one client's balances.
// Total 不另外儲存，永遠由 Available + Held 推導。
type Account struct {
	Client    ClientID
	Available money.Amount
	Held      money.Amount
	Locked    bool
}

func (a *Account) Total() money.Amount {
	return a.Available.Add(a.Held)
}

// Deposit 增加可用餘額；凍結帳戶回傳 ErrAccountLocked。
func (a *Account) Deposit(amt money.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	a.credit(amt)
	return nil
}

// credit 增加可用餘額，不檢查凍結；呼叫端須先確認 Locked。
func (a *Account) credit(amt money.Amount) {
	a.Available = a.Available.Add(amt)
}

// Withdraw 扣除可用餘額；失敗時餘額不變。
func (a *Account) Withdraw(amt money.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amt) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amt)
	return nil
}

// Hold 將金額由可用移至保留（爭議開始）。可用餘額可能因此變負。
func (a *Account) Hold(amt money.Amount) {
	a.Available = a.Available.Sub(amt)
	a.Held = a.Held.Add(amt)
}

// Release 將保留金額退回可用（爭議解除）。
func (a *Account) Release(amt money.Amount) {
	a.Held = a.Held.Sub(amt)
	a.Available = a.Available.Add(amt)
}

// Chargeback 移除保留金額並凍結帳戶；Total 減少 amt。
func (a *Account) Chargeback(amt money.Amount) {
	a.Held = a.Held.Sub(amt)
	a.Locked = true
}
