// internal/bank/types.go

package bank

import (
	"fmt"
	"strings"

	"payments/internal/money"
)

// ClientID 識別一位客戶，同時為 Account 的鍵。
type ClientID uint16

// TxID 識別一筆存款或提款；爭議類交易以 TxID 參照原存款。
type TxID uint32

// Kind 為交易種類。
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MovesFunds 回報此種類是否帶有金額（存款、提款）。
func (k Kind) MovesFunds() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind 解析交易種類名稱，不分大小寫並忽略前後空白。
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Transaction 為一筆輸入交易，以 Kind 標記種類。
// Amount 只對存款與提款有意義，其餘種類忽略。
type Transaction struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount money.Amount
}

func Deposit(client ClientID, tx TxID, amount money.Amount) Transaction {
	return Transaction{Kind: KindDeposit, Client: client, Tx: tx, Amount: amount}
}

func Withdrawal(client ClientID, tx TxID, amount money.Amount) Transaction {
	return Transaction{Kind: KindWithdrawal, Client: client, Tx: tx, Amount: amount}
}

func Dispute(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindDispute, Client: client, Tx: tx}
}

func Resolve(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindResolve, Client: client, Tx: tx}
}

func Chargeback(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindChargeback, Client: client, Tx: tx}
}

func (t Transaction) String() string {
	if t.Kind.MovesFunds() {
		return fmt.Sprintf("%s(client=%d, tx=%d, amount=%s)", t.Kind, t.Client, t.Tx, t.Amount)
	}
	return fmt.Sprintf("%s(client=%d, tx=%d)", t.Kind, t.Client, t.Tx)
}
