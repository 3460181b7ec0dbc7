// internal/bank/accounts.go

package bank

import (
	"sort"

	"payments/internal/money"
)

// Balance 為單一帳戶在某時點的輸出列。
type Balance struct {
	Client    ClientID
	Available money.Amount
	Held      money.Amount
	Total     money.Amount
	Locked    bool
}

// AccountStore 以 ClientID 索引所有帳戶；帳戶於首次被參照時建立，永不刪除。
type AccountStore struct {
	accts map[ClientID]*Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accts: make(map[ClientID]*Account)}
}

// GetOrCreate 回傳帳戶的內部指標，不存在時以零餘額建立。
// 指標只應在處理單筆交易期間使用。
func (s *AccountStore) GetOrCreate(client ClientID) *Account {
	a, ok := s.accts[client]
	if !ok {
		a = &Account{Client: client}
		s.accts[client] = a
	}
	return a
}

// Get 回傳帳戶的值拷貝。
func (s *AccountStore) Get(client ClientID) (Account, bool) {
	a, ok := s.accts[client]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

func (s *AccountStore) Len() int { return len(s.accts) }

// Snapshot 依 ClientID 遞增排序輸出所有帳戶，同一份狀態每次輸出順序相同。
func (s *AccountStore) Snapshot() []Balance {
	out := make([]Balance, 0, len(s.accts))
	for _, a := range s.accts {
		out = append(out, Balance{
			Client:    a.Client,
			Available: a.Available,
			Held:      a.Held,
			Total:     a.Total(),
			Locked:    a.Locked,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}
