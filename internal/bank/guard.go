// internal/bank/guard.go

package bank

// Guard 記錄已套用的存款與提款 TxID，兩種交易共用同一個鍵空間。
// 只有成功套用的交易才會被記錄。
type Guard struct {
	seen map[TxID]struct{}
}

func NewGuard() *Guard {
	return &Guard{seen: make(map[TxID]struct{})}
}

func (g *Guard) Seen(tx TxID) bool {
	_, ok := g.seen[tx]
	return ok
}

// Mark 記錄 tx；若已記錄過則回傳 false。
func (g *Guard) Mark(tx TxID) bool {
	if g.Seen(tx) {
		return false
	}
	g.seen[tx] = struct{}{}
	return true
}
