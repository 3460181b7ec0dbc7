// internal/gen/gen.go

// Package gen 產生壓力測試用的交易 CSV。
//
// 同一組 Config（含 Seed）永遠產生相同輸出。產生器會追蹤每位客戶的概略狀態，
// 讓提款、爭議、resolve 與 chargeback 多半參照到合法的存款。
package gen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"payments/internal/bank"
	"payments/internal/money"
)

// MaxClients 為 ClientID 可表示的最大客戶數。
const MaxClients = 65535

// maxUnits 為單筆金額上限 999999.9999 的最小單位數加一。
const maxUnits = 10_000_000_000

var (
	ErrNoClients     = errors.New("clients must be at least 1")
	ErrBadErrorRate  = errors.New("error rate must be between 0 and 100")
	ErrNegativeCount = errors.New("transactions must not be negative")
)

// Config 為產生器參數。
type Config struct {
	Transactions int
	Clients      int
	ErrorRate    int // 損壞列的百分比，0-100
	Seed         uint64
}

// DefaultConfig 回傳預設參數。
func DefaultConfig() Config {
	return Config{Transactions: 10000, Clients: 100, ErrorRate: 0, Seed: 42}
}

// Normalize 檢查參數，並將客戶數限制在 MaxClients 以內。
func (c Config) Normalize() (Config, error) {
	if c.Transactions < 0 {
		return c, ErrNegativeCount
	}
	if c.Clients < 1 {
		return c, ErrNoClients
	}
	if c.ErrorRate < 0 || c.ErrorRate > 100 {
		return c, ErrBadErrorRate
	}
	if c.Clients > MaxClients {
		c.Clients = MaxClients
	}
	return c, nil
}

// clientState 記錄單一客戶的概略狀態。
type clientState struct {
	balance  int64       // 以最小單位計
	clean    []bank.TxID // 可以發起爭議的存款
	disputed []bank.TxID // 爭議中的存款
}

type generator struct {
	cfg     Config
	rng     *rand.Rand
	clients map[bank.ClientID]*clientState
	nextTx  bank.TxID
}

// Generate 依 cfg 將標頭與 cfg.Transactions 列交易寫入 w。
func Generate(w io.Writer, cfg Config) error {
	cfg, err := cfg.Normalize()
	if err != nil {
		return err
	}
	g := &generator{
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		clients: make(map[bank.ClientID]*clientState),
		nextTx:  1,
	}

	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, "type,client,tx,amount\n"); err != nil {
		return err
	}
	for i := 0; i < cfg.Transactions; i++ {
		var line string
		if g.rng.IntN(100) < cfg.ErrorRate {
			line = g.corrupted()
		} else {
			line = g.valid()
		}
		if _, err := io.WriteString(bw, line+"\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (g *generator) valid() string {
	client := bank.ClientID(g.rng.IntN(g.cfg.Clients) + 1)
	st, ok := g.clients[client]
	if !ok {
		st = &clientState{}
		g.clients[client] = st
	}

	switch kind := g.pickKind(st); kind {
	case bank.KindWithdrawal:
		units := g.rng.Int64N(st.balance + 1)
		st.balance -= units
		return g.movement(kind, client, money.FromUnits(units))
	case bank.KindDispute:
		tx := take(g.rng, &st.clean)
		st.disputed = append(st.disputed, tx)
		return reference(kind, client, tx)
	case bank.KindResolve, bank.KindChargeback:
		// resolve 與 chargeback 之後存款都不能再被爭議
		tx := take(g.rng, &st.disputed)
		return reference(kind, client, tx)
	default:
		units := g.rng.Int64N(maxUnits)
		st.balance += units
		st.clean = append(st.clean, g.nextTx)
		return g.movement(bank.KindDeposit, client, money.FromUnits(units))
	}
}

// pickKind 依 65/25/6/2/2 的權重挑選種類；條件不成立時改為存款。
func (g *generator) pickKind(st *clientState) bank.Kind {
	roll := g.rng.IntN(100)
	switch {
	case roll < 65:
		return bank.KindDeposit
	case roll < 90:
		if st.balance > 0 {
			return bank.KindWithdrawal
		}
	case roll < 96:
		if len(st.clean) > 0 {
			return bank.KindDispute
		}
	case roll < 98:
		if len(st.disputed) > 0 {
			return bank.KindResolve
		}
	default:
		if len(st.disputed) > 0 {
			return bank.KindChargeback
		}
	}
	return bank.KindDeposit
}

func (g *generator) movement(kind bank.Kind, client bank.ClientID, amount money.Amount) string {
	tx := g.nextTx
	g.nextTx++
	return fmt.Sprintf("%s,%d,%d,%s", kind, client, tx, amount)
}

func reference(kind bank.Kind, client bank.ClientID, tx bank.TxID) string {
	return fmt.Sprintf("%s,%d,%d,", kind, client, tx)
}

// take 隨機移除並回傳 list 中的一個元素；list 不可為空。
func take(rng *rand.Rand, list *[]bank.TxID) bank.TxID {
	s := *list
	i := rng.IntN(len(s))
	tx := s[i]
	s[i] = s[len(s)-1]
	*list = s[:len(s)-1]
	return tx
}

// corrupted 產生一列讀取端會以 ParseError 略過的資料。
func (g *generator) corrupted() string {
	tx := g.nextTx
	switch g.rng.IntN(7) {
	case 0:
		return fmt.Sprintf("transfer,1,%d,100.0", tx)
	case 1:
		return fmt.Sprintf("deposit,99999,%d,100.0", tx)
	case 2:
		return "deposit,1,9999999999,100.0"
	case 3:
		return fmt.Sprintf("deposit,1,%d,-50.0", tx)
	case 4:
		return fmt.Sprintf("deposit,1,%d,", tx)
	case 5:
		return fmt.Sprintf("deposit,abc,%d,100.0", tx)
	default:
		return "deposit,1,xyz,100.0"
	}
}
