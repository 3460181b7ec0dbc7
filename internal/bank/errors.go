// internal/bank/errors.go
//
// 本檔集中定義交易處理的錯誤與忽略原因。
// 商業規則違反（Ignored）與結構性錯誤（Rejected）都以 sentinel error 表示，
// 由 Outcome.Reason 攜帶，呼叫端以 errors.Is 判斷。

package bank

import "errors"

// 忽略原因：交易合法但違反商業規則，處理繼續進行。
var (
	// ErrDuplicateTx 代表存款或提款的 TxID 已被使用過。
	ErrDuplicateTx = errors.New("duplicate transaction id")

	// ErrAccountLocked 代表帳戶已因 chargeback 凍結，不接受存提款。
	ErrAccountLocked = errors.New("account locked")

	// ErrInsufficientFunds 代表可用餘額不足以提款。
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrUnknownTx 代表爭議類交易參照了不存在的存款。
	ErrUnknownTx = errors.New("referenced deposit not found")

	// ErrClientMismatch 代表參照的存款屬於其他客戶。
	ErrClientMismatch = errors.New("referenced deposit belongs to another client")

	// ErrNotDisputable 代表存款狀態不是 Clean，無法發起爭議。
	ErrNotDisputable = errors.New("deposit is not disputable")

	// ErrNotDisputed 代表存款不在 Disputed 狀態，無法 resolve 或 chargeback。
	ErrNotDisputed = errors.New("deposit is not under dispute")
)

// 結構性錯誤：交易本身格式不合法。
var (
	// ErrUnknownKind 代表無法辨識的交易種類。
	ErrUnknownKind = errors.New("unknown transaction kind")

	// ErrNegativeAmount 代表存款或提款金額為負。
	ErrNegativeAmount = errors.New("negative amount")
)

// ErrInvalidTransition 代表爭議狀態的轉換不合法（例如 Resolved → Disputed）。
var ErrInvalidTransition = errors.New("invalid dispute status transition")
