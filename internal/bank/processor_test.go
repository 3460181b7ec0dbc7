// internal/bank/processor_test.go
//
// Processor 的單元與情境測試。
// 涵蓋五種交易規則、冪等性、順序敏感、爭議狀態單調性、凍結規則，
// 以及每筆交易後 total == available + held 的恆等式。
package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acct 取出帳戶狀態，不存在時立即讓測試失敗。
func acct(t *testing.T, p *Processor, client ClientID) Account {
	t.Helper()
	a, ok := p.Account(client)
	require.True(t, ok, "client %d should exist", client)
	return a
}

// requireBalances 比對 available、held、total 與 locked。
func requireBalances(t *testing.T, p *Processor, client ClientID, available, held, total string, locked bool) {
	t.Helper()
	a := acct(t, p, client)
	assert.Equal(t, available, a.Available.String(), "available")
	assert.Equal(t, held, a.Held.String(), "held")
	assert.Equal(t, total, a.Total().String(), "total")
	assert.Equal(t, locked, a.Locked, "locked")
}

func mustApply(t *testing.T, p *Processor, tx Transaction) {
	t.Helper()
	o := p.Apply(tx)
	require.Equal(t, Applied, o.Status, "%s: %s", tx, o)
}

func requireIgnored(t *testing.T, p *Processor, tx Transaction, reason error) {
	t.Helper()
	o := p.Apply(tx)
	require.Equal(t, Ignored, o.Status, "%s: %s", tx, o)
	assert.ErrorIs(t, o.Reason, reason)
}

// TestScenarios 依序執行情境 A 到 D（同一位客戶、延續狀態）。
func TestScenarios(t *testing.T) {
	p := NewProcessor()

	// A：兩筆存款
	mustApply(t, p, Deposit(1, 1, amt("1.0")))
	mustApply(t, p, Deposit(1, 2, amt("2.0")))
	requireBalances(t, p, 1, "3.0000", "0.0000", "3.0000", false)

	// B：爭議 tx 1
	mustApply(t, p, Dispute(1, 1))
	requireBalances(t, p, 1, "2.0000", "1.0000", "3.0000", false)

	// C：chargeback tx 1
	mustApply(t, p, Chargeback(1, 1))
	requireBalances(t, p, 1, "2.0000", "0.0000", "2.0000", true)

	// D：凍結後提款被忽略
	requireIgnored(t, p, Withdrawal(1, 3, amt("0.5")), ErrAccountLocked)
	requireBalances(t, p, 1, "2.0000", "0.0000", "2.0000", true)
}

// TestScenarioWithdrawWithoutDeposit 對應情境 E：帳戶仍會建立，餘額為 0。
func TestScenarioWithdrawWithoutDeposit(t *testing.T) {
	p := NewProcessor()
	requireIgnored(t, p, Withdrawal(2, 10, amt("5.0")), ErrInsufficientFunds)
	requireBalances(t, p, 2, "0.0000", "0.0000", "0.0000", false)
}

// TestScenarioSanctionedNegative 對應情境 F：提款後 chargeback 造成負餘額。
func TestScenarioSanctionedNegative(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(3, 4, amt("5.0")))
	mustApply(t, p, Withdrawal(3, 5, amt("5.0")))
	mustApply(t, p, Dispute(3, 4))
	requireBalances(t, p, 3, "-5.0000", "5.0000", "0.0000", false)
	mustApply(t, p, Chargeback(3, 4))
	requireBalances(t, p, 3, "-5.0000", "0.0000", "-5.0000", true)
}

func TestDisputeResolveCycle(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	mustApply(t, p, Dispute(1, 1))
	requireBalances(t, p, 1, "0.0000", "100.0000", "100.0000", false)
	mustApply(t, p, Resolve(1, 1))
	requireBalances(t, p, 1, "100.0000", "0.0000", "100.0000", false)

	rec, ok := p.DepositRecord(1)
	require.True(t, ok)
	assert.Equal(t, StatusResolved, rec.Status)
}

// TestIdempotentTxIDs 驗證同一 TxID 重複出現時只生效一次，且存提款共用鍵空間。
func TestIdempotentTxIDs(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	requireIgnored(t, p, Deposit(1, 1, amt("100")), ErrDuplicateTx)
	requireBalances(t, p, 1, "100.0000", "0.0000", "100.0000", false)

	mustApply(t, p, Withdrawal(1, 2, amt("30")))
	requireIgnored(t, p, Withdrawal(1, 2, amt("30")), ErrDuplicateTx)
	requireBalances(t, p, 1, "70.0000", "0.0000", "70.0000", false)

	// 存款 TxID 不可再被提款使用，反之亦然
	requireIgnored(t, p, Withdrawal(1, 1, amt("10")), ErrDuplicateTx)
	requireIgnored(t, p, Deposit(1, 2, amt("10")), ErrDuplicateTx)
	// 其他客戶也不可重用
	requireIgnored(t, p, Deposit(2, 1, amt("10")), ErrDuplicateTx)
	requireBalances(t, p, 1, "70.0000", "0.0000", "70.0000", false)
	requireBalances(t, p, 2, "0.0000", "0.0000", "0.0000", false)
}

// TestFailedMovementDoesNotConsumeTxID 驗證被忽略的存提款不會佔用 TxID。
func TestFailedMovementDoesNotConsumeTxID(t *testing.T) {
	p := NewProcessor()
	requireIgnored(t, p, Withdrawal(1, 1, amt("10")), ErrInsufficientFunds)
	mustApply(t, p, Deposit(1, 1, amt("10")))
	requireBalances(t, p, 1, "10.0000", "0.0000", "10.0000", false)
}

// TestOrderSensitivity 驗證爭議類交易先於存款出現時被忽略，不會事後補套用。
func TestOrderSensitivity(t *testing.T) {
	p := NewProcessor()
	requireIgnored(t, p, Dispute(1, 1), ErrUnknownTx)
	requireIgnored(t, p, Resolve(1, 1), ErrUnknownTx)
	requireIgnored(t, p, Chargeback(1, 1), ErrUnknownTx)
	mustApply(t, p, Deposit(1, 1, amt("10")))
	requireBalances(t, p, 1, "10.0000", "0.0000", "10.0000", false)

	rec, _ := p.DepositRecord(1)
	assert.Equal(t, StatusClean, rec.Status)
}

func TestDisputeRules(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	mustApply(t, p, Withdrawal(1, 2, amt("50")))

	requireIgnored(t, p, Dispute(1, 999), ErrUnknownTx)
	// 提款不會建立存款紀錄，因此無法爭議
	requireIgnored(t, p, Dispute(1, 2), ErrUnknownTx)
	requireIgnored(t, p, Dispute(2, 1), ErrClientMismatch)

	mustApply(t, p, Dispute(1, 1))
	requireIgnored(t, p, Dispute(1, 1), ErrNotDisputable)
	requireBalances(t, p, 1, "-50.0000", "100.0000", "50.0000", false)
}

func TestResolveAndChargebackRequireDispute(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	requireIgnored(t, p, Resolve(1, 1), ErrNotDisputed)
	requireIgnored(t, p, Chargeback(1, 1), ErrNotDisputed)

	mustApply(t, p, Dispute(1, 1))
	requireIgnored(t, p, Resolve(2, 1), ErrClientMismatch)
	requireIgnored(t, p, Chargeback(2, 1), ErrClientMismatch)
	requireBalances(t, p, 1, "0.0000", "100.0000", "100.0000", false)

	mustApply(t, p, Resolve(1, 1))
	requireIgnored(t, p, Resolve(1, 1), ErrNotDisputed)
	requireIgnored(t, p, Chargeback(1, 1), ErrNotDisputed)
	requireBalances(t, p, 1, "100.0000", "0.0000", "100.0000", false)
}

// TestMonotonicDisputeStatus 驗證 Resolved 或 ChargedBack 後不可再爭議。
func TestMonotonicDisputeStatus(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	mustApply(t, p, Deposit(1, 2, amt("100")))

	mustApply(t, p, Dispute(1, 1))
	mustApply(t, p, Resolve(1, 1))
	requireIgnored(t, p, Dispute(1, 1), ErrNotDisputable)

	mustApply(t, p, Dispute(1, 2))
	mustApply(t, p, Chargeback(1, 2))
	requireIgnored(t, p, Dispute(1, 2), ErrNotDisputable)
	requireIgnored(t, p, Chargeback(1, 2), ErrNotDisputed)
	requireIgnored(t, p, Resolve(1, 2), ErrNotDisputed)

	requireBalances(t, p, 1, "100.0000", "0.0000", "100.0000", true)
}

// TestLockedAccountAllowsDisputeFlow 驗證凍結只擋存提款，爭議流程仍可進行。
func TestLockedAccountAllowsDisputeFlow(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	mustApply(t, p, Deposit(1, 2, amt("50")))
	mustApply(t, p, Deposit(1, 3, amt("25")))
	mustApply(t, p, Dispute(1, 1))
	mustApply(t, p, Chargeback(1, 1))

	requireIgnored(t, p, Deposit(1, 4, amt("50")), ErrAccountLocked)
	requireIgnored(t, p, Withdrawal(1, 5, amt("10")), ErrAccountLocked)

	mustApply(t, p, Dispute(1, 2))
	mustApply(t, p, Resolve(1, 2))
	mustApply(t, p, Dispute(1, 3))
	mustApply(t, p, Chargeback(1, 3))
	requireBalances(t, p, 1, "50.0000", "0.0000", "50.0000", true)

	// 被忽略的存款不佔用 TxID，但帳戶仍凍結
	requireIgnored(t, p, Deposit(1, 4, amt("50")), ErrAccountLocked)
}

func TestRejectedStructuralErrors(t *testing.T) {
	p := NewProcessor()
	neg := amt("-5")

	o := p.Apply(Deposit(1, 1, neg))
	assert.Equal(t, Rejected, o.Status)
	assert.ErrorIs(t, o.Reason, ErrNegativeAmount)

	o = p.Apply(Withdrawal(1, 2, neg))
	assert.Equal(t, Rejected, o.Status)

	o = p.Apply(Transaction{Kind: Kind(42), Client: 1, Tx: 3})
	assert.Equal(t, Rejected, o.Status)
	assert.ErrorIs(t, o.Reason, ErrUnknownKind)

	_, ok := p.Account(1)
	assert.False(t, ok, "rejected records must not create accounts")

	// 被拒絕的 TxID 仍可使用
	mustApply(t, p, Deposit(1, 1, amt("1")))
}

// TestDepositRejectedWhenLedgerAlreadyHasTx 驗證帳本已有該 TxID 而 guard 未標記時，
// 存款被拒絕且餘額、guard 都不變。
func TestDepositRejectedWhenLedgerAlreadyHasTx(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.deposits.Insert(DepositRecord{Tx: 7, Client: 1, Amount: amt("5"), Status: StatusClean}))

	o := p.Apply(Deposit(1, 7, amt("10")))
	require.Equal(t, Rejected, o.Status, o.String())
	assert.ErrorIs(t, o.Reason, ErrDuplicateTx)
	assert.False(t, p.guard.Seen(7))
	requireBalances(t, p, 1, "0.0000", "0.0000", "0.0000", false)

	rec, ok := p.DepositRecord(7)
	require.True(t, ok)
	assert.Equal(t, "5.0000", rec.Amount.String())
}

func TestZeroAmounts(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("0")))
	mustApply(t, p, Withdrawal(1, 2, amt("0")))
	requireBalances(t, p, 1, "0.0000", "0.0000", "0.0000", false)
}

// TestAccountCreatedOnAnyReference 驗證任何種類的交易都會建立帳戶。
func TestAccountCreatedOnAnyReference(t *testing.T) {
	p := NewProcessor()
	requireIgnored(t, p, Dispute(9, 1), ErrUnknownTx)
	requireBalances(t, p, 9, "0.0000", "0.0000", "0.0000", false)
}

func TestClientsAreIsolated(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(1, 1, amt("100")))
	mustApply(t, p, Deposit(2, 2, amt("200")))
	mustApply(t, p, Withdrawal(1, 3, amt("50")))
	mustApply(t, p, Dispute(2, 2))
	mustApply(t, p, Chargeback(2, 2))

	requireBalances(t, p, 1, "50.0000", "0.0000", "50.0000", false)
	requireBalances(t, p, 2, "0.0000", "0.0000", "0.0000", true)
}

// TestTotalEqualsAvailablePlusHeldAfterEveryStep 以一段混合序列驗證每一步之後恆等式都成立。
func TestTotalEqualsAvailablePlusHeldAfterEveryStep(t *testing.T) {
	p := NewProcessor()
	steps := []Transaction{
		Deposit(1, 1, amt("10.1234")),
		Deposit(2, 2, amt("3")),
		Withdrawal(1, 3, amt("4.0001")),
		Dispute(1, 1),
		Withdrawal(1, 4, amt("1")),
		Dispute(2, 2),
		Resolve(2, 2),
		Chargeback(1, 1),
		Deposit(1, 5, amt("1")),
		Dispute(2, 2),
		Withdrawal(2, 6, amt("3.5")),
		Withdrawal(2, 7, amt("2.9999")),
	}
	for _, tx := range steps {
		p.Apply(tx)
		for _, b := range p.Balances() {
			assert.Equal(t, b.Available.Add(b.Held).String(), b.Total.String(), "after %s", tx)
		}
	}
	requireBalances(t, p, 1, "-4.0001", "0.0000", "-4.0001", true)
	requireBalances(t, p, 2, "0.0001", "0.0000", "0.0001", false)
}

func TestBalancesSortedAndPersist(t *testing.T) {
	p := NewProcessor()
	mustApply(t, p, Deposit(5, 1, amt("1")))
	mustApply(t, p, Deposit(2, 2, amt("2")))
	mustApply(t, p, Deposit(9, 3, amt("3")))

	bs := p.Balances()
	require.Len(t, bs, 3)
	assert.Equal(t, ClientID(2), bs[0].Client)
	assert.Equal(t, ClientID(5), bs[1].Client)
	assert.Equal(t, ClientID(9), bs[2].Client)

	snap := p.Persist("run-42")
	assert.Equal(t, "json_snapshot", snap.Meta.Storage)
	assert.Equal(t, "run-42", snap.Meta.Note)
	assert.False(t, snap.Meta.Timestamp.IsZero())
	require.Len(t, snap.Accounts, 3)
	assert.Equal(t, uint16(9), snap.Accounts[2].Client)
	assert.Equal(t, "3.0000", snap.Accounts[2].Total.String())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", Outcome{Status: Applied}.String())
	assert.Equal(t, "ignored: account locked", Outcome{Status: Ignored, Reason: ErrAccountLocked}.String())
}
