package bank

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmoriadev/bancodio3.0/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// fixedClock returns a clock that can be moved forward by tests.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func newChecking(policy CheckingPolicy, clock *fixedClock) *CheckingAccount {
	owner := &Customer{Identifier: "111", Name: "Ana"}
	acct := NewCheckingAccount(1, DefaultBranch, owner, policy, clock.now)
	owner.AddAccount(acct)
	return acct
}

func register(t *testing.T, acct Account, tx ledger.Transaction, at time.Time) error {
	t.Helper()
	_, err := ledger.Register(acct, tx, at)
	return err
}

func TestBasicAccount_DepositWithdraw(t *testing.T) {
	a := newBasicAccount(1, DefaultBranch, nil)
	assert.True(t, a.Balance().IsZero(), "new accounts start at zero")

	require.NoError(t, a.Deposit(dec("50")))
	require.NoError(t, a.Withdraw(dec("20.25")))
	assert.Equal(t, "29.75", a.Balance().StringFixed(2))

	assert.ErrorIs(t, a.Deposit(dec("0")), ErrInvalidAmount)
	assert.ErrorIs(t, a.Deposit(dec("-1")), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(dec("0")), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(dec("29.76")), ErrInsufficientFunds)
	assert.Equal(t, "29.75", a.Balance().StringFixed(2), "failures must not move the balance")
}

func TestBasicAccount_WithdrawEntireBalance(t *testing.T) {
	a := newBasicAccount(1, DefaultBranch, nil)
	require.NoError(t, a.Deposit(dec("10")))
	require.NoError(t, a.Withdraw(dec("10")))
	assert.True(t, a.Balance().IsZero())
}

func TestBasicAccount_MutatorsDoNotRecord(t *testing.T) {
	a := newBasicAccount(1, DefaultBranch, nil)
	require.NoError(t, a.Deposit(dec("10")))
	require.NoError(t, a.Withdraw(dec("5")))
	assert.Equal(t, 0, a.Ledger().Len(), "only ledger.Register appends records")
}

func TestDefaultCheckingPolicy(t *testing.T) {
	p := DefaultCheckingPolicy()
	assert.True(t, p.WithdrawalLimit.Equal(dec("500")))
	assert.Equal(t, 3, p.MaxWithdrawals)
	assert.Equal(t, WindowLifetime, p.Window)
}

func TestChecking_LimitExceeded(t *testing.T) {
	clock := newClock()
	acct := newChecking(DefaultCheckingPolicy(), clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("1000")), clock.now()))

	err := register(t, acct, ledger.NewWithdrawal(dec("600")), clock.now())
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.True(t, acct.Balance().Equal(dec("1000")))
	assert.Equal(t, 1, acct.Ledger().Len())

	require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("500")), clock.now()), "limit is inclusive")
}

func TestChecking_CapExceeded(t *testing.T) {
	clock := newClock()
	acct := newChecking(DefaultCheckingPolicy(), clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("1000")), clock.now()))

	for i := 0; i < 3; i++ {
		require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("10")), clock.now()), "withdrawal %d", i+1)
	}
	assert.Equal(t, 0, acct.RemainingWithdrawals())

	err := register(t, acct, ledger.NewWithdrawal(dec("10")), clock.now())
	require.ErrorIs(t, err, ErrDailyCapExceeded)
	assert.Equal(t, "970.00", acct.Balance().StringFixed(2))
	assert.Equal(t, 4, acct.Ledger().Len())
}

func TestChecking_CheckOrder(t *testing.T) {
	clock := newClock()
	policy := CheckingPolicy{WithdrawalLimit: dec("100"), MaxWithdrawals: 1, Window: WindowLifetime}
	acct := newChecking(policy, clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("50")), clock.now()))
	require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("10")), clock.now()))

	tests := []struct {
		name   string
		amount string
		want   error
	}{
		{"invalid amount beats cap", "0", ErrInvalidAmount},
		{"negative amount beats cap", "-5", ErrInvalidAmount},
		{"limit beats cap", "150", ErrLimitExceeded},
		{"cap beats funds", "90", ErrDailyCapExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := acct.Withdraw(dec(tt.amount))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestChecking_FundsCheckedLast(t *testing.T) {
	clock := newClock()
	acct := newChecking(DefaultCheckingPolicy(), clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("20")), clock.now()))

	err := register(t, acct, ledger.NewWithdrawal(dec("30")), clock.now())
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 3, acct.RemainingWithdrawals(), "failed withdrawals do not count")
}

func TestChecking_LifetimeWindowSpansDays(t *testing.T) {
	clock := newClock()
	acct := newChecking(DefaultCheckingPolicy(), clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("1000")), clock.now()))

	for i := 0; i < 3; i++ {
		require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("1")), clock.now()))
		clock.t = clock.t.AddDate(0, 0, 1)
	}

	err := register(t, acct, ledger.NewWithdrawal(dec("1")), clock.now())
	assert.ErrorIs(t, err, ErrDailyCapExceeded)
}

func TestChecking_DailyWindowResets(t *testing.T) {
	clock := newClock()
	policy := DefaultCheckingPolicy()
	policy.Window = WindowDaily
	acct := newChecking(policy, clock)
	require.NoError(t, register(t, acct, ledger.NewDeposit(dec("1000")), clock.now()))

	for i := 0; i < 3; i++ {
		require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("1")), clock.now()))
	}
	err := register(t, acct, ledger.NewWithdrawal(dec("1")), clock.now())
	require.ErrorIs(t, err, ErrDailyCapExceeded)

	clock.t = clock.t.AddDate(0, 0, 1)
	assert.Equal(t, 3, acct.RemainingWithdrawals())
	require.NoError(t, register(t, acct, ledger.NewWithdrawal(dec("1")), clock.now()))
}

func TestChecking_BalanceNeverNegative(t *testing.T) {
	clock := newClock()
	policy := CheckingPolicy{WithdrawalLimit: dec("1000"), MaxWithdrawals: 100, Window: WindowLifetime}
	acct := newChecking(policy, clock)

	ops := []ledger.Transaction{
		ledger.NewWithdrawal(dec("1")),
		ledger.NewDeposit(dec("5")),
		ledger.NewWithdrawal(dec("6")),
		ledger.NewWithdrawal(dec("5")),
		ledger.NewWithdrawal(dec("0.01")),
		ledger.NewDeposit(dec("-3")),
		ledger.NewDeposit(dec("2.5")),
		ledger.NewWithdrawal(dec("2.49")),
	}
	for _, tx := range ops {
		before := acct.Balance()
		beforeLen := acct.Ledger().Len()

		err := register(t, acct, tx, clock.now())

		assert.False(t, acct.Balance().IsNegative(), "after %s", tx)
		if err != nil {
			assert.True(t, acct.Balance().Equal(before), "failed %s moved the balance", tx)
			assert.Equal(t, beforeLen, acct.Ledger().Len(), "failed %s was recorded", tx)
		} else {
			assert.True(t, acct.Balance().Equal(before.Add(tx.Effect())), "%s changed balance by the wrong amount", tx)
			assert.Equal(t, beforeLen+1, acct.Ledger().Len(), "%s not recorded once", tx)
		}
	}
	assert.Equal(t, "0.01", acct.Balance().StringFixed(2))
	assert.True(t, acct.Ledger().Total().Equal(acct.Balance()), "ledger must agree with balance")
}

func TestNewCheckingAccount_NilClock(t *testing.T) {
	acct := NewCheckingAccount(1, DefaultBranch, nil, DefaultCheckingPolicy(), nil)
	assert.NotNil(t, acct.now)
	assert.True(t, acct.Policy().WithdrawalLimit.Equal(dec("500")))
	assert.Equal(t, 3, acct.Policy().MaxWithdrawals)
}
