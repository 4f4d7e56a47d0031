package bank

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salmoriadev/bancodio3.0/internal/ledger"
)

// DefaultBranch is the branch code stamped on every account unless configured otherwise.
const DefaultBranch = "0001"

// Account holds a balance owned by a customer. Deposit and Withdraw are the only
// balance mutators; they do not touch the ledger (see ledger.Register).
type Account interface {
	Number() int
	Branch() string
	Owner() *Customer
	Balance() decimal.Decimal
	Ledger() *ledger.Ledger
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
}

type basicAccount struct {
	number  int
	branch  string
	owner   *Customer
	balance decimal.Decimal
	ledger  *ledger.Ledger
}

func newBasicAccount(number int, branch string, owner *Customer) *basicAccount {
	return &basicAccount{
		number:  number,
		branch:  branch,
		owner:   owner,
		balance: decimal.Zero,
		ledger:  ledger.New(),
	}
}

func (a *basicAccount) Number() int              { return a.number }
func (a *basicAccount) Branch() string           { return a.branch }
func (a *basicAccount) Owner() *Customer         { return a.owner }
func (a *basicAccount) Balance() decimal.Decimal { return a.balance }
func (a *basicAccount) Ledger() *ledger.Ledger   { return a.ledger }

func (a *basicAccount) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *basicAccount) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Window selects which prior withdrawals count toward the checking cap.
type Window string

const (
	// WindowLifetime counts every withdrawal the account ever made.
	WindowLifetime Window = "lifetime"
	// WindowDaily counts withdrawals on the current calendar day only.
	WindowDaily Window = "daily"
)

// CheckingPolicy configures the withdrawal rules of a checking account.
type CheckingPolicy struct {
	WithdrawalLimit decimal.Decimal
	MaxWithdrawals  int
	Window          Window
}

// DefaultCheckingPolicy returns a 500 limit, 3 withdrawals, counted over the account's lifetime.
func DefaultCheckingPolicy() CheckingPolicy {
	return CheckingPolicy{
		WithdrawalLimit: decimal.NewFromInt(500),
		MaxWithdrawals:  3,
		Window:          WindowLifetime,
	}
}

// CheckingAccount wraps a basic account with a per-withdrawal limit and a cap on
// the number of withdrawals.
type CheckingAccount struct {
	*basicAccount
	policy CheckingPolicy
	now    func() time.Time
}

// NewCheckingAccount creates an empty checking account. now is consulted for the
// daily window.
func NewCheckingAccount(number int, branch string, owner *Customer, policy CheckingPolicy, now func() time.Time) *CheckingAccount {
	if now == nil {
		now = time.Now
	}
	return &CheckingAccount{
		basicAccount: newBasicAccount(number, branch, owner),
		policy:       policy,
		now:          now,
	}
}

// Policy returns the account's withdrawal rules.
func (c *CheckingAccount) Policy() CheckingPolicy {
	return c.policy
}

// Withdraw checks, in order: amount validity, the per-withdrawal limit, the
// withdrawal cap, then funds.
func (c *CheckingAccount) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(c.policy.WithdrawalLimit) {
		return ErrLimitExceeded
	}
	if c.PriorWithdrawals() >= c.policy.MaxWithdrawals {
		return ErrDailyCapExceeded
	}
	return c.basicAccount.Withdraw(amount)
}

// PriorWithdrawals returns the withdrawals counted toward the cap under the
// account's window.
func (c *CheckingAccount) PriorWithdrawals() int {
	if c.policy.Window == WindowDaily {
		return c.ledger.CountOn(ledger.KindWithdrawal, c.now())
	}
	return c.ledger.Count(ledger.KindWithdrawal)
}

// RemainingWithdrawals returns how many more withdrawals the cap allows.
func (c *CheckingAccount) RemainingWithdrawals() int {
	n := c.policy.MaxWithdrawals - c.PriorWithdrawals()
	if n < 0 {
		return 0
	}
	return n
}
