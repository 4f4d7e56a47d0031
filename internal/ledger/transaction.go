package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies the monetary movement a transaction represents.
type Kind string

const (
	KindDeposit    Kind = "Deposit"
	KindWithdrawal Kind = "Withdrawal"
)

// Sign returns +1 for deposits, -1 for withdrawals and 0 for anything else.
func (k Kind) Sign() int {
	switch k {
	case KindDeposit:
		return 1
	case KindWithdrawal:
		return -1
	default:
		return 0
	}
}

// Transaction is a requested deposit or withdrawal. The zero value is not valid.
type Transaction struct {
	Kind   Kind
	Amount decimal.Decimal
}

// NewDeposit returns a deposit transaction for amount.
func NewDeposit(amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindDeposit, Amount: amount}
}

// NewWithdrawal returns a withdrawal transaction for amount.
func NewWithdrawal(amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindWithdrawal, Amount: amount}
}

// Effect returns the signed change the transaction applies to a balance.
func (t Transaction) Effect() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(int64(t.Kind.Sign())))
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Amount.StringFixed(2))
}
