package bank

import (
	"time"

	"github.com/salmoriadev/bancodio3.0/internal/ledger"
)

// Customer is a natural person registered with the bank.
type Customer struct {
	Identifier string // tax ID, unique across customers
	Name       string
	BirthDate  time.Time
	Address    string

	accounts []Account
}

// AddAccount appends account to the customer's accounts. No duplicate check is made.
func (c *Customer) AddAccount(account Account) {
	c.accounts = append(c.accounts, account)
}

// Accounts returns the customer's accounts in the order they were added.
func (c *Customer) Accounts() []Account {
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// PerformTransaction registers t against account.
func (c *Customer) PerformTransaction(account Account, t ledger.Transaction, at time.Time) (ledger.Record, error) {
	return ledger.Register(account, t, at)
}
