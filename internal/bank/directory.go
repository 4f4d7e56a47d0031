package bank

import "fmt"

// Directory provides in-memory lookup over customers and accounts.
type Directory struct {
	byIdentifier map[string]*Customer
	accounts     []Account
	byNumber     map[int]Account
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		byIdentifier: make(map[string]*Customer),
		byNumber:     make(map[int]Account),
	}
}

// AddCustomer registers c. Identifiers must be unique.
func (d *Directory) AddCustomer(c *Customer) error {
	if _, ok := d.byIdentifier[c.Identifier]; ok {
		return fmt.Errorf("customer %s: %w", c.Identifier, ErrDuplicateIdentifier)
	}
	d.byIdentifier[c.Identifier] = c
	return nil
}

// FindCustomer returns the customer with the exact identifier.
func (d *Directory) FindCustomer(identifier string) (*Customer, bool) {
	c, ok := d.byIdentifier[identifier]
	return c, ok
}

// AddAccount registers a. Account numbers must be unique.
func (d *Directory) AddAccount(a Account) error {
	if _, ok := d.byNumber[a.Number()]; ok {
		return fmt.Errorf("account %d: %w", a.Number(), ErrDuplicateAccount)
	}
	d.accounts = append(d.accounts, a)
	d.byNumber[a.Number()] = a
	return nil
}

// FindAccount returns the account with the given number.
func (d *Directory) FindAccount(number int) (Account, bool) {
	a, ok := d.byNumber[number]
	return a, ok
}

// Accounts returns all accounts in opening order.
func (d *Directory) Accounts() []Account {
	out := make([]Account, len(d.accounts))
	copy(out, d.accounts)
	return out
}

// NextAccountNumber returns the number the next opened account should take.
func (d *Directory) NextAccountNumber() int {
	return len(d.accounts) + 1
}

// PrimaryAccountOf returns the first account c opened.
func PrimaryAccountOf(c *Customer) (Account, error) {
	if c == nil {
		return nil, fmt.Errorf("primary account: %w", ErrNotFound)
	}
	if len(c.accounts) == 0 {
		return nil, fmt.Errorf("customer %s: %w", c.Identifier, ErrNoAccount)
	}
	return c.accounts[0], nil
}

// AccountOf returns the account of c with the given number.
func AccountOf(c *Customer, number int) (Account, error) {
	if c == nil {
		return nil, fmt.Errorf("account %d: %w", number, ErrNotFound)
	}
	if len(c.accounts) == 0 {
		return nil, fmt.Errorf("customer %s: %w", c.Identifier, ErrNoAccount)
	}
	for _, a := range c.accounts {
		if a.Number() == number {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %d of customer %s: %w", number, c.Identifier, ErrNotFound)
}
