package bank

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/salmoriadev/bancodio3.0/internal/ledger"
)

// Settings holds the bank-wide rules applied to newly opened accounts.
type Settings struct {
	Branch   string
	Checking CheckingPolicy
}

// DefaultSettings returns branch 0001 with the default checking policy.
func DefaultSettings() Settings {
	return Settings{Branch: DefaultBranch, Checking: DefaultCheckingPolicy()}
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock sets the time source used for ledger timestamps and the daily window.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithLogger sets the logger operations are reported to.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bank) { b.log = log }
}

// Bank is the explicit context every operation runs against. It is not safe
// for concurrent use.
type Bank struct {
	settings Settings
	dir      *Directory
	now      func() time.Time
	log      zerolog.Logger
}

// New creates an empty Bank. Zero settings fields take their defaults.
func New(settings Settings, opts ...Option) *Bank {
	if settings.Branch == "" {
		settings.Branch = DefaultBranch
	}
	defaults := DefaultCheckingPolicy()
	if settings.Checking.WithdrawalLimit.IsZero() {
		settings.Checking.WithdrawalLimit = defaults.WithdrawalLimit
	}
	if settings.Checking.MaxWithdrawals == 0 {
		settings.Checking.MaxWithdrawals = defaults.MaxWithdrawals
	}
	if settings.Checking.Window == "" {
		settings.Checking.Window = defaults.Window
	}
	b := &Bank{
		settings: settings,
		dir:      NewDirectory(),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Settings returns the rules the bank was created with.
func (b *Bank) Settings() Settings {
	return b.settings
}

// Directory returns the bank's registries.
func (b *Bank) Directory() *Directory {
	return b.dir
}

// Summary describes an account for listings.
type Summary struct {
	Branch    string
	Number    int
	OwnerName string
}

// Statement is the history and current balance of one account.
type Statement struct {
	Account Summary
	Records []ledger.Record
	Balance decimal.Decimal
}

// CreateCustomer registers a new customer. An identifier that is already
// registered fails with ErrDuplicateIdentifier and leaves the existing customer
// untouched.
func (b *Bank) CreateCustomer(identifier, name string, birthDate time.Time, address string) (*Customer, error) {
	identifier = strings.TrimSpace(identifier)
	name = strings.TrimSpace(name)
	if identifier == "" {
		return nil, fmt.Errorf("empty identifier: %w", ErrInvalidCustomer)
	}
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", ErrInvalidCustomer)
	}

	c := &Customer{
		Identifier: identifier,
		Name:       name,
		BirthDate:  birthDate,
		Address:    strings.TrimSpace(address),
	}
	if err := b.dir.AddCustomer(c); err != nil {
		b.log.Info().Str("customer", identifier).Err(err).Msg("customer rejected")
		return nil, err
	}
	b.log.Debug().Str("customer", identifier).Msg("customer created")
	return c, nil
}

// FindCustomer returns the customer with identifier or ErrNotFound.
func (b *Bank) FindCustomer(identifier string) (*Customer, error) {
	c, ok := b.dir.FindCustomer(strings.TrimSpace(identifier))
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", identifier, ErrNotFound)
	}
	return c, nil
}

// NextAccountNumber returns the number to pass to OpenAccount.
func (b *Bank) NextAccountNumber() int {
	return b.dir.NextAccountNumber()
}

// OpenAccount opens an empty checking account numbered number for c.
func (b *Bank) OpenAccount(c *Customer, number int) (Account, error) {
	if c == nil {
		return nil, fmt.Errorf("open account: %w", ErrInvalidCustomer)
	}
	if number <= 0 {
		return nil, fmt.Errorf("account %d: %w", number, ErrInvalidAccountNumber)
	}
	if registered, ok := b.dir.FindCustomer(c.Identifier); !ok || registered != c {
		return nil, fmt.Errorf("customer %s: %w", c.Identifier, ErrNotFound)
	}

	acct := NewCheckingAccount(number, b.settings.Branch, c, b.settings.Checking, b.now)
	if err := b.dir.AddAccount(acct); err != nil {
		return nil, err
	}
	c.AddAccount(acct)

	b.log.Debug().
		Str("customer", c.Identifier).
		Int("account", number).
		Str("branch", acct.Branch()).
		Msg("account opened")
	return acct, nil
}

// Deposit deposits amount into c's primary account.
func (b *Bank) Deposit(c *Customer, amount decimal.Decimal) (ledger.Record, error) {
	return b.onPrimary(c, ledger.NewDeposit(amount))
}

// Withdraw withdraws amount from c's primary account.
func (b *Bank) Withdraw(c *Customer, amount decimal.Decimal) (ledger.Record, error) {
	return b.onPrimary(c, ledger.NewWithdrawal(amount))
}

func (b *Bank) onPrimary(c *Customer, t ledger.Transaction) (ledger.Record, error) {
	acct, err := PrimaryAccountOf(c)
	if err != nil {
		b.log.Info().Str("kind", string(t.Kind)).Err(err).Msg("transaction rejected")
		return ledger.Record{}, err
	}
	return b.Register(acct, t)
}

// Register runs t against acct through its owner, stamping the record with the
// bank clock. acct must have been opened by this bank.
func (b *Bank) Register(acct Account, t ledger.Transaction) (ledger.Record, error) {
	if acct == nil {
		return ledger.Record{}, fmt.Errorf("register %s: %w", strings.ToLower(string(t.Kind)), ErrNotFound)
	}
	if found, ok := b.dir.FindAccount(acct.Number()); !ok || found != acct {
		return ledger.Record{}, fmt.Errorf("account %d: %w", acct.Number(), ErrNotFound)
	}

	owner := acct.Owner()
	rec, err := owner.PerformTransaction(acct, t, b.now())

	var ev *zerolog.Event
	if err != nil {
		ev = b.log.Info().Err(err)
	} else {
		ev = b.log.Debug().Str("record", rec.ID.String())
	}
	ev.Str("customer", owner.Identifier).
		Int("account", acct.Number()).
		Str("kind", string(t.Kind)).
		Str("amount", t.Amount.StringFixed(2)).
		Str("balance", acct.Balance().StringFixed(2))
	if checking, ok := acct.(*CheckingAccount); ok && t.Kind == ledger.KindWithdrawal {
		ev.Int("remaining_withdrawals", checking.RemainingWithdrawals())
	}

	if err != nil {
		ev.Msg("transaction rejected")
		return ledger.Record{}, fmt.Errorf("%s on account %d: %w", strings.ToLower(string(t.Kind)), acct.Number(), err)
	}
	ev.Msg("transaction registered")
	return rec, nil
}

// Statement returns the history of c's primary account.
func (b *Bank) Statement(c *Customer) (Statement, error) {
	acct, err := PrimaryAccountOf(c)
	if err != nil {
		return Statement{}, err
	}
	return StatementOf(acct), nil
}

// StatementOf returns the history of acct.
func StatementOf(acct Account) Statement {
	return Statement{
		Account: summarize(acct),
		Records: acct.Ledger().Records(),
		Balance: acct.Balance(),
	}
}

// ListAccounts returns a summary of every account in opening order.
func (b *Bank) ListAccounts() []Summary {
	accts := b.dir.Accounts()
	out := make([]Summary, 0, len(accts))
	for _, a := range accts {
		out = append(out, summarize(a))
	}
	return out
}

func summarize(a Account) Summary {
	s := Summary{Branch: a.Branch(), Number: a.Number()}
	if owner := a.Owner(); owner != nil {
		s.OwnerName = owner.Name
	}
	return s
}

// IsRejection reports whether err is one of the expected outcomes a caller
// should report and recover from.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount,
		ErrInsufficientFunds,
		ErrLimitExceeded,
		ErrDailyCapExceeded,
		ErrDuplicateIdentifier,
		ErrInvalidCustomer,
		ErrDuplicateAccount,
		ErrInvalidAccountNumber,
		ErrNoAccount,
		ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
