package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salmoriadev/bancodio3.0/internal/bank"
	"github.com/salmoriadev/bancodio3.0/internal/id"
	"github.com/salmoriadev/bancodio3.0/internal/ledger"
)

// BirthDateFormat is the layout customers type their birth date in (dd-mm-yyyy).
const BirthDateFormat = "02-01-2006"

const statementTimeFormat = "02-01-2006 15:04:05"

var errQuit = errors.New("quit")

// Shell is the interactive text menu in front of a Bank.
type Shell struct {
	bank *bank.Bank
	name string
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a Shell reading choices from in and writing to out.
func New(b *bank.Bank, name string, in io.Reader, out io.Writer) *Shell {
	return &Shell{bank: b, name: name, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the user quits or input ends.
func (s *Shell) Run() error {
	for {
		choice, err := s.prompt(s.menu())
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case "d":
			err = s.deposit()
		case "s":
			err = s.withdraw()
		case "e":
			err = s.statement()
		case "nu":
			err = s.newCustomer()
		case "nc":
			err = s.newAccount()
		case "lc":
			s.listAccounts()
		case "q":
			err = errQuit
		default:
			s.println("Invalid option. Try again.")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		s.printf("Thank you for using %s. Goodbye!\n", s.name)
		return nil
	}
	return err
}

func (s *Shell) menu() string {
	return fmt.Sprintf(`
================================
Welcome to %s!
Choose an operation:
[d] Deposit
[s] Withdraw
[e] Statement
[nu] New customer
[nc] New account
[lc] List accounts
[q] Quit
================================
=> `, s.name)
}

func (s *Shell) deposit() error {
	return s.transact("Deposit amount: $ ", ledger.KindDeposit)
}

func (s *Shell) withdraw() error {
	return s.transact("Withdrawal amount: $ ", ledger.KindWithdrawal)
}

func (s *Shell) transact(amountPrompt string, kind ledger.Kind) error {
	c, err := s.askCustomer("Customer CPF: ")
	if err != nil || c == nil {
		return err
	}

	raw, err := s.prompt(amountPrompt)
	if err != nil {
		return err
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		s.println("Invalid amount.")
		return nil
	}

	if len(c.Accounts()) > 1 {
		acct, err := s.askAccount(c)
		if err != nil || acct == nil {
			return err
		}
		_, err = s.bank.Register(acct, ledger.Transaction{Kind: kind, Amount: amount})
		s.report(kind, amount, err)
		return nil
	}

	if kind == ledger.KindDeposit {
		_, err = s.bank.Deposit(c, amount)
	} else {
		_, err = s.bank.Withdraw(c, amount)
	}
	s.report(kind, amount, err)
	return nil
}

func (s *Shell) report(kind ledger.Kind, amount decimal.Decimal, err error) {
	if err != nil {
		s.println(Describe(err))
		return
	}
	s.printf("%s of $ %s completed.\n", kind, amount.StringFixed(2))
}

func (s *Shell) statement() error {
	c, err := s.askCustomer("Customer CPF: ")
	if err != nil || c == nil {
		return err
	}

	if len(c.Accounts()) > 1 {
		acct, err := s.askAccount(c)
		if err != nil || acct == nil {
			return err
		}
		s.printStatement(bank.StatementOf(acct))
		return nil
	}

	st, err := s.bank.Statement(c)
	if err != nil {
		s.println(Describe(err))
		return nil
	}
	s.printStatement(st)
	return nil
}

func (s *Shell) printStatement(st bank.Statement) {
	s.println("\n========= STATEMENT =========")
	s.printf("Account: %s (%s)\n", id.FormatAccountRef(st.Account.Branch, st.Account.Number), st.Account.OwnerName)
	if len(st.Records) == 0 {
		s.println("No transactions.")
	}
	for _, r := range st.Records {
		s.printf("%s - %s: $ %s\n", r.Timestamp.Format(statementTimeFormat), r.Kind, r.Amount.StringFixed(2))
	}
	s.printf("Current balance: $ %s\n", st.Balance.StringFixed(2))
	s.println("=============================")
}

func (s *Shell) newCustomer() error {
	identifier, err := s.prompt("CPF: ")
	if err != nil {
		return err
	}
	if _, err := s.bank.FindCustomer(identifier); err == nil {
		s.println("Customer already registered.")
		return nil
	}

	name, err := s.prompt("Full name: ")
	if err != nil {
		return err
	}
	rawBirth, err := s.prompt("Birth date (dd-mm-yyyy): ")
	if err != nil {
		return err
	}
	birth, err := time.Parse(BirthDateFormat, rawBirth)
	if err != nil {
		s.println("Invalid date.")
		return nil
	}
	address, err := s.prompt("Address (street, number - district - city/state): ")
	if err != nil {
		return err
	}

	if _, err := s.bank.CreateCustomer(identifier, name, birth, address); err != nil {
		s.println(Describe(err))
		return nil
	}
	s.println("Customer created.")
	return nil
}

func (s *Shell) newAccount() error {
	identifier, err := s.prompt("Holder CPF: ")
	if err != nil {
		return err
	}
	c, err := s.bank.FindCustomer(identifier)
	if err != nil {
		s.println("Customer not found. Register the customer first.")
		return nil
	}

	acct, err := s.bank.OpenAccount(c, s.bank.NextAccountNumber())
	if err != nil {
		s.println(Describe(err))
		return nil
	}
	s.printf("Account %s created.\n", id.FormatAccountRef(acct.Branch(), acct.Number()))
	return nil
}

func (s *Shell) listAccounts() {
	summaries := s.bank.ListAccounts()
	if len(summaries) == 0 {
		s.println("No accounts.")
		return
	}
	for _, sum := range summaries {
		s.println(strings.Repeat("=", 30))
		s.printf("Branch: %s\nAccount: %d\nHolder: %s\n", sum.Branch, sum.Number, sum.OwnerName)
	}
}

// askCustomer returns a nil customer, after telling the user, when the
// identifier is unknown.
func (s *Shell) askCustomer(label string) (*bank.Customer, error) {
	identifier, err := s.prompt(label)
	if err != nil {
		return nil, err
	}
	c, err := s.bank.FindCustomer(identifier)
	if err != nil {
		s.println("Customer not found.")
		return nil, nil
	}
	return c, nil
}

// askAccount lets a customer with several accounts pick one. A blank answer
// selects the primary account.
func (s *Shell) askAccount(c *bank.Customer) (bank.Account, error) {
	primary, err := bank.PrimaryAccountOf(c)
	if err != nil {
		s.println(Describe(err))
		return nil, nil
	}

	ref, err := s.prompt(fmt.Sprintf("Account (blank for %s): ", id.FormatAccountRef(primary.Branch(), primary.Number())))
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return primary, nil
	}

	branch, number, err := id.ParseAccountRef(ref)
	if err != nil {
		s.println("Invalid account.")
		return nil, nil
	}
	acct, err := bank.AccountOf(c, number)
	if err != nil || (branch != "" && branch != acct.Branch()) {
		s.println("Account not found for this customer.")
		return nil, nil
	}
	return acct, nil
}

func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

// ParseAmount parses a user-typed amount, accepting a comma as the decimal separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	amount, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return amount, nil
}

// Describe turns a bank error into the sentence shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		return "Invalid amount."
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, bank.ErrLimitExceeded):
		return "Amount exceeds the withdrawal limit."
	case errors.Is(err, bank.ErrDailyCapExceeded):
		return "Withdrawal count limit reached."
	case errors.Is(err, bank.ErrDuplicateIdentifier):
		return "Customer already registered."
	case errors.Is(err, bank.ErrInvalidCustomer):
		return "Invalid customer data."
	case errors.Is(err, bank.ErrNoAccount):
		return "Customer has no account."
	case errors.Is(err, bank.ErrNotFound):
		return "Customer not found."
	case bank.IsRejection(err):
		return "Operation rejected: " + err.Error()
	default:
		return "Operation failed: " + err.Error()
	}
}
