package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnknownKind is returned when registering a transaction whose kind is neither
// a deposit nor a withdrawal.
var ErrUnknownKind = errors.New("unknown transaction kind")

// Record is one entry in an account's history.
type Record struct {
	ID        uuid.UUID
	Seq       int // 1-based position in the ledger
	Kind      Kind
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Ledger is the append-only history of one account. Records are only added by
// Register, after the matching balance mutation succeeded.
type Ledger struct {
	records []Record
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of all records in insertion order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Count returns how many records of kind the ledger holds.
func (l *Ledger) Count(kind Kind) int {
	return l.CountFunc(func(r Record) bool { return r.Kind == kind })
}

// CountOn returns how many records of kind fall on the same calendar day as day,
// evaluated in day's location.
func (l *Ledger) CountOn(kind Kind, day time.Time) int {
	y, m, d := day.Date()
	return l.CountFunc(func(r Record) bool {
		ry, rm, rd := r.Timestamp.In(day.Location()).Date()
		return r.Kind == kind && ry == y && rm == m && rd == d
	})
}

// CountFunc returns how many records satisfy keep.
func (l *Ledger) CountFunc(keep func(Record) bool) int {
	n := 0
	for _, r := range l.records {
		if keep(r) {
			n++
		}
	}
	return n
}

// Total returns the sum of the signed effects of all records.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(Transaction{Kind: r.Kind, Amount: r.Amount}.Effect())
	}
	return total
}

func (l *Ledger) append(t Transaction, at time.Time) Record {
	rec := Record{
		ID:        uuid.New(),
		Seq:       len(l.records) + 1,
		Kind:      t.Kind,
		Amount:    t.Amount,
		Timestamp: at,
	}
	l.records = append(l.records, rec)
	return rec
}

// Target is an account that transactions can be registered against.
type Target interface {
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	Ledger() *Ledger
}

// Register applies t to target and, only if the mutation succeeds, appends a
// record stamped with at to the target's ledger. A failed mutation leaves the
// ledger untouched and its error is returned unchanged.
func Register(target Target, t Transaction, at time.Time) (Record, error) {
	var err error
	switch t.Kind {
	case KindDeposit:
		err = target.Deposit(t.Amount)
	case KindWithdrawal:
		err = target.Withdraw(t.Amount)
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)
	}
	if err != nil {
		return Record{}, err
	}
	return target.Ledger().append(t, at), nil
}
