package bank

import "errors"

// Expected, recoverable outcomes of bank operations. Callers compare with errors.Is.
var (
	ErrInvalidAmount     = errors.New("invalid amount: must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLimitExceeded     = errors.New("amount exceeds the withdrawal limit")
	ErrDailyCapExceeded  = errors.New("withdrawal count cap reached")

	ErrDuplicateIdentifier = errors.New("customer identifier already registered")
	ErrInvalidCustomer     = errors.New("invalid customer")

	ErrDuplicateAccount     = errors.New("account number already in use")
	ErrInvalidAccountNumber = errors.New("invalid account number")

	ErrNoAccount = errors.New("customer has no account")
	ErrNotFound  = errors.New("not found")
)
