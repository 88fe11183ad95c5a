package account

import "errors"

var (
	// ErrAccountNotFound is returned when no account matches the given email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidAmount is returned for deposit or withdrawal amounts <= 0.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized is returned on credential mismatch during login.
	ErrUnauthorized = errors.New("invalid email or password")
)
