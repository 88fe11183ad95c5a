// Package account defines the persistence contract for account records.
// The account store exclusively owns the persisted representation; callers
// mutate it only through these operations.
package account

import (
	"context"

	"github.com/omarsaleh/bankd/pkg/dto"
)

// Repository is the account store contract.
//
// Domain faults surface as the sentinel errors in pkg/domain/account
// (ErrAccountNotFound, ErrDuplicateEmail, ErrInvalidAmount,
// ErrInsufficientFunds); infrastructure faults propagate as-is.
type Repository interface {
	// Create persists a new account with a zero balance.
	Create(ctx context.Context, create *dto.AccountCreate) error
	// Find returns all accounts matching the email, empty when none match.
	Find(ctx context.Context, email string) ([]*dto.AccountRead, error)
	// FindOne returns the account for the email or ErrAccountNotFound.
	FindOne(ctx context.Context, email string) (*dto.AccountRead, error)
	// Update merges the non-nil fields of update into the record and
	// returns the post-update record.
	Update(ctx context.Context, email string, update *dto.AccountUpdate) (*dto.AccountRead, error)
	// Deposit atomically increments the balance by amount (in cents) and
	// returns the post-update record.
	Deposit(ctx context.Context, email string, amount int64) (*dto.AccountRead, error)
	// Withdraw atomically decrements the balance by amount (in cents) iff
	// the balance covers it, and returns the post-update record. The
	// conditional decrement is a single statement, so concurrent
	// withdrawals can never drive the balance negative.
	Withdraw(ctx context.Context, email string, amount int64) (*dto.AccountRead, error)
	// All returns every account record.
	All(ctx context.Context) ([]*dto.AccountRead, error)
	// ExistsByEmail reports whether an account with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
