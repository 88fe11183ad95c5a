package account

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/omarsaleh/bankd/pkg/utils"
)

// DefaultAccountType is assigned to every account created through
// registration.
const DefaultAccountType = "savings"

// Account represents a user's persisted identity and balance record.
type Account struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Balance       int64     `json:"balance"`
	AccountType   string    `json:"account_type"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created"`
	UpdatedAt     time.Time `json:"updated"`
}

// New creates an Account with a hashed password, a zero balance, and a
// generated account number.
func New(name, email, password string) (*Account, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("email is not valid")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		Password:      hashed,
		Balance:       0,
		AccountType:   DefaultAccountType,
		AccountNumber: utils.GenerateAccountNumber(),
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// Cents converts a decimal money amount to integer cents, the unit every
// balance is stored in.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Dollars converts integer cents back to a decimal amount.
func Dollars(cents int64) float64 {
	return float64(cents) / 100.0
}
