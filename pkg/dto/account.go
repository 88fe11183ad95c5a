// Package dto holds the data transfer objects exchanged between the
// repositories and the service layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountCreate carries the fields needed to persist a new account.
type AccountCreate struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Password      string // bcrypt hash
	AccountType   string
	AccountNumber string
}

// AccountRead is the read-optimized projection of an account record.
type AccountRead struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Balance        float64   `json:"balance"`
	AccountType    string    `json:"account_type"`
	AccountNumber  string    `json:"account_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountUpdate lists the mutable account fields. Only non-nil fields are
// written, and nothing outside this struct can reach the record.
type AccountUpdate struct {
	Name     *string
	Password *string // bcrypt hash
}
