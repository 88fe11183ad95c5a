package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents an account record in the database. Balance is stored
// in integer cents and is kept non-negative by the conditional decrement in
// Withdraw.
type Account struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Name          string    `gorm:"not null;size:100"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	Password      string    `gorm:"not null"`
	Balance       int64     `gorm:"not null"`
	AccountType   string    `gorm:"size:20;default:'savings'"`
	AccountNumber string    `gorm:"size:20"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
