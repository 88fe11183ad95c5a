package account

import (
	"testing"

	"github.com/omarsaleh/bankd/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	acct, err := New("John", "john@x.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "John", acct.Name)
	assert.Equal(t, "john@x.com", acct.Email)
	assert.EqualValues(t, 0, acct.Balance)
	assert.Equal(t, DefaultAccountType, acct.AccountType)
	assert.Len(t, acct.AccountNumber, 10)
	assert.NotEqual(t, "password", acct.Password)
	assert.True(t, utils.CheckPasswordHash("password", acct.Password))
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		acctName string
		email    string
		password string
	}{
		{"empty name", "", "john@x.com", "password"},
		{"empty email", "John", "", "password"},
		{"malformed email", "John", "not-an-email", "password"},
		{"empty password", "John", "john@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.acctName, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestCents(t *testing.T) {
	assert.EqualValues(t, 10000, Cents(100))
	assert.EqualValues(t, 1050, Cents(10.50))
	assert.EqualValues(t, 1, Cents(0.01))
	assert.EqualValues(t, -500, Cents(-5))
}

func TestDollars(t *testing.T) {
	assert.EqualValues(t, 100.0, Dollars(10000))
	assert.EqualValues(t, 10.5, Dollars(1050))
	assert.EqualValues(t, 0.0, Dollars(0))
}
