package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func accountRows(id uuid.UUID, email string, balance int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password", "balance",
		"account_type", "account_number", "created_at", "updated_at",
	}).AddRow(id, "John", email, "hashed", balance, "savings", "0123456789", now, now)
}

func TestRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	create := &dto.AccountCreate{
		ID:            uuid.New(),
		Name:          "John",
		Email:         "john@x.com",
		Password:      "hashed",
		AccountType:   "savings",
		AccountNumber: "0123456789",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(repo.Create(context.Background(), create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), create)
	require.ErrorIs(err, domain.ErrDuplicateEmail)
}

func TestRepository_FindOne(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com", 1).
		WillReturnRows(accountRows(accountID, "john@x.com", 10000))

	acct, err := repo.FindOne(context.Background(), "john@x.com")
	require.NoError(err)
	assert.Equal(accountID, acct.ID)
	assert.Equal("john@x.com", acct.Email)
	assert.InDelta(100.0, acct.Balance, 0.001)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("nobody@x.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err = repo.FindOne(context.Background(), "nobody@x.com")
	require.ErrorIs(err, domain.ErrAccountNotFound)
}

func TestRepository_Find_EmptyResult(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "balance"}))

	accts, err := repo.Find(context.Background(), "nobody@x.com")
	require.NoError(err)
	require.Empty(accts)
}

func TestRepository_Deposit(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)balance \+ (.+)email = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com", 1).
		WillReturnRows(accountRows(accountID, "john@x.com", 10000))

	acct, err := repo.Deposit(context.Background(), "john@x.com", 10000)
	require.NoError(err)
	assert.InDelta(100.0, acct.Balance, 0.001)
}

func TestRepository_Deposit_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)balance \+ (.+)email = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.Deposit(context.Background(), "nobody@x.com", 10000)
	require.ErrorIs(err, domain.ErrAccountNotFound)
}

func TestRepository_Deposit_InvalidAmount(t *testing.T) {
	db, _ := newMockDB(t)
	repo := repository{db: db}

	_, err := repo.Deposit(context.Background(), "john@x.com", 0)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = repo.Deposit(context.Background(), "john@x.com", -100)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRepository_Withdraw(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)balance - (.+)email = (.+)balance >= (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com", 1).
		WillReturnRows(accountRows(accountID, "john@x.com", 5000))

	acct, err := repo.Withdraw(context.Background(), "john@x.com", 5000)
	require.NoError(err)
	assert.InDelta(50.0, acct.Balance, 0.001)
}

func TestRepository_Withdraw_InsufficientFunds(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	// The conditional decrement touches no rows; the account exists, so the
	// failure is insufficient funds.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)balance - (.+)email = (.+)balance >= (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.Withdraw(context.Background(), "john@x.com", 10000)
	require.ErrorIs(err, domain.ErrInsufficientFunds)
}

func TestRepository_Withdraw_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)balance - (.+)email = (.+)balance >= (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := repo.Withdraw(context.Background(), "nobody@x.com", 10000)
	require.ErrorIs(err, domain.ErrAccountNotFound)
}

func TestRepository_Withdraw_InvalidAmount(t *testing.T) {
	db, _ := newMockDB(t)
	repo := repository{db: db}

	_, err := repo.Withdraw(context.Background(), "john@x.com", -1)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRepository_Update(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()
	newName := "Johnny"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)email = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com", 1).
		WillReturnRows(accountRows(accountID, "john@x.com", 0))

	acct, err := repo.Update(context.Background(), "john@x.com", &dto.AccountUpdate{Name: &newName})
	require.NoError(err)
	assert.Equal(accountID, acct.ID)
}

func TestRepository_Update_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	newName := "Johnny"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)email = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.Update(context.Background(), "nobody@x.com", &dto.AccountUpdate{Name: &newName})
	require.ErrorIs(err, domain.ErrAccountNotFound)
}

func TestRepository_All(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(accountRows(uuid.New(), "john@x.com", 100))

	accts, err := repo.All(context.Background())
	require.NoError(err)
	require.Len(accts, 1)
}

func TestRepository_ExistsByEmail(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE email = \$1`).
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "john@x.com")
	require.NoError(err)
	require.True(exists)
}

func TestTranslateError_Passthrough(t *testing.T) {
	infraErr := errors.New("connection refused")
	require.Equal(t, infraErr, translateError(infraErr))
}
