// Package testutils provides in-memory test doubles shared across test
// packages.
package testutils

import (
	"context"
	"sync"
	"time"

	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/dto"
	repoaccount "github.com/omarsaleh/bankd/pkg/repository/account"
)

type record struct {
	create    dto.AccountCreate
	balance   int64 // cents
	createdAt time.Time
	updatedAt time.Time
}

// FakeAccountRepository is an in-memory account store honoring the same
// contract as the GORM repository, including the atomic conditional
// decrement on withdraw. All operations are safe for concurrent use.
type FakeAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*record
}

// NewFakeAccountRepository creates an empty in-memory account store.
func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{accounts: make(map[string]*record)}
}

func (f *FakeAccountRepository) Create(ctx context.Context, create *dto.AccountCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[create.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	f.accounts[create.Email] = &record{create: *create, createdAt: now, updatedAt: now}
	return nil
}

func (f *FakeAccountRepository) Find(ctx context.Context, email string) ([]*dto.AccountRead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*dto.AccountRead{}
	if rec, ok := f.accounts[email]; ok {
		result = append(result, toRead(rec))
	}
	return result, nil
}

func (f *FakeAccountRepository) FindOne(ctx context.Context, email string) (*dto.AccountRead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return toRead(rec), nil
}

func (f *FakeAccountRepository) Update(ctx context.Context, email string, update *dto.AccountUpdate) (*dto.AccountRead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if update.Name != nil {
		rec.create.Name = *update.Name
	}
	if update.Password != nil {
		rec.create.Password = *update.Password
	}
	rec.updatedAt = time.Now().UTC()
	return toRead(rec), nil
}

func (f *FakeAccountRepository) Deposit(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	rec.balance += amount
	rec.updatedAt = time.Now().UTC()
	return toRead(rec), nil
}

func (f *FakeAccountRepository) Withdraw(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if rec.balance < amount {
		return nil, domain.ErrInsufficientFunds
	}
	rec.balance -= amount
	rec.updatedAt = time.Now().UTC()
	return toRead(rec), nil
}

func (f *FakeAccountRepository) All(ctx context.Context) ([]*dto.AccountRead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*dto.AccountRead, 0, len(f.accounts))
	for _, rec := range f.accounts {
		result = append(result, toRead(rec))
	}
	return result, nil
}

func (f *FakeAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[email]
	return ok, nil
}

func toRead(rec *record) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             rec.create.ID,
		Name:           rec.create.Name,
		Email:          rec.create.Email,
		HashedPassword: rec.create.Password,
		Balance:        domain.Dollars(rec.balance),
		AccountType:    rec.create.AccountType,
		AccountNumber:  rec.create.AccountNumber,
		CreatedAt:      rec.createdAt,
		UpdatedAt:      rec.updatedAt,
	}
}

var _ repoaccount.Repository = (*FakeAccountRepository)(nil)
