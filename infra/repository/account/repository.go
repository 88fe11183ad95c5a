package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/dto"
	repo "github.com/omarsaleh/bankd/pkg/repository/account"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type repository struct {
	db *gorm.DB
}

// New creates the GORM-backed account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create *dto.AccountCreate) error {
	acct := mapCreateDTOToModel(create)
	if err := r.db.WithContext(ctx).Create(&acct).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Find implements account.Repository.
func (r *repository) Find(ctx context.Context, email string) ([]*dto.AccountRead, error) {
	var accts []Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).Find(&accts).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// FindOne implements account.Repository.
func (r *repository) FindOne(ctx context.Context, email string) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&acct).Error; err != nil {
		return nil, translateError(err)
	}
	return mapModelToDTO(&acct), nil
}

// Update implements account.Repository.
func (r *repository) Update(ctx context.Context, email string, update *dto.AccountUpdate) (*dto.AccountRead, error) {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return r.FindOne(ctx, email)
	}
	tx := r.db.WithContext(ctx).Model(&Account{}).
		Where("email = ?", email).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.FindOne(ctx, email)
}

// Deposit implements account.Repository. The increment runs as a single
// UPDATE so concurrent deposits cannot lose writes.
func (r *repository) Deposit(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	tx := r.db.WithContext(ctx).Model(&Account{}).
		Where("email = ?", email).
		Update("balance", gorm.Expr("balance + ?", amount))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.FindOne(ctx, email)
}

// Withdraw implements account.Repository. The balance check and the
// decrement are one conditional UPDATE, so the balance can never go
// negative, even under concurrent withdrawals on the same account.
func (r *repository) Withdraw(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	tx := r.db.WithContext(ctx).Model(&Account{}).
		Where("email = ? AND balance >= ?", email, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		exists, err := r.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.ErrInsufficientFunds
	}
	return r.FindOne(ctx, email)
}

// All implements account.Repository.
func (r *repository) All(ctx context.Context) ([]*dto.AccountRead, error) {
	var accts []Account
	if err := r.db.WithContext(ctx).Find(&accts).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// ExistsByEmail implements account.Repository.
func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateError maps driver and GORM errors to domain errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrAccountNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return domain.ErrDuplicateEmail
	}
	return err
}

// mapCreateDTOToModel maps AccountCreate DTO to the GORM model.
func mapCreateDTOToModel(create *dto.AccountCreate) Account {
	return Account{
		ID:            create.ID,
		Name:          create.Name,
		Email:         create.Email,
		Password:      create.Password,
		Balance:       0,
		AccountType:   create.AccountType,
		AccountNumber: create.AccountNumber,
	}
}

// mapUpdateDTOToModel maps the non-nil AccountUpdate fields to a map for
// GORM Updates. Only name and password are recognized.
func mapUpdateDTOToModel(update *dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             acct.ID,
		Name:           acct.Name,
		Email:          acct.Email,
		HashedPassword: acct.Password,
		Balance:        domain.Dollars(acct.Balance),
		AccountType:    acct.AccountType,
		AccountNumber:  acct.AccountNumber,
		CreatedAt:      acct.CreatedAt,
		UpdatedAt:      acct.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
