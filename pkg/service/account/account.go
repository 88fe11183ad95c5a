// Package account orchestrates account registration, lookups, and balance
// mutations on top of the account repository.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/omarsaleh/bankd/pkg/cache"
	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/dto"
	repoaccount "github.com/omarsaleh/bankd/pkg/repository/account"
	"github.com/omarsaleh/bankd/pkg/utils"
)

// Service exposes the account operations the web layer calls into.
type Service struct {
	repo     repoaccount.Repository
	cache    cache.AccountCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New creates an account Service.
func New(
	repo repoaccount.Repository,
	accountCache cache.AccountCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		cache:    accountCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Register creates a new account with a zero balance. The email must not be
// registered already; the unique index backs up this check, so a concurrent
// duplicate registration still surfaces as ErrDuplicateEmail.
func (s *Service) Register(
	ctx context.Context,
	name, email, password string,
) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Register", "email", email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	if exists {
		log.Warn("Register rejected", "error", domain.ErrDuplicateEmail)
		return nil, domain.ErrDuplicateEmail
	}
	acct, err := domain.New(name, email, password)
	if err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, &dto.AccountCreate{
		ID:            acct.ID,
		Name:          acct.Name,
		Email:         acct.Email,
		Password:      acct.Password,
		AccountType:   acct.AccountType,
		AccountNumber: acct.AccountNumber,
	}); err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "accountID", acct.ID)
	return s.repo.FindOne(ctx, email)
}

// Find returns all accounts matching the email, empty when none match.
func (s *Service) Find(ctx context.Context, email string) ([]*dto.AccountRead, error) {
	return s.repo.Find(ctx, email)
}

// FindOne returns the account for the email, reading through the cache.
func (s *Service) FindOne(ctx context.Context, email string) (*dto.AccountRead, error) {
	log := s.logger.With("context", "FindOne", "email", email)
	if cached, err := s.cache.Get(ctx, email); err == nil && cached != nil {
		return cached, nil
	}
	acct, err := s.repo.FindOne(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, email, acct, s.cacheTTL); err != nil {
		log.Warn("cache set failed", "error", err)
	}
	return acct, nil
}

// Update changes the account's name and/or password. A given password is
// hashed before it reaches the store.
func (s *Service) Update(
	ctx context.Context,
	email string,
	name, password *string,
) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Update", "email", email)
	update := &dto.AccountUpdate{Name: name}
	if password != nil {
		hashed, err := utils.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		update.Password = &hashed
	}
	acct, err := s.repo.Update(ctx, email, update)
	if err != nil {
		log.Error("Update failed", "error", err)
		return nil, err
	}
	s.invalidate(ctx, email, acct)
	log.Info("Update successful")
	return acct, nil
}

// Deposit increments the balance by the given amount in cents and returns
// the post-update record.
func (s *Service) Deposit(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Deposit", "email", email, "amount", amount)
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	acct, err := s.repo.Deposit(ctx, email, amount)
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return nil, err
	}
	s.invalidate(ctx, email, acct)
	log.Info("Deposit successful", "balance", acct.Balance)
	return acct, nil
}

// Withdraw decrements the balance by the given amount in cents iff the
// balance covers it, and returns the post-update record.
func (s *Service) Withdraw(ctx context.Context, email string, amount int64) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Withdraw", "email", email, "amount", amount)
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	acct, err := s.repo.Withdraw(ctx, email, amount)
	if err != nil {
		log.Error("Withdraw failed", "error", err)
		return nil, err
	}
	s.invalidate(ctx, email, acct)
	log.Info("Withdraw successful", "balance", acct.Balance)
	return acct, nil
}

// All returns every account record.
func (s *Service) All(ctx context.Context) ([]*dto.AccountRead, error) {
	return s.repo.All(ctx)
}

// invalidate replaces the cached read for email with the post-update record.
func (s *Service) invalidate(ctx context.Context, email string, acct *dto.AccountRead) {
	if err := s.cache.Delete(ctx, email); err != nil {
		s.logger.Warn("cache delete failed", "email", email, "error", err)
		return
	}
	if acct == nil {
		return
	}
	if err := s.cache.Set(ctx, email, acct, s.cacheTTL); err != nil {
		s.logger.Warn("cache set failed", "email", email, "error", err)
	}
}
