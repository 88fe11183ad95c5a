// Package auth verifies credentials and issues signed session tokens.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/omarsaleh/bankd/config"
	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/dto"
	repoaccount "github.com/omarsaleh/bankd/pkg/repository/account"
	"github.com/omarsaleh/bankd/pkg/utils"
)

// Service authenticates accounts and issues JWT session tokens carrying the
// account's email claim.
type Service struct {
	repo   repoaccount.Repository
	cfg    config.JwtConfig
	logger *slog.Logger
}

// New creates an auth Service.
func New(
	repo repoaccount.Repository,
	cfg config.JwtConfig,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// Login looks up the account by email and compares the password against the
// stored hash. An unknown email yields ErrAccountNotFound; a credential
// mismatch yields ErrUnauthorized.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	acct, err := s.repo.FindOne(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Always check a password hash to avoid timing attacks
			const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Warn("Login failed", "error", err)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, acct.HashedPassword) {
		log.Warn("Login failed", "error", domain.ErrUnauthorized)
		return nil, domain.ErrUnauthorized
	}
	log.Info("Login successful", "accountID", acct.ID)
	return acct, nil
}

// GenerateToken issues an HS256 JWT for the account with the configured
// expiry window.
func (s *Service) GenerateToken(acct *dto.AccountRead) (string, error) {
	log := s.logger.With("context", "GenerateToken", "accountID", acct.ID)
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = acct.Email
	claims["account_id"] = acct.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful")
	return tokenString, nil
}

// CurrentEmail extracts the email claim from a verified token.
func CurrentEmail(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}
