// Package cache defines the read-cache contract for account lookups.
package cache

import (
	"context"
	"time"

	"github.com/omarsaleh/bankd/pkg/dto"
)

// AccountCache caches account reads keyed by email. A nil result with a nil
// error is a cache miss.
type AccountCache interface {
	Get(ctx context.Context, email string) (*dto.AccountRead, error)
	Set(ctx context.Context, email string, acct *dto.AccountRead, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}
