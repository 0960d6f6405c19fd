package usecase

import (
	"context"
	"time"

	"github.com/iho/moneybook/internal/domain"
)

// TransactionSource is a data source for raw transaction rows and lookup
// tables. The remote store and the in-memory fallback both implement it; the
// caller picks which one is primary at construction time.
type TransactionSource interface {
	FetchRows(ctx context.Context) ([]domain.RawRow, error)
	FetchLookups(ctx context.Context) (domain.Lookups, error)
	Insert(ctx context.Context, row domain.RawRow) (domain.RawRow, error)
}

// FallbackStore is the process-wide in-memory collection served when the
// remote store is unavailable. Writers replace the whole snapshot, never
// mutate it, so readers always see a consistent collection.
type FallbackStore interface {
	Snapshot() ([]domain.RawRow, domain.Lookups)
	Replace(rows []domain.RawRow, lookups domain.Lookups)
	Prepend(row domain.RawRow)
}

// AccountResolver resolves an account id to its cashback terms, degrading to
// the fallback store when the remote is unreachable. The string return is an
// advisory warning, empty when the remote answered.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, id string) (*domain.Account, string, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries a transient-failure-prone operation.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
