package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDsForUpdate loads the given accounts inside tx in sorted id order.
	// Unknown ids are skipped; callers compare lengths.
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	// Create appends t to the log inside tx and assigns its ID.
	Create(ctx context.Context, tx Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uint64) (*domain.Transaction, error)
	// ListByAccount returns a lazy, restartable sequence of the records that
	// reference accountID on either side.
	ListByAccount(ctx context.Context, accountID string, order SortOrder) iter.Seq[*domain.Transaction]
	// ListAfter returns up to limit records with ID greater than afterID, oldest first.
	ListAfter(ctx context.Context, afterID uint64, limit int) ([]*domain.Transaction, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// Snapshot returns every account and every record as of a single instant.
	Snapshot(ctx context.Context) (*LedgerSnapshot, error)
}

// LedgerSnapshot is a point-in-time copy of the whole ledger.
type LedgerSnapshot struct {
	Accounts     []*domain.Account
	Transactions []*domain.Transaction
}

// Tx represents an exclusive unit of work over the ledger.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles unit of work lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// CredentialHasher hashes and verifies account credentials.
type CredentialHasher interface {
	Hash(credential string) (string, error)
	// Verify reports whether credential matches hash. A mismatch is not an error.
	Verify(hash, credential string) (bool, error)
}

// MetricsRecorder receives ledger operation outcomes.
type MetricsRecorder interface {
	RecordOperation(operation string, amount decimal.Decimal, duration time.Duration)
	RecordFailure(operation string, err error)
	RecordAccountCreated()
	RecordAuthentication(success bool)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// TokenDenylist tracks revoked access tokens until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SortOrder selects the direction of a history listing.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder parses "asc"/"desc"; anything else yields SortAscending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortDescending {
		return SortDescending
	}
	return SortAscending
}

type noopMetrics struct{}

func (noopMetrics) RecordOperation(string, decimal.Decimal, time.Duration) {}
func (noopMetrics) RecordFailure(string, error)                            {}
func (noopMetrics) RecordAccountCreated()                                  {}
func (noopMetrics) RecordAuthentication(bool)                              {}
