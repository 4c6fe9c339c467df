package memory

import (
	"context"
	"sort"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Snapshot copies every account and the full log under one read lock.
func (r *LedgerRepository) Snapshot(ctx context.Context) (*usecase.LedgerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	snapshot := &usecase.LedgerSnapshot{
		Accounts:     make([]*domain.Account, 0, len(r.store.accounts)),
		Transactions: make([]*domain.Transaction, 0, len(r.store.log)),
	}

	for _, acc := range r.store.accounts {
		snapshot.Accounts = append(snapshot.Accounts, acc.Clone())
	}
	sort.Slice(snapshot.Accounts, func(i, j int) bool {
		return snapshot.Accounts[i].ID < snapshot.Accounts[j].ID
	})

	for _, t := range r.store.log {
		snapshot.Transactions = append(snapshot.Transactions, cloneTransaction(t))
	}

	return snapshot, nil
}
