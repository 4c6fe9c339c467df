package memory

import (
	"context"
	"iter"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create stages t for appending and assigns the next sequential ID.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	utx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	t.ID = utx.nextID()
	utx.appended = append(utx.appended, cloneTransaction(t))

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// IDs are dense and start at 1, so the log doubles as an index.
	if id == 0 || id > uint64(len(r.store.log)) {
		return nil, domain.ErrTransactionNotFound
	}

	return cloneTransaction(r.store.log[id-1]), nil
}

// ListByAccount returns the records referencing accountID. The per-account
// index is append-only, so the slice captured at the start of each range stays
// valid without holding the lock while yielding.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, order usecase.SortOrder) iter.Seq[*domain.Transaction] {
	return func(yield func(*domain.Transaction) bool) {
		r.store.mu.RLock()
		records := r.store.byAccount[accountID]
		r.store.mu.RUnlock()

		if order == usecase.SortDescending {
			for i := len(records) - 1; i >= 0; i-- {
				if !yield(cloneTransaction(records[i])) {
					return
				}
			}
			return
		}

		for _, t := range records {
			if !yield(cloneTransaction(t)) {
				return
			}
		}
	}
}

// ListAfter returns up to limit records with ID greater than afterID.
func (r *TransactionRepository) ListAfter(ctx context.Context, afterID uint64, limit int) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := uint64(len(r.store.log))
	if afterID >= total || limit <= 0 {
		return []*domain.Transaction{}, nil
	}

	end := min(afterID+uint64(limit), total)

	records := make([]*domain.Transaction, 0, end-afterID)
	for _, t := range r.store.log[afterID:end] {
		records = append(records, cloneTransaction(t))
	}

	return records, nil
}
