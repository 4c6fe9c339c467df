package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, account.ID)
	}

	r.store.accounts[account.ID] = account.Clone()
	return nil
}

// GetByID retrieves a copy of an account.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return acc.Clone(), nil
}

// GetByIDsForUpdate stages the given accounts in tx, in sorted id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	t, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		if acc, ok := t.account(id); ok {
			accounts = append(accounts, acc.Clone())
		}
	}

	return accounts, nil
}

// UpdateBalance stages a new balance for an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	acc, ok := t.account(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	if balance.IsNegative() {
		return domain.ErrInsufficientFunds
	}

	acc.Balance = balance
	acc.Version++
	acc.UpdatedAt = updatedAt

	return nil
}

// List returns accounts ordered by id.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return []*domain.Account{}, nil
	}

	end := min(offset+limit, len(ids))

	accounts := make([]*domain.Account, 0, end-offset)
	for _, id := range ids[offset:end] {
		accounts = append(accounts, r.store.accounts[id].Clone())
	}

	return accounts, nil
}
