package memory

import (
	"context"
	"errors"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// ErrTxDone is returned when committing a finished unit of work.
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// TxManager implements usecase.TxManager.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin acquires the store's write lock and starts a unit of work.
func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.store.mu.Lock()

	return &Tx{
		store:    m.store,
		accounts: make(map[string]*domain.Account),
	}, nil
}

// Tx stages account updates and appended records until Commit.
type Tx struct {
	store    *Store
	accounts map[string]*domain.Account
	appended []*domain.Transaction
	done     bool
}

// Commit applies staged changes and releases the lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer t.store.mu.Unlock()

	for id, acc := range t.accounts {
		t.store.accounts[id] = acc.Clone()
	}

	for _, rec := range t.appended {
		t.store.appendLocked(rec)
	}

	return nil
}

// Rollback discards staged changes and releases the lock. It is a no-op after
// Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()

	return nil
}

// account returns the staged copy of id, staging it from the store on first use.
func (t *Tx) account(id string) (*domain.Account, bool) {
	if acc, ok := t.accounts[id]; ok {
		return acc, true
	}

	acc, ok := t.store.accounts[id]
	if !ok {
		return nil, false
	}

	staged := acc.Clone()
	t.accounts[id] = staged
	return staged, true
}

// nextID is the ID the next appended record receives.
func (t *Tx) nextID() uint64 {
	return uint64(len(t.store.log) + len(t.appended) + 1)
}

func unwrapTx(tx usecase.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, errors.New("memory: foreign or nil transaction")
	}
	if t.done {
		return nil, ErrTxDone
	}
	return t, nil
}
