// Package mocks provides hand-written test doubles for usecase interfaces.
package mocks

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; ok {
		return domain.ErrDuplicateAccount
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.Transaction

	CreateFunc func(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uint64(len(m.records) + 1)
	m.records = append(m.records, t)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uint64) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id == 0 || id > uint64(len(m.records)) {
		return nil, domain.ErrTransactionNotFound
	}
	return m.records[id-1], nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, order usecase.SortOrder) iter.Seq[*domain.Transaction] {
	return func(yield func(*domain.Transaction) bool) {
		m.mu.RLock()
		records := append([]*domain.Transaction(nil), m.records...)
		m.mu.RUnlock()
		for _, t := range records {
			if t.Involves(accountID) && !yield(t) {
				return
			}
		}
	}
}

func (m *MockTransactionRepository) ListAfter(ctx context.Context, afterID uint64, limit int) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.records {
		if t.ID > afterID && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

// Count returns the number of recorded transactions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	Committed  bool
	RolledBack bool
	CommitErr  error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
	LastTx    *MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTx{}
	return m.LastTx, nil
}

// PlainHasher is a CredentialHasher that stores credentials verbatim.
type PlainHasher struct {
	HashErr error
}

func (h PlainHasher) Hash(credential string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "plain:" + credential, nil
}

func (h PlainHasher) Verify(hash, credential string) (bool, error) {
	return hash == "plain:"+credential, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	Result *usecase.LedgerSnapshot
	Err    error
}

func (m *MockLedgerRepository) Snapshot(ctx context.Context) (*usecase.LedgerSnapshot, error) {
	return m.Result, m.Err
}
