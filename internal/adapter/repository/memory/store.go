// Package memory holds the ledger state in process memory.
//
// A single RWMutex guards the account map and the transaction log. Mutations
// go through a Tx obtained from TxManager.Begin, which holds the write lock
// until Commit or Rollback; staged changes become visible all at once on
// Commit. Reads take the read lock and never see a half-applied unit of work.
package memory

import (
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// Store is the process-wide ledger state.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*domain.Account
	log       []*domain.Transaction
	byAccount map[string][]*domain.Transaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*domain.Account),
		byAccount: make(map[string][]*domain.Transaction),
	}
}

// appendLocked adds a committed record to the log and the per-account index.
// Callers must hold the write lock.
func (s *Store) appendLocked(t *domain.Transaction) {
	s.log = append(s.log, t)
	s.byAccount[t.AccountID] = append(s.byAccount[t.AccountID], t)
	if t.CounterpartyAccountID != "" && t.CounterpartyAccountID != t.AccountID {
		s.byAccount[t.CounterpartyAccountID] = append(s.byAccount[t.CounterpartyAccountID], t)
	}
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	return &cp
}
