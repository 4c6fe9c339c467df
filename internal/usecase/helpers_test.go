package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

type testLedger struct {
	accounts     *usecase.AccountUseCase
	transactions *usecase.TransactionUseCase
	ledger       *usecase.LedgerUseCase
}

// newTestLedger builds an isolated in-memory ledger with the given opening balances.
func newTestLedger(t *testing.T, balances map[string]string) *testLedger {
	t.Helper()

	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)

	l := &testLedger{
		accounts: usecase.NewAccountUseCase(accountRepo, mocks.PlainHasher{}, nil),
		transactions: usecase.NewTransactionUseCase(
			memory.NewTxManager(store),
			accountRepo,
			memory.NewTransactionRepository(store),
			nil,
		),
		ledger: usecase.NewLedgerUseCase(memory.NewLedgerRepository(store)),
	}

	for id, balance := range balances {
		_, err := l.accounts.CreateAccount(context.Background(), usecase.CreateAccountInput{
			ID:             id,
			Credential:     "0000",
			InitialBalance: decimal.RequireFromString(balance),
		})
		require.NoError(t, err)
	}

	return l
}

func (l *testLedger) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	acc, err := l.accounts.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance
}

func (l *testLedger) historyLen(t *testing.T, id string) int {
	t.Helper()

	seq, err := l.transactions.History(context.Background(), usecase.HistoryInput{AccountID: id})
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
	}
	return n
}

func (l *testLedger) requireConsistent(t *testing.T) {
	t.Helper()

	report, err := l.ledger.CheckConsistency(context.Background())
	require.NoError(t, err)
	require.True(t, report.Consistent, "ledger inconsistent: %+v", report)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
