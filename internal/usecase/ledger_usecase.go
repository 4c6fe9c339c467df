package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// AccountMismatch describes an account whose balance disagrees with its history.
type AccountMismatch struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
}

// ConsistencyReport is the result of a ledger consistency check.
type ConsistencyReport struct {
	Consistent       bool
	AccountCount     int
	TransactionCount int
	TotalBalance     decimal.Decimal
	ExpectedTotal    decimal.Decimal
	NegativeAccounts []string
	Mismatches       []AccountMismatch
	CheckedAt        time.Time
}

// CheckConsistency replays the transaction log against every account.
//
// An account is consistent when its opening balance plus the effect of every
// record referencing it equals its recorded balance, and the balance is not
// negative. The ledger total must equal total opening balances plus deposits
// minus withdrawals; transfers must net to zero.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	snapshot, err := uc.ledgerRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	calculated := make(map[string]decimal.Decimal, len(snapshot.Accounts))
	expectedTotal := decimal.Zero
	for _, a := range snapshot.Accounts {
		calculated[a.ID] = a.OpeningBalance
		expectedTotal = expectedTotal.Add(a.OpeningBalance)
	}

	for _, t := range snapshot.Transactions {
		switch t.Type {
		case domain.TransactionTypeDeposit:
			calculated[t.AccountID] = calculated[t.AccountID].Add(t.Amount)
			expectedTotal = expectedTotal.Add(t.Amount)
		case domain.TransactionTypeWithdraw:
			calculated[t.AccountID] = calculated[t.AccountID].Sub(t.Amount)
			expectedTotal = expectedTotal.Sub(t.Amount)
		case domain.TransactionTypeTransfer:
			calculated[t.AccountID] = calculated[t.AccountID].Sub(t.Amount)
			calculated[t.CounterpartyAccountID] = calculated[t.CounterpartyAccountID].Add(t.Amount)
		}
	}

	report := &ConsistencyReport{
		AccountCount:     len(snapshot.Accounts),
		TransactionCount: len(snapshot.Transactions),
		TotalBalance:     decimal.Zero,
		ExpectedTotal:    expectedTotal,
		CheckedAt:        time.Now().UTC(),
	}

	for _, a := range snapshot.Accounts {
		report.TotalBalance = report.TotalBalance.Add(a.Balance)

		if a.Balance.IsNegative() {
			report.NegativeAccounts = append(report.NegativeAccounts, a.ID)
		}

		if !calculated[a.ID].Equal(a.Balance) {
			report.Mismatches = append(report.Mismatches, AccountMismatch{
				AccountID:         a.ID,
				RecordedBalance:   a.Balance,
				CalculatedBalance: calculated[a.ID],
			})
		}
	}

	report.Consistent = len(report.Mismatches) == 0 &&
		len(report.NegativeAccounts) == 0 &&
		report.TotalBalance.Equal(report.ExpectedTotal)

	return report, nil
}
