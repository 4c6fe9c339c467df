package usecase

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransactionUseCase handles deposits, withdrawals, transfers and history.
type TransactionUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	metrics         MetricsRecorder
}

// NewTransactionUseCase creates a new TransactionUseCase. metrics may be nil.
func NewTransactionUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	metrics MetricsRecorder,
) *TransactionUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// TransactionResult is the outcome of an accepted balance-changing operation.
// Accounts holds the updated primary account first and, for transfers, the
// counterparty second.
type TransactionResult struct {
	Transaction *domain.Transaction
	Accounts    []*domain.Account
}

// Deposit credits amount to an account.
func (uc *TransactionUseCase) Deposit(ctx context.Context, input DepositInput) (*TransactionResult, error) {
	return uc.post(ctx, OperationDeposit, &domain.Transaction{
		Type:      domain.TransactionTypeDeposit,
		AccountID: input.AccountID,
		Amount:    input.Amount,
	})
}

// Withdraw debits amount from an account. The balance never goes negative.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*TransactionResult, error) {
	return uc.post(ctx, OperationWithdraw, &domain.Transaction{
		Type:      domain.TransactionTypeWithdraw,
		AccountID: input.AccountID,
		Amount:    input.Amount,
	})
}

// Transfer moves amount between two accounts and records one linked transaction.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*TransactionResult, error) {
	return uc.post(ctx, OperationTransfer, &domain.Transaction{
		Type:                  domain.TransactionTypeTransfer,
		AccountID:             input.FromAccountID,
		CounterpartyAccountID: input.ToAccountID,
		Amount:                input.Amount,
	})
}

func (uc *TransactionUseCase) post(ctx context.Context, operation string, record *domain.Transaction) (*TransactionResult, error) {
	start := time.Now()

	result, err := uc.apply(ctx, record)
	if err != nil {
		uc.metrics.RecordFailure(operation, err)
		return nil, err
	}

	uc.metrics.RecordOperation(operation, record.Amount, time.Since(start))
	return result, nil
}

func (uc *TransactionUseCase) apply(ctx context.Context, record *domain.Transaction) (*TransactionResult, error) {
	// 0. Validate inputs before starting the unit of work
	if record.Type == domain.TransactionTypeTransfer && record.AccountID == record.CounterpartyAccountID {
		return nil, domain.ErrSelfTransfer
	}

	if err := domain.ValidateAmount(record.Amount); err != nil {
		return nil, err
	}

	// 1. Collect and sort account IDs (DEADLOCK PREVENTION)
	accountIDs := []string{record.AccountID}
	if record.CounterpartyAccountID != "" {
		accountIDs = append(accountIDs, record.CounterpartyAccountID)
	}
	sort.Strings(accountIDs)

	// 2. Begin unit of work
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 3. Lock accounts in sorted order
	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	for _, id := range accountIDs {
		if accountMap[id] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
	}

	// 4. Apply balance changes
	now := time.Now().UTC()
	primary := accountMap[record.AccountID]
	touched := []*domain.Account{primary}

	switch record.Type {
	case domain.TransactionTypeDeposit:
		if err := uc.credit(ctx, tx, primary, record.Amount, now); err != nil {
			return nil, err
		}

	case domain.TransactionTypeWithdraw:
		if err := uc.debit(ctx, tx, primary, record.Amount, now); err != nil {
			return nil, err
		}

	case domain.TransactionTypeTransfer:
		counterparty := accountMap[record.CounterpartyAccountID]
		if err := uc.debit(ctx, tx, primary, record.Amount, now); err != nil {
			return nil, err
		}
		if err := uc.credit(ctx, tx, counterparty, record.Amount, now); err != nil {
			return nil, err
		}
		touched = append(touched, counterparty)

	default:
		return nil, fmt.Errorf("unsupported transaction type %q", record.Type)
	}

	// 5. Append the single log record
	record.CreatedAt = now
	if err := uc.transactionRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	// 6. Commit
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransactionResult{
		Transaction: record,
		Accounts:    touched,
	}, nil
}

func (uc *TransactionUseCase) debit(ctx context.Context, tx Tx, account *domain.Account, amount decimal.Decimal, now time.Time) error {
	if err := account.ValidateDebit(amount); err != nil {
		return err
	}

	newBalance := account.ApplyDebit(amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now
	return nil
}

func (uc *TransactionUseCase) credit(ctx context.Context, tx Tx, account *domain.Account, amount decimal.Decimal, now time.Time) error {
	newBalance := account.ApplyCredit(amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now
	return nil
}

// HistoryInput represents input for an account history.
type HistoryInput struct {
	AccountID string
	Order     SortOrder
}

// History returns the account's transactions as a lazy sequence. Every range
// over the sequence observes the log as of the moment the range starts.
func (uc *TransactionUseCase) History(ctx context.Context, input HistoryInput) (iter.Seq[*domain.Transaction], error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	order := input.Order
	if order == "" {
		order = SortAscending
	}

	return uc.transactionRepo.ListByAccount(ctx, input.AccountID, order), nil
}

// ListHistoryInput represents input for a paginated account history.
type ListHistoryInput struct {
	AccountID string
	Order     SortOrder
	Limit     int
	Offset    int
}

// ListHistory returns one page of the account's history.
func (uc *TransactionUseCase) ListHistory(ctx context.Context, input ListHistoryInput) ([]*domain.Transaction, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	seq, err := uc.History(ctx, HistoryInput{AccountID: input.AccountID, Order: input.Order})
	if err != nil {
		return nil, err
	}

	page := make([]*domain.Transaction, 0)
	skipped := 0
	for t := range seq {
		if skipped < offset {
			skipped++
			continue
		}
		page = append(page, t)
		if len(page) == limit {
			break
		}
	}

	return page, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id uint64) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}
