package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	hasher      CredentialHasher
	metrics     MetricsRecorder
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(accountRepo AccountRepository, hasher CredentialHasher, metrics MetricsRecorder) *AccountUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &AccountUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ID             string
	Credential     string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account. The opening balance is not recorded as
// a transaction.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account, err := uc.createAccount(ctx, input)
	if err != nil {
		uc.metrics.RecordFailure(OperationCreateAccount, err)
		return nil, err
	}

	uc.metrics.RecordAccountCreated()
	return account, nil
}

func (uc *AccountUseCase) createAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountID(input.ID); err != nil {
		return nil, err
	}

	if err := domain.ValidateCredential(input.Credential); err != nil {
		return nil, err
	}

	if err := domain.ValidateOpeningBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	// Fail fast before paying for the hash; Create re-checks under lock.
	if _, err := uc.accountRepo.GetByID(ctx, input.ID); err == nil {
		return nil, domain.ErrDuplicateAccount
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Credential)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             input.ID,
		CredentialHash: hash,
		Balance:        input.InitialBalance,
		OpeningBalance: input.InitialBalance,
		Version:        0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination, ordered by id.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := AccountPage(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// AccountPage applies the account listing defaults and caps.
func AccountPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	AccountID  string
	Credential string
}

// Authenticate verifies account credentials. It returns ErrAccountNotFound for
// unknown accounts and (false, nil) when the credential does not match.
func (uc *AccountUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (bool, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		uc.metrics.RecordFailure(OperationAuthenticate, err)
		return false, err
	}

	ok, err := uc.hasher.Verify(account.CredentialHash, input.Credential)
	if err != nil {
		uc.metrics.RecordFailure(OperationAuthenticate, err)
		return false, err
	}

	uc.metrics.RecordAuthentication(ok)
	return ok, nil
}
