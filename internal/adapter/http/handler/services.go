package handler

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AuthService defines the behavior needed by AuthHandler and TransactionHandler.
type AuthService interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (bool, error)
}

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.TransactionResult, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.TransactionResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransactionResult, error)
	ListHistory(ctx context.Context, input usecase.ListHistoryInput) ([]*domain.Transaction, error)
	GetTransaction(ctx context.Context, id uint64) (*domain.Transaction, error)
}

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}
