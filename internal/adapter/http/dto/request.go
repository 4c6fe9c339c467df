package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AuthRequest represents a login request.
type AuthRequest struct {
	AccountID string `json:"account_id"`
	PIN       string `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *AuthRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		AccountID:  r.AccountID,
		Credential: r.PIN,
	}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	AccountID      string          `json:"account_id"`
	PIN            string          `json:"pin"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// Validate checks the fields the use case does not.
func (r *CreateAccountRequest) Validate() error {
	return domain.ValidatePIN(r.PIN)
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:             r.AccountID,
		Credential:     r.PIN,
		InitialBalance: r.InitialBalance,
	}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountID: r.AccountID,
		Amount:    r.Amount,
	}
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountID: r.AccountID,
		Amount:    r.Amount,
	}
}

// TransferRequest represents a transfer request. SenderPIN is optional; when
// present it must match the sender's credential.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	SenderPIN     string          `json:"sender_pin,omitempty"`
}

// Validate checks the optional sender PIN format.
func (r *TransferRequest) Validate() error {
	if r.SenderPIN == "" {
		return nil
	}
	if err := domain.ValidatePIN(r.SenderPIN); err != nil {
		return fmt.Errorf("sender_pin: %w", err)
	}
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
}
