package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// Money formats an amount with the ledger's fixed precision.
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountPrecision)
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"account_id"`
	Balance   string    `json:"balance"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Balance:   Money(a.Balance),
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Count    int                `json:"count"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    uint64    `json:"transaction_id"`
	Type                  string    `json:"type"`
	AccountID             string    `json:"account_id"`
	CounterpartyAccountID string    `json:"counterparty_account_id,omitempty"`
	Amount                string    `json:"amount"`
	CreatedAt             time.Time `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID,
		Type:                  string(t.Type),
		AccountID:             t.AccountID,
		CounterpartyAccountID: t.CounterpartyAccountID,
		Amount:                Money(t.Amount),
		CreatedAt:             t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of an account's history.
type ListTransactionsResponse struct {
	AccountID    string                 `json:"account_id"`
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// BalanceChangeResponse is returned by deposit and withdraw.
type BalanceChangeResponse struct {
	NewBalance  string               `json:"new_balance"`
	Transaction *TransactionResponse `json:"transaction"`
}

// BalanceChangeFromResult converts a single-account result.
func BalanceChangeFromResult(r *usecase.TransactionResult) *BalanceChangeResponse {
	return &BalanceChangeResponse{
		NewBalance:  Money(r.Accounts[0].Balance),
		Transaction: TransactionFromDomain(r.Transaction),
	}
}

// TransferResponse is returned by transfer.
type TransferResponse struct {
	SenderNewBalance    string               `json:"sender_new_balance"`
	RecipientNewBalance string               `json:"recipient_new_balance"`
	Transaction         *TransactionResponse `json:"transaction"`
}

// TransferFromResult converts a two-account result.
func TransferFromResult(r *usecase.TransactionResult) *TransferResponse {
	return &TransferResponse{
		SenderNewBalance:    Money(r.Accounts[0].Balance),
		RecipientNewBalance: Money(r.Accounts[1].Balance),
		Transaction:         TransactionFromDomain(r.Transaction),
	}
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AccountMismatchResponse describes one account failing reconciliation.
type AccountMismatchResponse struct {
	AccountID         string `json:"account_id"`
	RecordedBalance   string `json:"recorded_balance"`
	CalculatedBalance string `json:"calculated_balance"`
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Status           string                     `json:"status"`
	Consistent       bool                       `json:"consistent"`
	AccountCount     int                        `json:"account_count"`
	TransactionCount int                        `json:"transaction_count"`
	TotalBalance     string                     `json:"total_balance"`
	ExpectedTotal    string                     `json:"expected_total"`
	NegativeAccounts []string                   `json:"negative_accounts,omitempty"`
	Mismatches       []*AccountMismatchResponse `json:"mismatches,omitempty"`
	CheckedAt        time.Time                  `json:"checked_at"`
}

// ConsistencyFromReport converts a consistency report.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !r.Consistent {
		status = "inconsistent"
	}

	resp := &ConsistencyResponse{
		Status:           status,
		Consistent:       r.Consistent,
		AccountCount:     r.AccountCount,
		TransactionCount: r.TransactionCount,
		TotalBalance:     Money(r.TotalBalance),
		ExpectedTotal:    Money(r.ExpectedTotal),
		NegativeAccounts: r.NegativeAccounts,
		CheckedAt:        r.CheckedAt,
	}
	for _, m := range r.Mismatches {
		resp.Mismatches = append(resp.Mismatches, &AccountMismatchResponse{
			AccountID:         m.AccountID,
			RecordedBalance:   Money(m.RecordedBalance),
			CalculatedBalance: Money(m.CalculatedBalance),
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
