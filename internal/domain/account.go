package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a named, balance-holding bank account.
type Account struct {
	ID             string
	CredentialHash string
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Clone returns a copy that can be handed out without exposing ledger state.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
