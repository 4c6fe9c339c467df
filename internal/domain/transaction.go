package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the balance-changing operation a record describes.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is an immutable record of one accepted balance-changing operation.
// A transfer is a single record: AccountID is the debited side and
// CounterpartyAccountID the credited side. For deposits and withdrawals the
// counterparty is empty.
type Transaction struct {
	CreatedAt             time.Time
	ID                    uint64
	Type                  TransactionType
	AccountID             string
	CounterpartyAccountID string
	Amount                decimal.Decimal
}

// Involves reports whether the transaction references accountID on either side.
func (t *Transaction) Involves(accountID string) bool {
	return t.AccountID == accountID || t.CounterpartyAccountID == accountID
}

// EffectOn returns the signed balance change the transaction applied to accountID.
func (t *Transaction) EffectOn(accountID string) decimal.Decimal {
	switch t.Type {
	case TransactionTypeDeposit:
		if t.AccountID == accountID {
			return t.Amount
		}
	case TransactionTypeWithdraw:
		if t.AccountID == accountID {
			return t.Amount.Neg()
		}
	case TransactionTypeTransfer:
		switch accountID {
		case t.AccountID:
			return t.Amount.Neg()
		case t.CounterpartyAccountID:
			return t.Amount
		}
	}
	return decimal.Zero
}
