package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "debit one cent over",
			balance:     decimal.RequireFromString("10.00"),
			debitAmount: decimal.RequireFromString("10.01"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDebitAndCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if got := acc.ApplyDebit(decimal.NewFromInt(30)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected 70 after debit, got %s", got)
	}

	if got := acc.ApplyCredit(decimal.RequireFromString("0.50")); !got.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("expected 100.50 after credit, got %s", got)
	}

	if !acc.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("apply must not mutate the account, balance is %s", acc.Balance)
	}
}

func TestAccount_Clone(t *testing.T) {
	acc := &Account{ID: "alice", Balance: decimal.NewFromInt(10)}

	cp := acc.Clone()
	cp.Balance = decimal.NewFromInt(99)

	if !acc.Balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("clone shares state with original")
	}
}
