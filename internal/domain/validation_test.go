package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountID(t *testing.T) {
	t.Parallel()

	t.Run("valid id", func(t *testing.T) {
		if err := ValidateAccountID("alice.smith_01"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty id rejected", func(t *testing.T) {
		err := ValidateAccountID("")
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})

	t.Run("surrounding whitespace rejected", func(t *testing.T) {
		err := ValidateAccountID(" alice ")
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})

	t.Run("id too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxAccountIDLength+1)
		err := ValidateAccountID(tooLong)
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})

	t.Run("path separators rejected", func(t *testing.T) {
		err := ValidateAccountID("alice/../bob")
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	valid := decimal.RequireFromString("100.25")
	if err := ValidateAmount(valid); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for sub-cent amount, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("1.500")); err != nil {
		t.Fatalf("trailing zeros should be accepted, got %v", err)
	}

	tooLarge := decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(tooLarge); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for too large amount, got %v", err)
	}
}

func TestValidateOpeningBalance(t *testing.T) {
	t.Parallel()

	if err := ValidateOpeningBalance(decimal.Zero); err != nil {
		t.Fatalf("zero opening balance should be valid, got %v", err)
	}

	if err := ValidateOpeningBalance(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestValidatePIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pin   string
		valid bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidatePIN(tt.pin)
		if tt.valid && err != nil {
			t.Errorf("ValidatePIN(%q) unexpected error: %v", tt.pin, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidCredential) {
			t.Errorf("ValidatePIN(%q) expected ErrInvalidCredential, got %v", tt.pin, err)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected limit capped at 1000, got %d", limit)
	}
}
